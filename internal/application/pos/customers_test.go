package pos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ferreteria-api/internal/application/pos"
	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
)

func TestCreateCustomer_YBusqueda(t *testing.T) {
	ctx := context.Background()
	customers := pos.NewCustomers(persistence.NewGateway(memory.NewDocumentStore(), nil))

	a, err := customers.CreateCustomer(ctx, pos.CustomerInput{Name: "Constructora Sur", TaxID: "csu010101aa1", Role: entity.RoleSpecialClient})
	require.NoError(t, err)
	assert.Equal(t, "CSU010101AA1", a.TaxID)
	_, err = customers.CreateCustomer(ctx, pos.CustomerInput{Name: "Benito Pérez"})
	require.NoError(t, err)

	all := customers.ListCustomers(ctx, "")
	require.Len(t, all, 2)
	assert.Equal(t, "Benito Pérez", all[0].Name)
	assert.Len(t, customers.ListCustomers(ctx, "csu01"), 1)

	assert.Equal(t, entity.RoleSpecialClient, customers.RoleFor(ctx, a.ID))
	assert.Equal(t, entity.RoleClient, customers.RoleFor(ctx, "desconocido"))
	assert.Equal(t, entity.RoleClient, customers.RoleFor(ctx, ""))
}

func TestCreateCustomer_Validaciones(t *testing.T) {
	ctx := context.Background()
	customers := pos.NewCustomers(persistence.NewGateway(memory.NewDocumentStore(), nil))

	_, err := customers.CreateCustomer(ctx, pos.CustomerInput{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = customers.CreateCustomer(ctx, pos.CustomerInput{Name: "Vendedor", Role: entity.RoleSalesperson})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = customers.CreateCustomer(ctx, pos.CustomerInput{Name: "Uno", TaxID: "XAXX010101000"})
	require.NoError(t, err)
	_, err = customers.CreateCustomer(ctx, pos.CustomerInput{Name: "Dos", TaxID: "xaxx010101000"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = customers.GetCustomer(ctx, "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
