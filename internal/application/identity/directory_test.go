package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ferreteria-api/internal/application/identity"
	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/memory"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
)

func TestRegister_YConsultas(t *testing.T) {
	ctx := context.Background()
	dir := identity.NewDirectory(persistence.NewGateway(memory.NewDocumentStore(), nil))

	v, err := dir.Register(ctx, entity.Identity{ID: "v1", Name: "Ana", Email: "ana@ferre.mx", Role: entity.RoleSalesperson})
	require.NoError(t, err)
	_, err = dir.Register(ctx, entity.Identity{Name: "Luis", Email: "luis@ferre.mx", Role: entity.RoleClient})
	require.NoError(t, err)

	got, err := dir.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	assert.Len(t, dir.List(ctx), 2)
	assert.Len(t, dir.ListByRole(ctx, entity.RoleSalesperson), 1)
	assert.True(t, dir.IsSalesperson(ctx, "v1"))
	assert.False(t, dir.IsSalesperson(ctx, ""))
	assert.False(t, dir.IsSalesperson(ctx, "desconocido"))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	dir := identity.NewDirectory(persistence.NewGateway(memory.NewDocumentStore(), nil))

	_, err := dir.Register(ctx, entity.Identity{Name: "Ana", Email: "ana@ferre.mx", Role: entity.RoleClient})
	require.NoError(t, err)
	_, err = dir.Register(ctx, entity.Identity{Name: "Otra", Email: "ANA@ferre.mx", Role: entity.RoleClient})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Len(t, dir.List(ctx), 1)
}

func TestRegister_RolInvalido(t *testing.T) {
	dir := identity.NewDirectory(persistence.NewGateway(memory.NewDocumentStore(), nil))
	_, err := dir.Register(context.Background(), entity.Identity{Name: "X", Email: "x@x", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	dir := identity.NewDirectory(persistence.NewGateway(memory.NewDocumentStore(), nil))
	_, err := dir.GetByID(context.Background(), "nadie")
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}
