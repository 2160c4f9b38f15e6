package pos

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
)

// CustomerInput alta de cliente de caja.
type CustomerInput struct {
	Name  string
	TaxID string
	Email string
	Phone string
	Role  entity.Role
}

// Customers directorio de clientes capturados en mostrador.
type Customers struct {
	gw  *persistence.Gateway
	now func() time.Time
}

// NewCustomers construye el directorio.
func NewCustomers(gw *persistence.Gateway) *Customers {
	return &Customers{gw: gw, now: time.Now}
}

// CreateCustomer registra un cliente. Rol vacío = client; el RFC, si viene, es único.
func (c *Customers) CreateCustomer(ctx context.Context, in CustomerInput) (*entity.PosCustomer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleClient
	}
	if role != entity.RoleClient && role != entity.RoleSpecialClient {
		return nil, domain.ErrInvalidInput
	}
	customer := entity.PosCustomer{
		ID:        uuid.New().String(),
		Name:      name,
		TaxID:     strings.ToUpper(strings.TrimSpace(in.TaxID)),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      role,
		CreatedAt: c.now(),
	}
	_, err := persistence.Update(ctx, c.gw, repository.KeyPosCustomers, []entity.PosCustomer{}, func(cur []entity.PosCustomer) ([]entity.PosCustomer, error) {
		if customer.TaxID != "" {
			for _, existing := range cur {
				if existing.TaxID == customer.TaxID {
					return nil, domain.ErrDuplicate
				}
			}
		}
		return append(cur, customer), nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListCustomers clientes ordenados por nombre; query filtra por nombre o RFC.
func (c *Customers) ListCustomers(ctx context.Context, query string) []entity.PosCustomer {
	all := persistence.Load(ctx, c.gw, repository.KeyPosCustomers, []entity.PosCustomer{})
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]entity.PosCustomer, 0, len(all))
	for _, cust := range all {
		if query == "" ||
			strings.Contains(strings.ToLower(cust.Name), query) ||
			strings.Contains(strings.ToLower(cust.TaxID), query) {
			out = append(out, cust)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetCustomer busca un cliente de caja.
func (c *Customers) GetCustomer(ctx context.Context, id string) (*entity.PosCustomer, error) {
	for _, cust := range persistence.Load(ctx, c.gw, repository.KeyPosCustomers, []entity.PosCustomer{}) {
		if cust.ID == id {
			cust := cust
			return &cust, nil
		}
	}
	return nil, domain.ErrNotFound
}

// RoleFor rol de precio para una referencia de cliente; sin cliente conocido, client.
func (c *Customers) RoleFor(ctx context.Context, customerRef string) entity.Role {
	if customerRef == "" {
		return entity.RoleClient
	}
	cust, err := c.GetCustomer(ctx, customerRef)
	if err != nil {
		return entity.RoleClient
	}
	return cust.Role
}
