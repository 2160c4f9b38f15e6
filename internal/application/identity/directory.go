// Package identity es el lado de lectura del proveedor de identidad externo:
// el core solo consulta ID y rol de las identidades registradas.
package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
)

// Directory directorio de identidades guardado en la colección "identities".
type Directory struct {
	gw *persistence.Gateway
}

// NewDirectory construye el directorio.
func NewDirectory(gw *persistence.Gateway) *Directory {
	return &Directory{gw: gw}
}

// List devuelve todas las identidades.
func (d *Directory) List(ctx context.Context) []entity.Identity {
	return persistence.Load(ctx, d.gw, repository.KeyIdentities, []entity.Identity{})
}

// GetByID busca una identidad por ID.
func (d *Directory) GetByID(ctx context.Context, id string) (*entity.Identity, error) {
	for _, ident := range d.List(ctx) {
		if ident.ID == id {
			ident := ident
			return &ident, nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

// ListByRole filtra las identidades por rol.
func (d *Directory) ListByRole(ctx context.Context, role entity.Role) []entity.Identity {
	var out []entity.Identity
	for _, ident := range d.List(ctx) {
		if ident.Role == role {
			out = append(out, ident)
		}
	}
	return out
}

// Salespeople conjunto de IDs con rol salesperson (una sola lectura).
func (d *Directory) Salespeople(ctx context.Context) map[string]bool {
	set := map[string]bool{}
	for _, ident := range d.ListByRole(ctx, entity.RoleSalesperson) {
		set[ident.ID] = true
	}
	return set
}

// IsSalesperson indica si id corresponde a un vendedor conocido.
func (d *Directory) IsSalesperson(ctx context.Context, id string) bool {
	if id == "" {
		return false
	}
	return d.Salespeople(ctx)[id]
}

// Register alta de identidad (la usan el proveedor de identidad y el seed).
// El email es único sin distinguir mayúsculas.
func (d *Directory) Register(ctx context.Context, ident entity.Identity) (*entity.Identity, error) {
	ident.Email = strings.TrimSpace(ident.Email)
	if strings.TrimSpace(ident.Name) == "" || ident.Email == "" || !ident.Role.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if ident.ID == "" {
		ident.ID = uuid.New().String()
	}
	_, err := persistence.Update(ctx, d.gw, repository.KeyIdentities, []entity.Identity{}, func(cur []entity.Identity) ([]entity.Identity, error) {
		for _, existing := range cur {
			if strings.EqualFold(existing.Email, ident.Email) {
				return nil, domain.ErrEmailAlreadyExists
			}
			if existing.ID == ident.ID {
				return nil, domain.ErrDuplicate
			}
		}
		return append(cur, ident), nil
	})
	if err != nil {
		return nil, err
	}
	return &ident, nil
}
