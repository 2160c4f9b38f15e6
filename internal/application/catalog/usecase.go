package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
)

// UseCase almacén del catálogo. El core solo lee; Upsert y SetStatus existen para los
// colaboradores de gestión de catálogo (y el seed).
type UseCase struct {
	gw *persistence.Gateway
}

// NewUseCase construye el caso de uso.
func NewUseCase(gw *persistence.Gateway) *UseCase {
	return &UseCase{gw: gw}
}

// List devuelve todos los productos.
func (uc *UseCase) List(ctx context.Context) []entity.Product {
	return persistence.Load(ctx, uc.gw, repository.KeyProducts, []entity.Product{})
}

// ListActive devuelve los productos vendibles, opcionalmente filtrados por categoría.
func (uc *UseCase) ListActive(ctx context.Context, category string) []entity.Product {
	all := uc.List(ctx)
	out := make([]entity.Product, 0, len(all))
	for _, p := range all {
		if !p.IsActive() {
			continue
		}
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GetByID obtiene un producto por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	for _, p := range uc.List(ctx) {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ProductsByID índice del catálogo actual por ID (una sola lectura).
func (uc *UseCase) ProductsByID(ctx context.Context) map[string]*entity.Product {
	all := uc.List(ctx)
	index := make(map[string]*entity.Product, len(all))
	for i := range all {
		index[all[i].ID] = &all[i]
	}
	return index
}

// Upsert crea o reemplaza un producto. ID vacío genera uno nuevo; Status vacío = active.
func (uc *UseCase) Upsert(ctx context.Context, p entity.Product) (*entity.Product, error) {
	if strings.TrimSpace(p.Name) == "" || p.BasePrice.LessThan(decimal.Zero) || p.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if p.Tiers != nil && (p.Tiers.Tier1.IsNegative() || p.Tiers.Tier2.IsNegative() || p.Tiers.Tier3.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}
	if p.Status == "" {
		p.Status = entity.ProductStatusActive
	}
	if !p.Status.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.UpdatedAt = time.Now()

	_, err := persistence.Update(ctx, uc.gw, repository.KeyProducts, []entity.Product{}, func(cur []entity.Product) ([]entity.Product, error) {
		for i := range cur {
			if cur[i].ID == p.ID {
				cur[i] = p
				return cur, nil
			}
		}
		return append(cur, p), nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetStatus activa o desactiva un producto.
func (uc *UseCase) SetStatus(ctx context.Context, id string, status entity.ProductStatus) error {
	if !status.IsValid() {
		return domain.ErrInvalidInput
	}
	_, err := persistence.Update(ctx, uc.gw, repository.KeyProducts, []entity.Product{}, func(cur []entity.Product) ([]entity.Product, error) {
		for i := range cur {
			if cur[i].ID == id {
				cur[i].Status = status
				cur[i].UpdatedAt = time.Now()
				return cur, nil
			}
		}
		return nil, domain.ErrNotFound
	})
	return err
}
