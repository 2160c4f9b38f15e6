package quote

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Ferreteria-api/pkg/metrics"
)

// ProductLookup índice del catálogo actual.
type ProductLookup interface {
	ProductsByID(ctx context.Context) map[string]*entity.Product
}

// Ledger cotizaciones con precios congelados. Solo cambia el estado de una cotización.
type Ledger struct {
	gw      *persistence.Gateway
	catalog ProductLookup
	now     func() time.Time
}

// NewLedger construye el ledger de cotizaciones.
func NewLedger(gw *persistence.Gateway, catalog ProductLookup) *Ledger {
	return &Ledger{gw: gw, catalog: catalog, now: time.Now}
}

// CreateQuote congela el precio vigente de cada línea seleccionada para el rol y guarda
// la cotización en Draft. Una línea cuyo producto ya no está en el catálogo conserva el
// precio del carrito.
func (l *Ledger) CreateQuote(ctx context.Context, customerID string, selected []entity.CartItem, role entity.Role, salespersonID string) (*entity.Quote, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	products := l.catalog.ProductsByID(ctx)
	lines := make([]entity.LineItem, 0, len(selected))
	for _, it := range selected {
		if it.Quantity < 1 {
			continue
		}
		p, ok := products[it.ProductID]
		if !ok {
			lines = append(lines, entity.LineItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Tier:      pricing.TierForRole(role),
			})
			continue
		}
		lines = append(lines, pricing.Freeze(p, role, it.Quantity))
	}

	q := entity.Quote{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		SalespersonID: salespersonID,
		Date:          l.now(),
		Status:        entity.QuoteStatusDraft,
		Items:         lines,
		Total:         entity.SumLines(lines),
	}
	if _, err := persistence.Update(ctx, l.gw, repository.KeyQuotes, []entity.Quote{}, func(cur []entity.Quote) ([]entity.Quote, error) {
		return append(cur, q), nil
	}); err != nil {
		return nil, err
	}
	metrics.QuotesCreated.Inc()
	return &q, nil
}

// Transition mueve la cotización a next. Una transición no permitida (incluida cualquiera
// desde Paid o Cancelled) no cambia nada y devuelve la cotización tal cual.
func (l *Ledger) Transition(ctx context.Context, id string, next entity.QuoteStatus) (*entity.Quote, error) {
	if !next.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	var result entity.Quote
	_, err := persistence.Update(ctx, l.gw, repository.KeyQuotes, []entity.Quote{}, func(cur []entity.Quote) ([]entity.Quote, error) {
		for i := range cur {
			if cur[i].ID != id {
				continue
			}
			if cur[i].Status.CanTransitionTo(next) {
				cur[i].Status = next
			}
			result = cur[i]
			return cur, nil
		}
		return nil, domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByID busca una cotización.
func (l *Ledger) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	for _, q := range l.List(ctx) {
		if q.ID == id {
			q := q
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List devuelve las cotizaciones, más recientes primero.
func (l *Ledger) List(ctx context.Context) []entity.Quote {
	quotes := persistence.Load(ctx, l.gw, repository.KeyQuotes, []entity.Quote{})
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Date.After(quotes[j].Date) })
	return quotes
}

// ListByCustomer cotizaciones de un cliente.
func (l *Ledger) ListByCustomer(ctx context.Context, customerID string) []entity.Quote {
	var out []entity.Quote
	for _, q := range l.List(ctx) {
		if q.CustomerID == customerID {
			out = append(out, q)
		}
	}
	return out
}
