// Package pos contiene la caja: ledger de ventas de mostrador, clientes de caja y cortes.
package pos

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Ferreteria-api/pkg/metrics"
)

// RecordSaleInput datos de una venta. Items ya vienen congelados (ver PriceLines).
type RecordSaleInput struct {
	Items         []entity.LineItem
	CustomerRef   string
	SoldBy        string
	PaymentMethod entity.PaymentMethod
}

// LineRequest producto y cantidad pedidos en caja.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Ledger ventas POS: solo se agregan, nunca se modifican.
type Ledger struct {
	gw      *persistence.Gateway
	catalog ProductLookup
	now     func() time.Time
}

// NewLedger construye el ledger de ventas.
func NewLedger(gw *persistence.Gateway, catalog ProductLookup) *Ledger {
	return &Ledger{gw: gw, catalog: catalog, now: time.Now}
}

// PriceLines congela los precios vigentes para el rol del comprador.
func (l *Ledger) PriceLines(ctx context.Context, role entity.Role, reqs []LineRequest) ([]entity.LineItem, error) {
	products := l.catalog.ProductsByID(ctx)
	lines := make([]entity.LineItem, 0, len(reqs))
	for _, r := range reqs {
		if r.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		p, ok := products[r.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if !p.IsActive() {
			return nil, domain.ErrProductUnavailable
		}
		lines = append(lines, pricing.Freeze(p, role, r.Quantity))
	}
	return lines, nil
}

// RecordSale calcula subtotal, IVA (16%, a centavos) y total, y agrega la venta como Completed.
// Las líneas sin tier guardado lo toman del catálogo actual.
func (l *Ledger) RecordSale(ctx context.Context, in RecordSaleInput) (*entity.PosSale, error) {
	if !in.PaymentMethod.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	var products map[string]*entity.Product
	items := make([]entity.LineItem, len(in.Items))
	for i, it := range in.Items {
		if it.Quantity < 1 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if it.Tier == "" {
			if products == nil {
				products = l.catalog.ProductsByID(ctx)
			}
			it.Tier = pricing.InferTier(products[it.ProductID], it.UnitPrice)
		}
		items[i] = it
	}

	subtotal := entity.SumLines(items)
	tax := subtotal.Mul(entity.SaleTaxRate).Round(2)
	sale := entity.PosSale{
		ID:            uuid.New().String(),
		Date:          l.now(),
		CustomerRef:   in.CustomerRef,
		SoldBy:        in.SoldBy,
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal.Add(tax),
		PaymentMethod: in.PaymentMethod,
		Status:        entity.SaleStatusCompleted,
	}
	if _, err := persistence.Update(ctx, l.gw, repository.KeyPosSales, []entity.PosSale{}, func(cur []entity.PosSale) ([]entity.PosSale, error) {
		return append(cur, sale), nil
	}); err != nil {
		return nil, err
	}
	metrics.SalesRecorded.WithLabelValues(string(sale.PaymentMethod)).Inc()
	return &sale, nil
}

// List devuelve las ventas en orden de registro.
func (l *Ledger) List(ctx context.Context) []entity.PosSale {
	return persistence.Load(ctx, l.gw, repository.KeyPosSales, []entity.PosSale{})
}

// GetByID busca una venta.
func (l *Ledger) GetByID(ctx context.Context, id string) (*entity.PosSale, error) {
	for _, s := range l.List(ctx) {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListBetween ventas con from < Date <= to, ordenadas por fecha. from cero = desde el inicio.
func (l *Ledger) ListBetween(ctx context.Context, from, to time.Time) []entity.PosSale {
	var out []entity.PosSale
	for _, s := range l.List(ctx) {
		if (from.IsZero() || s.Date.After(from)) && !s.Date.After(to) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// TotalsByMethod suma los totales de las ventas por forma de pago.
func TotalsByMethod(sales []entity.PosSale) map[entity.PaymentMethod]decimal.Decimal {
	totals := make(map[entity.PaymentMethod]decimal.Decimal, len(entity.PaymentMethods))
	for _, m := range entity.PaymentMethods {
		totals[m] = decimal.Zero
	}
	for _, s := range sales {
		totals[s.PaymentMethod] = totals[s.PaymentMethod].Add(s.Total)
	}
	return totals
}
