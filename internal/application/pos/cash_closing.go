package pos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
)

// CashRegister cortes de caja sobre el ledger de ventas.
type CashRegister struct {
	gw     *persistence.Gateway
	ledger *Ledger
	now    func() time.Time
}

// NewCashRegister construye el registro de cortes.
func NewCashRegister(gw *persistence.Gateway, ledger *Ledger) *CashRegister {
	return &CashRegister{gw: gw, ledger: ledger, now: time.Now}
}

// CloseRegister cierra la caja: resume las ventas desde el último corte y compara el
// efectivo contado contra el esperado.
func (r *CashRegister) CloseRegister(ctx context.Context, closedBy string, countedCash decimal.Decimal) (*entity.CashClosing, error) {
	if closedBy == "" || countedCash.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	to := r.now()
	// la ventana arranca en el último cierre leído dentro de la actualización:
	// dos cierres nunca cubren las mismas ventas
	sales := r.ledger.ListBetween(ctx, time.Time{}, to)

	var closing entity.CashClosing
	if _, err := persistence.Update(ctx, r.gw, repository.KeyCashClosings, []entity.CashClosing{}, func(cur []entity.CashClosing) ([]entity.CashClosing, error) {
		var from time.Time
		if len(cur) > 0 {
			from = cur[len(cur)-1].To
		}
		closing = summarize(closedBy, countedCash, windowSales(sales, from), from, to)
		return append(cur, closing), nil
	}); err != nil {
		return nil, err
	}
	return &closing, nil
}

// ListClosings cortes en orden de registro.
func (r *CashRegister) ListClosings(ctx context.Context) []entity.CashClosing {
	return persistence.Load(ctx, r.gw, repository.KeyCashClosings, []entity.CashClosing{})
}

func windowSales(sales []entity.PosSale, from time.Time) []entity.PosSale {
	if from.IsZero() {
		return sales
	}
	out := make([]entity.PosSale, 0, len(sales))
	for _, s := range sales {
		if s.Date.After(from) {
			out = append(out, s)
		}
	}
	return out
}

func summarize(closedBy string, countedCash decimal.Decimal, sales []entity.PosSale, from, to time.Time) entity.CashClosing {
	byMethod := TotalsByMethod(sales)
	total := decimal.Zero
	for _, amount := range byMethod {
		total = total.Add(amount)
	}
	expected := byMethod[entity.PaymentCash]
	return entity.CashClosing{
		ID:           uuid.New().String(),
		ClosedAt:     to,
		ClosedBy:     closedBy,
		From:         from,
		To:           to,
		SalesCount:   len(sales),
		ByMethod:     byMethod,
		Total:        total,
		ExpectedCash: expected,
		CountedCash:  countedCash,
		Difference:   countedCash.Sub(expected),
	}
}
