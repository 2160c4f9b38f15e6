// Package commission deriva comisiones de vendedores desde el ledger POS y el índice de liquidaciones.
package commission

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/pricing"
	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Ferreteria-api/pkg/metrics"
)

var errNothingToSettle = errors.New("commission: sin ventas pendientes")

// SalesReader lectura del ledger POS.
type SalesReader interface {
	List(ctx context.Context) []entity.PosSale
}

// ProductLookup índice del catálogo actual (solo para líneas sin tier guardado).
type ProductLookup interface {
	ProductsByID(ctx context.Context) map[string]*entity.Product
}

// IdentityReader directorio de identidades.
type IdentityReader interface {
	ListByRole(ctx context.Context, role entity.Role) []entity.Identity
}

// Engine calcula y liquida comisiones. Nada de lo calculado se persiste salvo el índice.
type Engine struct {
	gw         *persistence.Gateway
	sales      SalesReader
	catalog    ProductLookup
	identities IdentityReader
}

// NewEngine construye el motor de comisiones.
func NewEngine(gw *persistence.Gateway, sales SalesReader, catalog ProductLookup, identities IdentityReader) *Engine {
	return &Engine{gw: gw, sales: sales, catalog: catalog, identities: identities}
}

// snapshot lo que se lee antes de tocar el índice (el gateway no es reentrante).
type snapshot struct {
	sales       []entity.PosSale
	products    map[string]*entity.Product
	salespeople map[string]bool
}

func (e *Engine) snapshot(ctx context.Context) snapshot {
	people := map[string]bool{}
	for _, ident := range e.identities.ListByRole(ctx, entity.RoleSalesperson) {
		people[ident.ID] = true
	}
	return snapshot{
		sales:       e.sales.List(ctx),
		products:    e.catalog.ProductsByID(ctx),
		salespeople: people,
	}
}

// Attribute vendedor al que se atribuye la venta: SoldBy si es un vendedor conocido; si no,
// la referencia de cliente cuando ésta es un vendedor (ventas registradas sin SoldBy).
func Attribute(sale entity.PosSale, salespeople map[string]bool) string {
	if sale.SoldBy != "" && salespeople[sale.SoldBy] {
		return sale.SoldBy
	}
	if sale.CustomerRef != "" && salespeople[sale.CustomerRef] {
		return sale.CustomerRef
	}
	return ""
}

// Lines comisión por línea: tier guardado o, si falta, inferido contra el catálogo actual.
func Lines(sale entity.PosSale, products map[string]*entity.Product) []entity.CommissionLine {
	out := make([]entity.CommissionLine, 0, len(sale.Items))
	for _, it := range sale.Items {
		tier := it.Tier
		if tier == "" {
			tier = pricing.InferTier(products[it.ProductID], it.UnitPrice)
		}
		rate := pricing.CommissionRate(tier)
		out = append(out, entity.CommissionLine{
			SaleID:    sale.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Tier:      tier,
			Rate:      rate,
			Amount:    it.LineTotal().Mul(rate),
		})
	}
	return out
}

func summarize(salespersonID string, snap snapshot, settled map[string]bool) entity.CommissionSummary {
	sum := entity.CommissionSummary{
		SalespersonID:  salespersonID,
		Pending:        decimal.Zero,
		Settled:        decimal.Zero,
		PendingSaleIDs: []string{},
		Lines:          []entity.CommissionLine{},
	}
	for _, sale := range snap.sales {
		if Attribute(sale, snap.salespeople) != salespersonID {
			continue
		}
		lines := Lines(sale, snap.products)
		amount := decimal.Zero
		for _, l := range lines {
			amount = amount.Add(l.Amount)
		}
		if settled[sale.ID] {
			sum.Settled = sum.Settled.Add(amount)
			continue
		}
		sum.Pending = sum.Pending.Add(amount)
		sum.PendingSaleIDs = append(sum.PendingSaleIDs, sale.ID)
		sum.Lines = append(sum.Lines, lines...)
	}
	return sum
}

// SettledIDs índice de ventas ya liquidadas.
func (e *Engine) SettledIDs(ctx context.Context) map[string]bool {
	return toSet(persistence.Load(ctx, e.gw, repository.KeyCommissionSettlements, []string{}))
}

// Pending comisión pendiente (y ya liquidada) de un vendedor.
func (e *Engine) Pending(ctx context.Context, salespersonID string) entity.CommissionSummary {
	snap := e.snapshot(ctx)
	return summarize(salespersonID, snap, e.SettledIDs(ctx))
}

// Summaries resumen de cada vendedor del directorio, ordenado por ID.
func (e *Engine) Summaries(ctx context.Context) []entity.CommissionSummary {
	snap := e.snapshot(ctx)
	settled := e.SettledIDs(ctx)
	ids := make([]string, 0, len(snap.salespeople))
	for id := range snap.salespeople {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]entity.CommissionSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, summarize(id, snap, settled))
	}
	return out
}

// Settle liquida lo pendiente del vendedor: agrega sus ventas al índice en una sola escritura
// y devuelve el monto. Sin pendientes devuelve 0 y no escribe.
func (e *Engine) Settle(ctx context.Context, salespersonID string) (decimal.Decimal, error) {
	snap := e.snapshot(ctx)
	amount := decimal.Zero
	_, err := persistence.Update(ctx, e.gw, repository.KeyCommissionSettlements, []string{}, func(cur []string) ([]string, error) {
		settled := toSet(cur)
		sum := summarize(salespersonID, snap, settled)
		if len(sum.PendingSaleIDs) == 0 {
			return nil, errNothingToSettle
		}
		for _, id := range sum.PendingSaleIDs {
			if !settled[id] {
				settled[id] = true
				cur = append(cur, id)
			}
		}
		amount = sum.Pending
		return cur, nil
	})
	if errors.Is(err, errNothingToSettle) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsPositive() {
		metrics.CommissionsSettled.Inc()
	}
	return amount, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
