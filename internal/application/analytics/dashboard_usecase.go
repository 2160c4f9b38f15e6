// Package analytics contiene el resumen de ventas de mostrador para el panel de administración.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/application/dto"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

const dashboardTopProducts = 5 // productos en el widget del panel

// SalesReader ventas POS en un rango (from, to].
type SalesReader interface {
	ListBetween(ctx context.Context, from, to time.Time) []entity.PosSale
}

// CatalogReader índice del catálogo actual; el tier3 funciona como costo.
type CatalogReader interface {
	ProductsByID(ctx context.Context) map[string]*entity.Product
}

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: el ledger POS (solo lectura). El margen usa el tier3 vigente como costo;
// un producto sin precios por tier o fuera del catálogo cuenta con costo cero.
type DashboardUseCase struct {
	sales   SalesReader
	catalog CatalogReader
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(sales SalesReader, catalog CatalogReader) *DashboardUseCase {
	return &DashboardUseCase{sales: sales, catalog: catalog, now: time.Now}
}

type salesMetrics struct {
	revenue decimal.Decimal
	cost    decimal.Decimal
	count   int
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos lecturas en paralelo:
//  1. ventas del mes en curso (hoy es un subconjunto)
//  2. índice del catálogo para costos y nombres
func (uc *DashboardUseCase) GetSummary(ctx context.Context) *dto.DashboardSummaryDTO {
	now := uc.now()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	salesCh := make(chan []entity.PosSale, 1)
	productsCh := make(chan map[string]*entity.Product, 1)
	go func() {
		// ListBetween excluye from: se retrocede un instante para incluir la medianoche del día 1.
		salesCh <- uc.sales.ListBetween(ctx, monthStart.Add(-time.Nanosecond), now)
	}()
	go func() {
		productsCh <- uc.catalog.ProductsByID(ctx)
	}()
	monthSales := <-salesCh
	products := <-productsCh

	var todaySales []entity.PosSale
	for _, s := range monthSales {
		if !s.Date.Before(todayStart) {
			todaySales = append(todaySales, s)
		}
	}
	today := metricsFor(todaySales, products)
	month := metricsFor(monthSales, products)

	return &dto.DashboardSummaryDTO{
		TodaySales:    today.revenue.Round(2),
		TodayMargin:   today.revenue.Sub(today.cost).Round(2),
		TodayCount:    today.count,
		MonthlySales:  month.revenue.Round(2),
		MonthlyMargin: month.revenue.Sub(month.cost).Round(2),
		MonthlyCount:  month.count,
		TopProducts:   topProducts(monthSales, products, dashboardTopProducts),
		DateLabel:     monthLabel(now),
	}
}

// metricsFor ingresos antes de impuesto y costo al tier3 actual.
func metricsFor(sales []entity.PosSale, products map[string]*entity.Product) salesMetrics {
	m := salesMetrics{revenue: decimal.Zero, cost: decimal.Zero, count: len(sales)}
	for _, s := range sales {
		m.revenue = m.revenue.Add(s.Subtotal)
		for _, it := range s.Items {
			m.cost = m.cost.Add(unitCost(products[it.ProductID]).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	return m
}

func unitCost(p *entity.Product) decimal.Decimal {
	if !p.HasTiers() {
		return decimal.Zero
	}
	return p.Tiers.Tier3
}

// topProducts los limit productos con mayor ingreso; empate por ID.
func topProducts(sales []entity.PosSale, products map[string]*entity.Product, limit int) []dto.TopProductDTO {
	byID := make(map[string]*dto.TopProductDTO)
	cost := make(map[string]decimal.Decimal)
	for _, s := range sales {
		for _, it := range s.Items {
			row, ok := byID[it.ProductID]
			if !ok {
				row = &dto.TopProductDTO{ProductID: it.ProductID, Name: it.Name, Revenue: decimal.Zero}
				byID[it.ProductID] = row
				cost[it.ProductID] = decimal.Zero
			}
			qty := decimal.NewFromInt(int64(it.Quantity))
			row.Quantity += it.Quantity
			row.Revenue = row.Revenue.Add(it.LineTotal())
			cost[it.ProductID] = cost[it.ProductID].Add(unitCost(products[it.ProductID]).Mul(qty))
		}
	}

	out := make([]dto.TopProductDTO, 0, len(byID))
	for id, row := range byID {
		if !row.Revenue.IsZero() {
			row.MarginPct = row.Revenue.Sub(cost[id]).Div(row.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
		}
		row.Revenue = row.Revenue.Round(2)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
