package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO resumen de ventas de mostrador del día y del mes.
// Los montos son antes de impuesto; el margen usa el tier3 vigente como costo.
type DashboardSummaryDTO struct {
	TodaySales    decimal.Decimal `json:"today_sales"`
	TodayMargin   decimal.Decimal `json:"today_margin"`
	TodayCount    int             `json:"today_count"`
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal `json:"monthly_margin"`
	MonthlyCount  int             `json:"monthly_count"`
	TopProducts   []TopProductDTO `json:"top_products"`
	DateLabel     string          `json:"date_label"`
}

// TopProductDTO producto del ranking mensual por ingreso.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	MarginPct decimal.Decimal `json:"margin_pct"`
}
