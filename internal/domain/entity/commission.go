package entity

import "github.com/shopspring/decimal"

// CommissionLine aporte de una línea de venta a la comisión de un vendedor.
type CommissionLine struct {
	SaleID    string          `json:"saleId"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Tier      Tier            `json:"tier"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// CommissionSummary comisión derivada (no persistida) de un vendedor.
type CommissionSummary struct {
	SalespersonID  string           `json:"salespersonId"`
	Pending        decimal.Decimal  `json:"pending"`
	Settled        decimal.Decimal  `json:"settled"`
	PendingSaleIDs []string         `json:"pendingSaleIds"`
	Lines          []CommissionLine `json:"lines"`
}
