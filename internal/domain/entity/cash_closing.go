package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashClosing corte de caja: resume las ventas registradas desde el corte anterior.
type CashClosing struct {
	ID           string                            `json:"id"`
	ClosedAt     time.Time                         `json:"closedAt"`
	ClosedBy     string                            `json:"closedBy"`
	From         time.Time                         `json:"from"`
	To           time.Time                         `json:"to"`
	SalesCount   int                               `json:"salesCount"`
	ByMethod     map[PaymentMethod]decimal.Decimal `json:"byMethod"`
	Total        decimal.Decimal                   `json:"total"`
	ExpectedCash decimal.Decimal                   `json:"expectedCash"`
	CountedCash  decimal.Decimal                   `json:"countedCash"`
	Difference   decimal.Decimal                   `json:"difference"` // contado - esperado
}
