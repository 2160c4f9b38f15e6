package dto

import "github.com/shopspring/decimal"

// SettleCommissionResponse resultado de liquidar a un vendedor (0 si no había pendiente).
type SettleCommissionResponse struct {
	SalespersonID string          `json:"salesperson_id"`
	Amount        decimal.Decimal `json:"amount"`
}
