package entity

import "github.com/shopspring/decimal"

// CartItem línea "viva" del carrito: UnitPrice se recalcula contra el catálogo y el rol
// actuales en cada carga. No existe conversión de LineItem a CartItem.
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"` // siempre >= 1
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Selected  bool            `json:"selected"`
}

// LineTotal precio unitario por cantidad.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
