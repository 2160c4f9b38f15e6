package entity

import "github.com/shopspring/decimal"

// LineItem línea "congelada" de cotización o venta: el precio se fija al crear el registro
// y nunca se recalcula aunque el catálogo cambie.
type LineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPriceAtCreation"`
	Tier      Tier            `json:"tier,omitempty"` // vacío en registros anteriores a guardar el tier
}

// LineTotal precio congelado por cantidad.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SumLines suma los totales de línea.
func SumLines(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}
