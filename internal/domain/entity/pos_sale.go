package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SaleTaxRate IVA fijo del 16% sobre el subtotal.
var SaleTaxRate = decimal.NewFromFloat(0.16)

// PaymentMethod forma de pago de una venta POS.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentCredit PaymentMethod = "Credit"
)

// PaymentMethods lista ordenada de formas de pago (para cortes de caja).
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentCredit}

// IsValid indica si la forma de pago es conocida.
func (m PaymentMethod) IsValid() bool {
	for _, candidate := range PaymentMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParsePaymentMethod convierte texto libre en PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	m := PaymentMethod(value)
	if !m.IsValid() {
		return "", fmt.Errorf("forma de pago inválida %q", value)
	}
	return m, nil
}

// SaleStatusCompleted único estado de una venta: no hay pendientes ni anulaciones.
const SaleStatusCompleted = "Completed"

// PosSale venta de mostrador. Inmutable una vez creada.
type PosSale struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	CustomerRef   string          `json:"customerRef,omitempty"`
	SoldBy        string          `json:"soldBy,omitempty"`
	Items         []LineItem      `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Status        string          `json:"status"`
}
