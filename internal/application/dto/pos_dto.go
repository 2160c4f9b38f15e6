package dto

import "github.com/shopspring/decimal"

// SaleLineRequest producto y cantidad de una venta de mostrador.
type SaleLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// RecordSaleRequest venta de mostrador; los precios se congelan según el rol del cliente.
type RecordSaleRequest struct {
	CustomerRef   string            `json:"customer_ref" validate:"omitempty,max=64"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=Cash Card Credit"`
	Items         []SaleLineRequest `json:"items" validate:"required,min=1,dive"`
}

// CreatePosCustomerRequest alta de cliente de caja.
type CreatePosCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	TaxID string `json:"tax_id" validate:"omitempty,min=12,max=13"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
	Role  string `json:"role" validate:"omitempty,oneof=client specialClient"`
}

// CloseRegisterRequest efectivo contado al cerrar caja.
type CloseRegisterRequest struct {
	CountedCash decimal.Decimal `json:"counted_cash"`
}
