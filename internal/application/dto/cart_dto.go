package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// AddCartItemRequest agrega unidades de un producto. Quantity <= 0 cuenta como 1.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// SetCartQuantityRequest fija la cantidad; 0 o menos quita la línea.
type SetCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse estado del carrito de la sesión.
type CartResponse struct {
	Namespace     string            `json:"namespace"`
	Items         []entity.CartItem `json:"items"`
	ItemCount     int               `json:"item_count"`
	SelectedTotal decimal.Decimal   `json:"selected_total"`
	AllTotal      decimal.Decimal   `json:"all_total"`
}
