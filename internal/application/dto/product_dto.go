package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// TierPricesRequest precios por tier (opcionales en conjunto).
type TierPricesRequest struct {
	Tier1 decimal.Decimal `json:"tier1"`
	Tier2 decimal.Decimal `json:"tier2"`
	Tier3 decimal.Decimal `json:"tier3"`
}

// UpsertProductRequest alta o reemplazo de producto (gestión de catálogo).
type UpsertProductRequest struct {
	ID        string             `json:"id" validate:"omitempty,max=64"`
	Name      string             `json:"name" validate:"required,min=1,max=200"`
	BasePrice decimal.Decimal    `json:"base_price"`
	Prices    *TierPricesRequest `json:"prices"`
	Stock     int                `json:"stock" validate:"min=0"`
	Category  string             `json:"category" validate:"max=100"`
	Status    string             `json:"status" validate:"omitempty,oneof=active inactive"`
	Gallery   []string           `json:"gallery" validate:"omitempty,dive,url"`
}

// ToEntity convierte la petición en producto.
func (r UpsertProductRequest) ToEntity() entity.Product {
	p := entity.Product{
		ID:        r.ID,
		Name:      r.Name,
		BasePrice: r.BasePrice,
		Stock:     r.Stock,
		Category:  r.Category,
		Status:    entity.ProductStatus(r.Status),
		Gallery:   r.Gallery,
	}
	if r.Prices != nil {
		p.Tiers = &entity.TierPrices{Tier1: r.Prices.Tier1, Tier2: r.Prices.Tier2, Tier3: r.Prices.Tier3}
	}
	return p
}

// SetProductStatusRequest activar o desactivar un producto.
type SetProductStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// CatalogItemResponse producto con el precio que paga quien consulta.
type CatalogItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Tier      entity.Tier     `json:"tier"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
	Gallery   []string        `json:"gallery,omitempty"`
}
