package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado de publicación de un producto en el catálogo.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid indica si el estado es conocido.
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// ParseProductStatus convierte texto libre en ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	s := ProductStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("estado de producto inválido %q", value)
	}
	return s, nil
}

// TierPrices los tres precios fijos de un producto: público, preferente y costo.
type TierPrices struct {
	Tier1 decimal.Decimal `json:"tier1"` // público
	Tier2 decimal.Decimal `json:"tier2"` // cliente preferente
	Tier3 decimal.Decimal `json:"tier3"` // costo (vendedores)
}

// Price devuelve el precio del tier indicado; un tier desconocido cae en Tier1.
func (t TierPrices) Price(tier Tier) decimal.Decimal {
	switch tier {
	case Tier1:
		return t.Tier1
	case Tier2:
		return t.Tier2
	case Tier3:
		return t.Tier3
	}
	return t.Tier1
}

// Product registro del catálogo. Lo editan solo los colaboradores de gestión de catálogo;
// el core únicamente lo lee.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Tiers     *TierPrices     `json:"prices,omitempty"` // nil = sin precios por tier
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
	Status    ProductStatus   `json:"status"`
	Gallery   []string        `json:"gallery,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// HasTiers indica si el producto define precios por tier.
func (p *Product) HasTiers() bool {
	return p != nil && p.Tiers != nil
}

// IsActive indica si el producto puede venderse.
func (p *Product) IsActive() bool {
	return p != nil && p.Status == ProductStatusActive
}
