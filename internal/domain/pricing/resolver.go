// Package pricing resuelve precios por rol y deriva tiers y tasas de comisión (servicio de dominio puro).
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

var (
	rateTier1 = decimal.NewFromFloat(0.05)
	rateTier2 = decimal.NewFromFloat(0.03)
)

// TierForRole client→tier1, admin→tier1, specialClient→tier2, salesperson→tier3.
// Un rol desconocido paga precio público.
func TierForRole(role entity.Role) entity.Tier {
	switch role {
	case entity.RoleClient, entity.RoleAdmin:
		return entity.Tier1
	case entity.RoleSpecialClient:
		return entity.Tier2
	case entity.RoleSalesperson:
		return entity.Tier3
	}
	return entity.Tier1
}

// ResolvePrice precio unitario de un producto para un rol.
// Sin precios por tier devuelve BasePrice sin importar el rol. Nunca falla.
func ResolvePrice(p *entity.Product, role entity.Role) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if !p.HasTiers() {
		return p.BasePrice
	}
	return p.Tiers.Price(TierForRole(role))
}

// InferTier compara un precio congelado contra los tiers del producto: gana la primera
// coincidencia exacta (tier1, luego tier2, luego tier3). Sin coincidencia, tier1.
func InferTier(p *entity.Product, unitPrice decimal.Decimal) entity.Tier {
	if !p.HasTiers() {
		return entity.Tier1
	}
	switch {
	case unitPrice.Equal(p.Tiers.Tier1):
		return entity.Tier1
	case unitPrice.Equal(p.Tiers.Tier2):
		return entity.Tier2
	case unitPrice.Equal(p.Tiers.Tier3):
		return entity.Tier3
	}
	return entity.Tier1
}

// ProductTier tier que aplica al rol sobre el producto; sin precios por tier es tier1.
func ProductTier(p *entity.Product, role entity.Role) entity.Tier {
	if !p.HasTiers() {
		return entity.Tier1
	}
	return TierForRole(role)
}

// CommissionRate tabla fija {tier1: 5%, tier2: 3%, tier3: 0%}.
func CommissionRate(tier entity.Tier) decimal.Decimal {
	switch tier {
	case entity.Tier1:
		return rateTier1
	case entity.Tier2:
		return rateTier2
	case entity.Tier3:
		return decimal.Zero
	}
	return rateTier1
}

// Freeze congela el precio vigente del producto para el rol en una línea de ledger.
// El tier se guarda en la línea para no tener que inferirlo después contra un catálogo editado.
func Freeze(p *entity.Product, role entity.Role, quantity int) entity.LineItem {
	return entity.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: ResolvePrice(p, role),
		Tier:      ProductTier(p, role),
	}
}
