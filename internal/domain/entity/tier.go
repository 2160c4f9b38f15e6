package entity

// Tier identificador de uno de los tres precios fijos de un producto.
type Tier string

const (
	Tier1 Tier = "tier1"
	Tier2 Tier = "tier2"
	Tier3 Tier = "tier3"
)

// IsValid indica si el tier es conocido.
func (t Tier) IsValid() bool {
	return t == Tier1 || t == Tier2 || t == Tier3
}
