package entity

import "time"

// PosCustomer cliente capturado en mostrador (puede no tener cuenta en la tienda).
// Role define el tier de precio que aplica la caja.
type PosCustomer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"taxId,omitempty"` // RFC
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
