package entity

import "fmt"

// Role rol de una identidad; determina el tier de precio y la elegibilidad para comisiones.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleSalesperson   Role = "salesperson"
	RoleSpecialClient Role = "specialClient"
	RoleClient        Role = "client"
)

var validRoles = []Role{RoleAdmin, RoleSalesperson, RoleSpecialClient, RoleClient}

// String implementa fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid indica si el rol es conocido.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole convierte texto libre en Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("rol inválido %q", value)
}

// Identity usuario registrado. Pertenece al proveedor de identidad externo;
// el core solo lee ID y Role.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
