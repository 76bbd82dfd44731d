package entity

import (
	"strings"
	"time"
)

// Role es el conjunto cerrado de roles del sistema.
type Role string

// Roles válidos para User.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleCook       Role = "cook"
	RoleWaiter     Role = "waiter"
	RoleAccountant Role = "accountant"
)

// Roles devuelve todos los roles conocidos, del más al menos privilegiado.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleCook, RoleWaiter, RoleAccountant}
}

// ParseRole convierte un string (sin distinguir mayúsculas) en Role.
// Devuelve false si el valor no pertenece a la enumeración.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// Valid informa si el rol pertenece a la enumeración cerrada.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleCook, RoleWaiter, RoleAccountant:
		return true
	}
	return false
}

// IsOperational informa si es un rol de personal (cocina, sala, contabilidad).
// Son los únicos roles que un Admin puede asignar.
func (r Role) IsOperational() bool {
	return r == RoleCook || r == RoleWaiter || r == RoleAccountant
}

func (r Role) String() string { return string(r) }

// User representa un usuario autenticable. Salvo SuperAdmin, pertenece a un Restaurant.
type User struct {
	ID           string
	RestaurantID *string // nil solo para super_admin
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         Role
	Active       bool
	CreatedBy    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRestaurant informa si el usuario tiene restaurante asignado.
func (u *User) HasRestaurant() bool {
	return u.RestaurantID != nil && *u.RestaurantID != ""
}

// TenantID devuelve el ID del restaurante o "" si no tiene.
func (u *User) TenantID() string {
	if !u.HasRestaurant() {
		return ""
	}
	return *u.RestaurantID
}

// NormalizeEmail recorta espacios y pasa el dominio a minúsculas (la parte local se respeta).
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
