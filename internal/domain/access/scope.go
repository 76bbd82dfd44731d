package access

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// ScopeMode tipo de filtro a aplicar sobre un conjunto de registros.
type ScopeMode uint8

const (
	// ScopeNone no coincide con ningún registro (fail closed).
	ScopeNone ScopeMode = iota
	// ScopeTenant coincide con los registros cuyo restaurante es TenantID.
	ScopeTenant
	// ScopeAll coincide con todos los registros.
	ScopeAll
)

func (m ScopeMode) String() string {
	switch m {
	case ScopeTenant:
		return "tenant"
	case ScopeAll:
		return "all"
	default:
		return "none"
	}
}

// Scope es el predicado que filtra registros antes de listarlos, leerlos,
// modificarlos o eliminarlos. Es la única regla de alcance del sistema: la
// usan por igual los listados y las verificaciones por objeto.
type Scope struct {
	Mode     ScopeMode
	TenantID string
	// UserID restringe además al propio registro del usuario (alcance "self").
	UserID string
}

// Target vista mínima de un registro para decidir si cae dentro del alcance.
// Para un restaurante, TenantID es su propio ID.
type Target struct {
	ID       string
	TenantID string
}

// All alcance sin restricción.
func All() Scope { return Scope{Mode: ScopeAll} }

// None alcance vacío.
func None() Scope { return Scope{Mode: ScopeNone} }

// Tenant alcance limitado a un restaurante.
func Tenant(tenantID string) Scope { return Scope{Mode: ScopeTenant, TenantID: tenantID} }

// Matches evalúa el predicado sobre un registro.
func (s Scope) Matches(t Target) bool {
	switch s.Mode {
	case ScopeAll:
		return true
	case ScopeTenant:
		if s.TenantID == "" || t.TenantID != s.TenantID {
			return false
		}
		return s.UserID == "" || t.ID == s.UserID
	default:
		return false
	}
}

// IsEmpty informa si el alcance no puede coincidir con ningún registro.
func (s Scope) IsEmpty() bool {
	return s.Mode == ScopeNone || (s.Mode == ScopeTenant && s.TenantID == "")
}

// ResolveScope calcula el alcance de un usuario sobre un tipo de recurso:
//  1. super_admin: todos los registros.
//  2. con restaurante: igualdad exacta de restaurante (y del propio ID si el
//     rol solo alcanza su propio registro).
//  3. sin restaurante: ninguno.
func ResolveScope(u *entity.User, resource Resource) Scope {
	if u == nil {
		return None()
	}
	if u.Role == entity.RoleSuperAdmin {
		return All()
	}
	if !u.HasRestaurant() {
		return None()
	}
	s := Tenant(u.TenantID())
	if ReachOf(u.Role, resource) == ReachSelf {
		s.UserID = u.ID
	}
	return s
}

// TargetOfUser vista de alcance de un usuario.
func TargetOfUser(u *entity.User) Target {
	return Target{ID: u.ID, TenantID: u.TenantID()}
}

// TargetOfRestaurant vista de alcance de un restaurante.
func TargetOfRestaurant(r *entity.Restaurant) Target {
	return Target{ID: r.ID, TenantID: r.ID}
}

// TargetOfProfile vista de alcance de un perfil de restaurante.
func TargetOfProfile(p *entity.RestaurantProfile) Target {
	return Target{ID: p.RestaurantID, TenantID: p.RestaurantID}
}
