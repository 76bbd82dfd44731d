package access

import (
	"errors"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// Códigos estables de rechazo (se exponen en la API y en métricas).
const (
	CodeUnauthenticated       = "UNAUTHENTICATED"
	CodeActionForbidden       = "ACTION_FORBIDDEN"
	CodeScopeViolation        = "SCOPE_VIOLATION"
	CodeRoleNotPermitted      = "ROLE_NOT_PERMITTED"
	CodeInvalidPrincipalState = "INVALID_PRINCIPAL_STATE"
	CodeSelfModification      = "SELF_MODIFICATION"
)

// Error rechazo de la compuerta. Err es uno de los errores de decisión de domain.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsError extrae el *Error de una cadena de errores.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func deny(code string, err error) (Decision, error) {
	return Decision{}, &Error{Code: code, Err: err}
}

// Request pregunta dirigida a la compuerta.
type Request struct {
	Action   Action
	Resource Resource
	// Target registro concreto (verificación por objeto). nil en listados y altas.
	Target *Target
	// RequestedRole rol pedido al crear o modificar un usuario ("" = sin cambio).
	RequestedRole entity.Role
	// RequestedTenantID restaurante pedido al crear o reasignar ("" = no indicado).
	RequestedTenantID string
}

// Overrides campos que el llamador debe persistir en lugar de los pedidos.
type Overrides struct {
	TenantID string
	// TenantForced indica que se pidió otro restaurante y se reemplazó.
	TenantForced bool
}

// Decision resultado de Authorize. Si Allowed, el llamador debe aplicar Scope
// tal cual a la consulta que ejecute.
type Decision struct {
	Allowed   bool
	Scope     Scope
	Overrides Overrides
}

// Gate combina la tabla de permisos y el alcance en una única decisión.
// No tiene estado: cada llamada es independiente.
type Gate struct{}

// NewGate construye la compuerta.
func NewGate() *Gate { return &Gate{} }

// Authorize decide si el usuario puede ejecutar la acción pedida.
// El usuario debe venir ya autenticado por el servicio de credenciales.
func (g *Gate) Authorize(u *entity.User, req Request) (Decision, error) {
	if u == nil || u.ID == "" || !u.Active {
		return deny(CodeUnauthenticated, domain.ErrUnauthenticated)
	}
	if !Allowed(u.Role, req.Action, req.Resource) {
		return deny(CodeActionForbidden, domain.ErrActionForbidden)
	}

	scope := ResolveScope(u, req.Resource)
	if scope.IsEmpty() {
		// Estado inválido pero alcanzable: lectura vacía, escritura prohibida.
		if req.Action.IsWrite() {
			return deny(CodeInvalidPrincipalState, domain.ErrInvalidPrincipalState)
		}
		if req.Target != nil {
			return deny(CodeScopeViolation, domain.ErrScopeViolation)
		}
		return Decision{Allowed: true, Scope: scope}, nil
	}

	if req.Target != nil && !scope.Matches(*req.Target) {
		return deny(CodeScopeViolation, domain.ErrScopeViolation)
	}

	if req.Resource == ResourceUser && req.RequestedRole != "" {
		if !CanAssignRole(u.Role, req.RequestedRole) {
			return deny(CodeRoleNotPermitted, domain.ErrRoleNotPermitted)
		}
	}

	d := Decision{Allowed: true, Scope: scope}
	switch {
	case req.Action == ActionCreate:
		d.Overrides = createOverrides(scope, req.RequestedTenantID)
	case req.Target != nil && req.RequestedTenantID != "" && req.RequestedTenantID != req.Target.TenantID:
		if req.Target.ID == u.ID {
			return deny(CodeSelfModification, domain.ErrActionForbidden)
		}
		// El registro reasignado debe seguir dentro del alcance.
		moved := Target{ID: req.Target.ID, TenantID: req.RequestedTenantID}
		if !scope.Matches(moved) {
			return deny(CodeScopeViolation, domain.ErrScopeViolation)
		}
		d.Overrides = Overrides{TenantID: req.RequestedTenantID}
	}

	if req.Resource == ResourceUser && req.Target != nil && req.Target.ID == u.ID {
		if req.Action == ActionDelete || (req.RequestedRole != "" && req.RequestedRole != u.Role) {
			return deny(CodeSelfModification, domain.ErrActionForbidden)
		}
	}
	return d, nil
}

func createOverrides(scope Scope, requested string) Overrides {
	if scope.Mode == ScopeAll {
		return Overrides{TenantID: requested}
	}
	return Overrides{
		TenantID:     scope.TenantID,
		TenantForced: requested != "" && requested != scope.TenantID,
	}
}
