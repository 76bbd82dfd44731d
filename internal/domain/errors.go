package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrTooManyRequests     = errors.New("demasiados intentos")
	ErrDuplicateTenantCode = errors.New("código de restaurante duplicado")
)

// Errores de decisión de acceso. Todos son deterministas y nunca se reintentan.
var (
	ErrUnauthenticated       = fmt.Errorf("%w: principal ausente o inválido", ErrUnauthorized)
	ErrActionForbidden       = fmt.Errorf("%w: el rol no permite la acción", ErrForbidden)
	ErrScopeViolation        = fmt.Errorf("%w: el registro pertenece a otro restaurante", ErrForbidden)
	ErrRoleNotPermitted      = fmt.Errorf("%w: rol no asignable por el solicitante", ErrForbidden)
	// ErrInvalidPrincipalState: usuario no super_admin sin restaurante. Es un ActionForbidden.
	ErrInvalidPrincipalState = fmt.Errorf("%w: usuario sin restaurante", ErrActionForbidden)
)
