package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// UserFilter filtros opcionales de listado (se combinan con el Scope).
type UserFilter struct {
	Role          entity.Role // "" = cualquiera
	EmailContains string      // búsqueda parcial sin distinguir mayúsculas
}

// UserRepository define el puerto de persistencia para User (DIP).
// Las operaciones que reciben access.Scope deben aplicarlo tal cual a la consulta.
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, scope access.Scope, filter UserFilter, limit, offset int) ([]*entity.User, error)
	// Update y Delete devuelven domain.ErrNotFound si el registro no está dentro del Scope.
	Update(ctx context.Context, scope access.Scope, user *entity.User) error
	Delete(ctx context.Context, scope access.Scope, id string) error
}
