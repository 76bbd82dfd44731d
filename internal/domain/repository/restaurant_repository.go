package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// RestaurantRepository define el puerto de persistencia para Restaurant (DIP).
// La implementación vive en infrastructure.
type RestaurantRepository interface {
	// Create devuelve domain.ErrDuplicateTenantCode si el código único ya existe.
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	GetByCode(ctx context.Context, code string) (*entity.Restaurant, error)
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Restaurant, error)
	// Update nunca modifica UniqueCode.
	Update(ctx context.Context, scope access.Scope, restaurant *entity.Restaurant) error
}

// ProfileRepository puerto de persistencia para RestaurantProfile.
type ProfileRepository interface {
	// CreateIfAbsent crea el perfil si el restaurante aún no tiene uno.
	CreateIfAbsent(ctx context.Context, profile *entity.RestaurantProfile) error
	GetByRestaurantID(ctx context.Context, restaurantID string) (*entity.RestaurantProfile, error)
	List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.RestaurantProfile, error)
	Update(ctx context.Context, scope access.Scope, profile *entity.RestaurantProfile) error
}
