package memory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var (
	_ repository.RestaurantRepository = (*RestaurantRepo)(nil)
	_ repository.ProfileRepository    = (*ProfileRepo)(nil)
)

// RestaurantRepo restaurantes en memoria.
type RestaurantRepo struct {
	tx txScope
}

func cloneRestaurant(r *entity.Restaurant) *entity.Restaurant {
	c := *r
	if r.ExpirationDate != nil {
		exp := *r.ExpirationDate
		c.ExpirationDate = &exp
	}
	return &c
}

func (r *RestaurantRepo) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	return r.tx.write(func(txn *memdb.Txn) error {
		dup, err := first[entity.Restaurant](txn, tableRestaurants, indexCode, restaurant.UniqueCode)
		if err != nil {
			return err
		}
		if dup != nil {
			return domain.ErrDuplicateTenantCode
		}
		byID, err := first[entity.Restaurant](txn, tableRestaurants, indexID, restaurant.ID)
		if err != nil {
			return err
		}
		if byID != nil {
			return fmt.Errorf("%w: restaurante %s ya existe", domain.ErrConflict, restaurant.ID)
		}
		return txn.Insert(tableRestaurants, cloneRestaurant(restaurant))
	})
}

func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	return r.getBy(indexID, id)
}

func (r *RestaurantRepo) GetByCode(ctx context.Context, code string) (*entity.Restaurant, error) {
	return r.getBy(indexCode, code)
}

func (r *RestaurantRepo) getBy(index, value string) (*entity.Restaurant, error) {
	var out *entity.Restaurant
	err := r.tx.read(func(txn *memdb.Txn) error {
		found, err := first[entity.Restaurant](txn, tableRestaurants, index, value)
		if err != nil || found == nil {
			return err
		}
		out = cloneRestaurant(found)
		return nil
	})
	return out, err
}

func (r *RestaurantRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Restaurant, error) {
	var out []*entity.Restaurant
	err := r.tx.read(func(txn *memdb.Txn) error {
		items, err := all(txn, tableRestaurants, func(x *entity.Restaurant) bool {
			return scope.Matches(access.TargetOfRestaurant(x))
		})
		if err != nil {
			return err
		}
		for _, x := range page(items, restaurantKey, limit, offset) {
			out = append(out, cloneRestaurant(x))
		}
		return nil
	})
	return out, err
}

// Update conserva el código único almacenado aunque el llamador traiga otro.
func (r *RestaurantRepo) Update(ctx context.Context, scope access.Scope, restaurant *entity.Restaurant) error {
	return r.tx.write(func(txn *memdb.Txn) error {
		stored, err := first[entity.Restaurant](txn, tableRestaurants, indexID, restaurant.ID)
		if err != nil {
			return err
		}
		if stored == nil || !scope.Matches(access.TargetOfRestaurant(stored)) {
			return domain.ErrNotFound
		}
		updated := cloneRestaurant(restaurant)
		updated.UniqueCode = stored.UniqueCode
		updated.CreatedAt = stored.CreatedAt
		return txn.Insert(tableRestaurants, updated)
	})
}

func restaurantKey(r *entity.Restaurant) (int64, string) { return r.CreatedAt.UnixNano(), r.ID }

// ProfileRepo perfiles en memoria, indexados por restaurante.
type ProfileRepo struct {
	tx txScope
}

func cloneProfile(p *entity.RestaurantProfile) *entity.RestaurantProfile {
	c := *p
	return &c
}

func (r *ProfileRepo) CreateIfAbsent(ctx context.Context, profile *entity.RestaurantProfile) error {
	return r.tx.write(func(txn *memdb.Txn) error {
		existing, err := first[entity.RestaurantProfile](txn, tableProfiles, indexID, profile.RestaurantID)
		if err != nil || existing != nil {
			return err
		}
		owner, err := first[entity.Restaurant](txn, tableRestaurants, indexID, profile.RestaurantID)
		if err != nil {
			return err
		}
		if owner == nil {
			return fmt.Errorf("%w: restaurante %s no existe", domain.ErrNotFound, profile.RestaurantID)
		}
		return txn.Insert(tableProfiles, cloneProfile(profile))
	})
}

func (r *ProfileRepo) GetByRestaurantID(ctx context.Context, restaurantID string) (*entity.RestaurantProfile, error) {
	var out *entity.RestaurantProfile
	err := r.tx.read(func(txn *memdb.Txn) error {
		found, err := first[entity.RestaurantProfile](txn, tableProfiles, indexID, restaurantID)
		if err != nil || found == nil {
			return err
		}
		out = cloneProfile(found)
		return nil
	})
	return out, err
}

func (r *ProfileRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.RestaurantProfile, error) {
	var out []*entity.RestaurantProfile
	err := r.tx.read(func(txn *memdb.Txn) error {
		items, err := all(txn, tableProfiles, func(p *entity.RestaurantProfile) bool {
			return scope.Matches(access.TargetOfProfile(p))
		})
		if err != nil {
			return err
		}
		for _, p := range page(items, profileKey, limit, offset) {
			out = append(out, cloneProfile(p))
		}
		return nil
	})
	return out, err
}

func (r *ProfileRepo) Update(ctx context.Context, scope access.Scope, profile *entity.RestaurantProfile) error {
	return r.tx.write(func(txn *memdb.Txn) error {
		stored, err := first[entity.RestaurantProfile](txn, tableProfiles, indexID, profile.RestaurantID)
		if err != nil {
			return err
		}
		if stored == nil || !scope.Matches(access.TargetOfProfile(stored)) {
			return domain.ErrNotFound
		}
		updated := cloneProfile(profile)
		updated.CreatedAt = stored.CreatedAt
		return txn.Insert(tableProfiles, updated)
	})
}

func profileKey(p *entity.RestaurantProfile) (int64, string) {
	return p.CreatedAt.UnixNano(), p.RestaurantID
}
