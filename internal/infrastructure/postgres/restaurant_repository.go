package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// Asegura que RestaurantRepo implementa repository.RestaurantRepository.
var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

const restaurantColumns = `id, name, unique_code, active, subscription_date, expiration_date, created_at, updated_at`

// RestaurantRepo implementación del puerto RestaurantRepository sobre PostgreSQL.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

// Create persiste un restaurante. El código único lo protege restaurants_unique_code_key.
func (r *RestaurantRepo) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		restaurant.ID, restaurant.Name, restaurant.UniqueCode, restaurant.Active,
		restaurant.SubscriptionDate, restaurant.ExpirationDate,
		restaurant.CreatedAt, restaurant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == "restaurants_unique_code_key" {
				return domain.ErrDuplicateTenantCode
			}
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetByID obtiene un restaurante por ID.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
}

// GetByCode obtiene un restaurante por su código único.
func (r *RestaurantRepo) GetByCode(ctx context.Context, code string) (*entity.Restaurant, error) {
	return r.getOne(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE unique_code = $1`, code)
}

func (r *RestaurantRepo) getOne(ctx context.Context, query, arg string) (*entity.Restaurant, error) {
	out, err := scanRestaurant(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return out, nil
}

// List lista los restaurantes dentro del alcance, del más antiguo al más reciente.
func (r *RestaurantRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.Restaurant, error) {
	cond, args := scopeClause(scope, "id", "id", 1)
	page, pageArgs := pageClause(limit, offset, len(args)+1)
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE ` + cond +
		` ORDER BY created_at, id` + page
	rows, err := r.q.Query(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Restaurant
	for rows.Next() {
		item, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// Update actualiza nombre, estado y vencimiento. unique_code no se toca.
func (r *RestaurantRepo) Update(ctx context.Context, scope access.Scope, restaurant *entity.Restaurant) error {
	cond, args := scopeClause(scope, "id", "id", 6)
	query := `
		UPDATE restaurants SET name = $2, active = $3, expiration_date = $4, updated_at = $5
		WHERE id = $1 AND ` + cond
	tag, err := r.q.Exec(ctx, query, append([]any{
		restaurant.ID, restaurant.Name, restaurant.Active, restaurant.ExpirationDate, restaurant.UpdatedAt,
	}, args...)...)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRestaurant(row pgx.Row) (*entity.Restaurant, error) {
	var x entity.Restaurant
	err := row.Scan(&x.ID, &x.Name, &x.UniqueCode, &x.Active, &x.SubscriptionDate, &x.ExpirationDate,
		&x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &x, nil
}
