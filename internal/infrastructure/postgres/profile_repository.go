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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

const profileColumns = `restaurant_id, phone_number, address, website, created_at, updated_at`

// ProfileRepo perfiles de restaurante sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

// CreateIfAbsent inserta el perfil; si el restaurante ya tiene uno no hace nada.
func (r *ProfileRepo) CreateIfAbsent(ctx context.Context, p *entity.RestaurantProfile) error {
	query := `
		INSERT INTO restaurant_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (restaurant_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query, p.RestaurantID, p.PhoneNumber, p.Address, p.Website, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) GetByRestaurantID(ctx context.Context, restaurantID string) (*entity.RestaurantProfile, error) {
	if !validID(restaurantID) {
		return nil, nil
	}
	query := `SELECT ` + profileColumns + ` FROM restaurant_profiles WHERE restaurant_id = $1`
	p, err := scanProfile(r.q.QueryRow(ctx, query, restaurantID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *ProfileRepo) List(ctx context.Context, scope access.Scope, limit, offset int) ([]*entity.RestaurantProfile, error) {
	cond, args := scopeClause(scope, "restaurant_id", "restaurant_id", 1)
	page, pageArgs := pageClause(limit, offset, len(args)+1)
	query := `SELECT ` + profileColumns + ` FROM restaurant_profiles WHERE ` + cond +
		` ORDER BY created_at, restaurant_id` + page
	rows, err := r.q.Query(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.RestaurantProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProfileRepo) Update(ctx context.Context, scope access.Scope, p *entity.RestaurantProfile) error {
	cond, args := scopeClause(scope, "restaurant_id", "restaurant_id", 6)
	query := `
		UPDATE restaurant_profiles SET phone_number = $2, address = $3, website = $4, updated_at = $5
		WHERE restaurant_id = $1 AND ` + cond
	tag, err := r.q.Exec(ctx, query, append([]any{
		p.RestaurantID, p.PhoneNumber, p.Address, p.Website, p.UpdatedAt,
	}, args...)...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*entity.RestaurantProfile, error) {
	var p entity.RestaurantProfile
	if err := row.Scan(&p.RestaurantID, &p.PhoneNumber, &p.Address, &p.Website, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
