package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, restaurant_id, email, password_hash, first_name, last_name, role, active, created_by, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. El email es único sin distinguir mayúsculas (users_email_key).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.RestaurantID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		string(user.Role), user.Active, user.CreatedBy, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if violatedConstraint(err) == "users_email_key" {
				return domain.ErrEmailAlreadyExists
			}
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email (para login).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List lista usuarios dentro del alcance con filtros opcionales.
func (r *UserRepo) List(ctx context.Context, scope access.Scope, filter repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	cond, args := scopeClause(scope, "restaurant_id", "id", 1)
	where := []string{cond}
	if filter.Role != "" {
		args = append(args, string(filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.EmailContains != "" {
		args = append(args, "%"+escapeLike(strings.ToLower(filter.EmailContains))+"%")
		where = append(where, fmt.Sprintf("LOWER(email) LIKE $%d", len(args)))
	}
	page, pageArgs := pageClause(limit, offset, len(args)+1)
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at, id` + page
	rows, err := r.q.Query(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update no modifica email ni created_*.
func (r *UserRepo) Update(ctx context.Context, scope access.Scope, user *entity.User) error {
	cond, args := scopeClause(scope, "restaurant_id", "id", 9)
	query := `
		UPDATE users SET restaurant_id = $2, password_hash = $3, first_name = $4, last_name = $5,
			role = $6, active = $7, updated_at = $8
		WHERE id = $1 AND ` + cond
	tag, err := r.q.Exec(ctx, query, append([]any{
		user.ID, user.RestaurantID, user.PasswordHash, user.FirstName, user.LastName,
		string(user.Role), user.Active, user.UpdatedAt,
	}, args...)...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra el usuario. Los usuarios que creó conservan created_by = NULL.
func (r *UserRepo) Delete(ctx context.Context, scope access.Scope, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cond, args := scopeClause(scope, "restaurant_id", "id", 2)
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1 AND `+cond, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(&u.ID, &u.RestaurantID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&role, &u.Active, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
