package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-memdb"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	tx txScope
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	if u.RestaurantID != nil {
		id := *u.RestaurantID
		c.RestaurantID = &id
	}
	if u.CreatedBy != nil {
		by := *u.CreatedBy
		c.CreatedBy = &by
	}
	return &c
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.tx.write(func(txn *memdb.Txn) error {
		dup, err := first[entity.User](txn, tableUsers, indexEmail, user.Email)
		if err != nil {
			return err
		}
		if dup != nil {
			return domain.ErrEmailAlreadyExists
		}
		byID, err := first[entity.User](txn, tableUsers, indexID, user.ID)
		if err != nil {
			return err
		}
		if byID != nil {
			return fmt.Errorf("%w: usuario %s ya existe", domain.ErrConflict, user.ID)
		}
		return txn.Insert(tableUsers, cloneUser(user))
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(indexID, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(indexEmail, email)
}

func (r *UserRepo) getBy(index, value string) (*entity.User, error) {
	var out *entity.User
	err := r.tx.read(func(txn *memdb.Txn) error {
		found, err := first[entity.User](txn, tableUsers, index, value)
		if err != nil || found == nil {
			return err
		}
		out = cloneUser(found)
		return nil
	})
	return out, err
}

func (r *UserRepo) List(ctx context.Context, scope access.Scope, filter repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	needle := strings.ToLower(filter.EmailContains)
	var out []*entity.User
	err := r.tx.read(func(txn *memdb.Txn) error {
		items, err := all(txn, tableUsers, func(u *entity.User) bool {
			if !scope.Matches(access.TargetOfUser(u)) {
				return false
			}
			if filter.Role != "" && u.Role != filter.Role {
				return false
			}
			return needle == "" || strings.Contains(strings.ToLower(u.Email), needle)
		})
		if err != nil {
			return err
		}
		for _, u := range page(items, userKey, limit, offset) {
			out = append(out, cloneUser(u))
		}
		return nil
	})
	return out, err
}

// Update no modifica email ni fecha de creación.
func (r *UserRepo) Update(ctx context.Context, scope access.Scope, user *entity.User) error {
	return r.tx.write(func(txn *memdb.Txn) error {
		stored, err := r.scoped(txn, scope, user.ID)
		if err != nil {
			return err
		}
		updated := cloneUser(user)
		updated.Email = stored.Email
		updated.CreatedAt = stored.CreatedAt
		return txn.Insert(tableUsers, updated)
	})
}

func (r *UserRepo) Delete(ctx context.Context, scope access.Scope, id string) error {
	return r.tx.write(func(txn *memdb.Txn) error {
		stored, err := r.scoped(txn, scope, id)
		if err != nil {
			return err
		}
		return txn.Delete(tableUsers, stored)
	})
}

func (r *UserRepo) scoped(txn *memdb.Txn, scope access.Scope, id string) (*entity.User, error) {
	stored, err := first[entity.User](txn, tableUsers, indexID, id)
	if err != nil {
		return nil, err
	}
	if stored == nil || !scope.Matches(access.TargetOfUser(stored)) {
		return nil, domain.ErrNotFound
	}
	return stored, nil
}

func userKey(u *entity.User) (int64, string) { return u.CreatedAt.UnixNano(), u.ID }
