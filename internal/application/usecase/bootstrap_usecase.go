package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// EnsureSuperAdmin crea el super_admin inicial si aún no existe un usuario con ese email.
// Devuelve true si lo creó. Se ejecuta al arrancar, fuera de la compuerta de acceso.
func EnsureSuperAdmin(ctx context.Context, users repository.UserRepository, email, password string) (bool, error) {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}
	if !strings.Contains(email, "@") {
		return false, fmt.Errorf("%w: email de super_admin inválido", domain.ErrInvalidInput)
	}
	if err := validatePassword(password); err != nil {
		return false, err
	}
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now()
	err = users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleSuperAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return false, fmt.Errorf("crear super_admin: %w", err)
	}
	return true, nil
}
