package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"sin autenticar", &access.Error{Code: access.CodeUnauthenticated, Err: domain.ErrUnauthenticated}, fiber.StatusUnauthorized, access.CodeUnauthenticated},
		{"fuera de alcance", &access.Error{Code: access.CodeScopeViolation, Err: domain.ErrScopeViolation}, fiber.StatusForbidden, access.CodeScopeViolation},
		{"auto modificación envuelta", fmt.Errorf("update: %w", &access.Error{Code: access.CodeSelfModification, Err: domain.ErrActionForbidden}), fiber.StatusForbidden, access.CodeSelfModification},
		{"token inválido", fmt.Errorf("%w: expirado", domain.ErrUnauthenticated), fiber.StatusUnauthorized, access.CodeUnauthenticated},
		{"credenciales", domain.ErrUnauthorized, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"límite", domain.ErrTooManyRequests, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"usuario inexistente", domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"email duplicado", domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{"código duplicado", fmt.Errorf("crear: %w", domain.ErrDuplicateTenantCode), fiber.StatusConflict, "DUPLICATE_TENANT_CODE"},
		{"validación", fmt.Errorf("%w: fecha", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{"otro", errors.New("conexión rechazada"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code, msg := classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestClassify_NoExponeErroresInternos(t *testing.T) {
	_, _, msg := classify(errors.New("pq: password authentication failed"))
	assert.Equal(t, "error interno", msg)
}
