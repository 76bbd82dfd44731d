package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/Restaurante-api/pkg/jwt"
)

const secret = "test-secret"

// fakeLimiter permite `remaining` intentos y luego rechaza.
type fakeLimiter struct {
	remaining int
	err       error
	keys      []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return false, f.err
	}
	if f.remaining <= 0 {
		return false, nil
	}
	f.remaining--
	return true, nil
}

type env struct {
	ctx      context.Context
	store    *memory.Store
	users    *usecase.UserUseCase
	sa       *entity.User
	restID   string
	cook     *entity.User
	newAuth  func(limiter auth.RateLimiter) *auth.AuthUseCase
	authCase *auth.AuthUseCase
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store, err := memory.NewStore()
	require.NoError(t, err)
	guard := usecase.NewGuard(nil, nil)

	_, err = usecase.EnsureSuperAdmin(ctx, store.Users(), "root@example.com", "rootpass123")
	require.NoError(t, err)
	sa, err := store.Users().GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)

	restaurants := usecase.NewRestaurantUseCase(store.Restaurants(), store, guard).
		WithCodeGenerator(func() (string, error) { return "654321", nil })
	r, err := restaurants.Create(ctx, sa, dto.CreateRestaurantRequest{Name: "A"})
	require.NoError(t, err)

	users := usecase.NewUserUseCase(store.Users(), store.Restaurants(), guard)
	resp, err := users.Create(ctx, sa, dto.CreateUserRequest{
		Email: "cook@a.com", Password: "password123", Role: "cook", RestaurantID: r.ID,
	})
	require.NoError(t, err)
	cook, err := store.Users().GetByID(ctx, resp.ID)
	require.NoError(t, err)

	e := &env{ctx: ctx, store: store, users: users, sa: sa, restID: r.ID, cook: cook}
	e.newAuth = func(limiter auth.RateLimiter) *auth.AuthUseCase {
		return auth.NewAuthUseCase(store.Users(), store.Restaurants(), guard,
			auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "restaurante-api"}, limiter)
	}
	e.authCase = e.newAuth(nil)
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenConRolYCodigo(t *testing.T) {
	e := setup(t)

	out, err := e.authCase.Login(e.ctx, dto.LoginRequest{Email: "cook@A.COM", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "cook", out.Role)
	require.NotNil(t, out.RestaurantCode)
	assert.Equal(t, "654321", *out.RestaurantCode)

	claims, err := jwt.Issuer{Secret: secret, Issuer: "restaurante-api"}.Parse(out.Token)
	require.NoError(t, err)
	assert.Equal(t, e.cook.ID, claims.UserID)
	assert.Equal(t, "cook", claims.Role)
	assert.Equal(t, e.restID, claims.RestaurantID)
	assert.Equal(t, "654321", claims.RestaurantCode)
}

func TestLogin_SuperAdminSinCodigo(t *testing.T) {
	e := setup(t)
	out, err := e.authCase.Login(e.ctx, dto.LoginRequest{Email: "root@example.com", Password: "rootpass123"})
	require.NoError(t, err)
	assert.Nil(t, out.RestaurantCode)
	assert.Equal(t, "super_admin", out.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	e := setup(t)

	_, err := e.authCase.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "mala-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.authCase.Login(e.ctx, dto.LoginRequest{Email: "nadie@a.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = e.authCase.Login(e.ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	e := setup(t)
	_, err := e.users.Update(e.ctx, e.sa, e.cook.ID, dto.UpdateUserRequest{Active: ptr(false)})
	require.NoError(t, err)

	_, err = e.authCase.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogin_RateLimit(t *testing.T) {
	e := setup(t)
	limiter := &fakeLimiter{remaining: 1}
	uc := e.newAuth(limiter)

	_, err := uc.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "password123"})
	require.NoError(t, err)
	_, err = uc.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrTooManyRequests)
	assert.Equal(t, []string{"login:cook@a.com", "login:cook@a.com"}, limiter.keys)

	failing := e.newAuth(&fakeLimiter{err: errors.New("redis caído")})
	_, err = failing.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "password123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrTooManyRequests)
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_RecargaUsuario(t *testing.T) {
	e := setup(t)
	out, err := e.authCase.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "password123"})
	require.NoError(t, err)

	u, err := e.authCase.Authenticate(e.ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, e.cook.ID, u.ID)

	// Cambios posteriores al login se ven en la siguiente petición.
	_, err = e.users.Update(e.ctx, e.sa, e.cook.ID, dto.UpdateUserRequest{Role: ptr("waiter")})
	require.NoError(t, err)
	u, err = e.authCase.Authenticate(e.ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWaiter, u.Role)

	_, err = e.users.Update(e.ctx, e.sa, e.cook.ID, dto.UpdateUserRequest{Active: ptr(false)})
	require.NoError(t, err)
	_, err = e.authCase.Authenticate(e.ctx, out.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthenticate_TokenInvalido(t *testing.T) {
	e := setup(t)
	_, err := e.authCase.Authenticate(e.ctx, "no-es-un-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	token, err := jwt.Issuer{Secret: secret, Issuer: "restaurante-api", ExpMinutes: 5}.Generate(jwt.Claims{UserID: "borrado"})
	require.NoError(t, err)
	_, err = e.authCase.Authenticate(e.ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rotación de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestRotatePassword(t *testing.T) {
	e := setup(t)
	other, err := e.users.Create(e.ctx, e.sa, dto.CreateUserRequest{
		Email: "waiter@a.com", Password: "password123", Role: "waiter", RestaurantID: e.restID,
	})
	require.NoError(t, err)

	// El personal solo rota la suya.
	err = e.authCase.RotatePassword(e.ctx, e.cook, other.ID, dto.ChangePasswordRequest{NewPassword: "nuevaclave1"})
	var ae *access.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, access.CodeScopeViolation, ae.Code)

	err = e.authCase.RotatePassword(e.ctx, e.cook, e.cook.ID, dto.ChangePasswordRequest{NewPassword: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, e.authCase.RotatePassword(e.ctx, e.cook, e.cook.ID, dto.ChangePasswordRequest{NewPassword: "nuevaclave1"}))
	_, err = e.authCase.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = e.authCase.Login(e.ctx, dto.LoginRequest{Email: "cook@a.com", Password: "nuevaclave1"})
	require.NoError(t, err)

	// super_admin rota cualquiera.
	require.NoError(t, e.authCase.RotatePassword(e.ctx, e.sa, other.ID, dto.ChangePasswordRequest{NewPassword: "otraclave1"}))

	err = e.authCase.RotatePassword(e.ctx, e.sa, "no-existe", dto.ChangePasswordRequest{NewPassword: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func ptr[T any](v T) *T { return &v }
