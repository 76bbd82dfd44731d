package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RateLimiter limita intentos de login por clave (email). Allow devuelve false si se excedió.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AuthUseCase casos de uso de credenciales: login, autenticación de token y rotación de contraseña.
type AuthUseCase struct {
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	guard          *usecase.Guard
	tokens         jwt.Issuer
	limiter        RateLimiter
}

// NewAuthUseCase construye el caso de uso de auth. limiter puede ser nil (sin límite).
func NewAuthUseCase(
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	guard *usecase.Guard,
	jwtCfg JWTConfig,
	limiter RateLimiter,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		guard:          guard,
		tokens:         jwt.Issuer{Secret: jwtCfg.Secret, Issuer: jwtCfg.Issuer, ExpMinutes: jwtCfg.ExpMinutes},
		limiter:        limiter,
	}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	if err := usecase.ValidateInput(dto.LoginRequest{Email: email, Password: in.Password}); err != nil {
		return nil, err
	}
	if uc.limiter != nil {
		ok, err := uc.limiter.Allow(ctx, "login:"+email)
		if err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		if !ok {
			return nil, domain.ErrTooManyRequests
		}
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrUnauthenticated
	}

	claims := jwt.Claims{UserID: user.ID, Role: user.Role.String(), RestaurantID: user.TenantID()}
	var code *string
	if user.HasRestaurant() {
		r, err := uc.restaurantRepo.GetByID(ctx, user.TenantID())
		if err != nil {
			return nil, err
		}
		if r != nil {
			claims.RestaurantCode = r.UniqueCode
			code = &r.UniqueCode
		}
	}
	token, err := uc.tokens.Generate(claims)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:          token,
		Role:           user.Role.String(),
		RestaurantCode: code,
		User:           *toUserResponse(user),
	}, nil
}

// Authenticate valida el token y recarga el usuario, de modo que rol, restaurante y estado
// sean siempre los vigentes. Cualquier fallo devuelve domain.ErrUnauthenticated.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(actor *entity.User) (*dto.UserResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return toUserResponse(actor), nil
}

// RotatePassword cambia la contraseña de targetID. Pasa por la compuerta como update sobre credenciales:
// el personal solo rota la suya, admin las de su restaurante, super_admin cualquiera.
func (uc *AuthUseCase) RotatePassword(ctx context.Context, actor *entity.User, targetID string, in dto.ChangePasswordRequest) error {
	req := access.Request{Action: access.ActionUpdate, Resource: access.ResourceCredential}
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		if _, err := uc.guard.Authorize(actor, req); err != nil {
			return err
		}
		return domain.ErrUserNotFound
	}
	t := access.TargetOfUser(target)
	req.Target = &t
	d, err := uc.guard.Authorize(actor, req)
	if err != nil {
		return err
	}
	if err := usecase.ValidateInput(in); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	target.PasswordHash = string(hash)
	target.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, d.Scope, target); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		RestaurantID: u.RestaurantID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role.String(),
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
