package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// MaxCodeAttempts intentos de generación de código único antes de fallar con ErrDuplicateTenantCode.
const MaxCodeAttempts = 5

// RestaurantUseCase aplica reglas de negocio para restaurantes (tenants).
type RestaurantUseCase struct {
	repo  repository.RestaurantRepository
	tx    RestaurantTxRunner
	guard *Guard
	codes CodeGenerator
	now   func() time.Time
}

// NewRestaurantUseCase construye el caso de uso con el puerto de persistencia y el runner transaccional.
func NewRestaurantUseCase(repo repository.RestaurantRepository, tx RestaurantTxRunner, guard *Guard) *RestaurantUseCase {
	return &RestaurantUseCase{repo: repo, tx: tx, guard: guard, codes: RandomCode, now: time.Now}
}

// WithCodeGenerator reemplaza el generador de códigos (tests).
func (uc *RestaurantUseCase) WithCodeGenerator(gen CodeGenerator) *RestaurantUseCase {
	uc.codes = gen
	return uc
}

// Create crea un restaurante y su perfil en la misma transacción.
// El código único se asigna aquí una sola vez; ante colisión se regenera hasta MaxCodeAttempts veces.
func (uc *RestaurantUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error) {
	if _, err := uc.guard.Authorize(actor, access.Request{
		Action:   access.ActionCreate,
		Resource: access.ResourceRestaurant,
	}); err != nil {
		return nil, err
	}
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := uc.now()
	subscription := truncateDay(now)
	if in.SubscriptionDate != nil {
		d, err := parseDate(*in.SubscriptionDate)
		if err != nil {
			return nil, err
		}
		subscription = d
	}
	var expiration *time.Time
	if in.ExpirationDate != nil {
		d, err := parseDate(*in.ExpirationDate)
		if err != nil {
			return nil, err
		}
		expiration = &d
	}

	restaurant := &entity.Restaurant{
		ID:               uuid.New().String(),
		Name:             name,
		Active:           true,
		SubscriptionDate: subscription,
		ExpirationDate:   expiration,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	profile := &entity.RestaurantProfile{
		RestaurantID: restaurant.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Profile != nil {
		applyProfile(profile, *in.Profile)
	}

	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		code, err := uc.codes()
		if err != nil {
			return nil, fmt.Errorf("generar código: %w", err)
		}
		restaurant.UniqueCode = code
		err = uc.tx.RunRestaurant(ctx, func(restaurants repository.RestaurantRepository, profiles repository.ProfileRepository) error {
			if err := restaurants.Create(ctx, restaurant); err != nil {
				return err
			}
			return profiles.CreateIfAbsent(ctx, profile)
		})
		if errors.Is(err, domain.ErrDuplicateTenantCode) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return entityToRestaurantResponse(restaurant), nil
	}
	return nil, fmt.Errorf("%w: %d intentos agotados", domain.ErrDuplicateTenantCode, MaxCodeAttempts)
}

// GetByID obtiene un restaurante dentro del alcance del usuario.
func (uc *RestaurantUseCase) GetByID(ctx context.Context, actor *entity.User, id string) (*dto.RestaurantResponse, error) {
	r, _, err := uc.load(ctx, actor, id, access.ActionRead)
	if err != nil {
		return nil, err
	}
	return entityToRestaurantResponse(r), nil
}

// List lista los restaurantes visibles para el usuario.
func (uc *RestaurantUseCase) List(ctx context.Context, actor *entity.User, limit, offset int) (*dto.RestaurantListResponse, error) {
	d, err := uc.guard.Authorize(actor, access.Request{Action: access.ActionRead, Resource: access.ResourceRestaurant})
	if err != nil {
		return nil, err
	}
	items := make([]dto.RestaurantResponse, 0)
	if !d.Scope.IsEmpty() {
		list, err := uc.repo.List(ctx, d.Scope, limit, offset)
		if err != nil {
			return nil, err
		}
		for _, r := range list {
			items = append(items, *entityToRestaurantResponse(r))
		}
	}
	return &dto.RestaurantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica nombre, estado o vencimiento. El código único nunca cambia.
func (uc *RestaurantUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateRestaurantRequest) (*dto.RestaurantResponse, error) {
	r, d, err := uc.load(ctx, actor, id, access.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
		}
		r.Name = name
	}
	if in.Active != nil {
		r.Active = *in.Active
	}
	if in.ExpirationDate != nil {
		if *in.ExpirationDate == "" {
			r.ExpirationDate = nil
		} else {
			exp, err := parseDate(*in.ExpirationDate)
			if err != nil {
				return nil, err
			}
			r.ExpirationDate = &exp
		}
	}
	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, d.Scope, r); err != nil {
		return nil, err
	}
	return entityToRestaurantResponse(r), nil
}

// Deactivate es la eliminación de un restaurante: solo lo marca inactivo (nunca se borra).
func (uc *RestaurantUseCase) Deactivate(ctx context.Context, actor *entity.User, id string) (*dto.RestaurantResponse, error) {
	r, d, err := uc.load(ctx, actor, id, access.ActionDelete)
	if err != nil {
		return nil, err
	}
	r.Active = false
	r.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, d.Scope, r); err != nil {
		return nil, err
	}
	return entityToRestaurantResponse(r), nil
}

// load obtiene el restaurante y verifica la acción sobre él. Si no existe, solo devuelve
// ErrNotFound cuando el rol puede intentar la acción.
func (uc *RestaurantUseCase) load(ctx context.Context, actor *entity.User, id string, action access.Action) (*entity.Restaurant, access.Decision, error) {
	req := access.Request{Action: action, Resource: access.ResourceRestaurant}
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, access.Decision{}, err
	}
	if r == nil {
		if _, err := uc.guard.Authorize(actor, req); err != nil {
			return nil, access.Decision{}, err
		}
		return nil, access.Decision{}, domain.ErrNotFound
	}
	target := access.TargetOfRestaurant(r)
	req.Target = &target
	d, err := uc.guard.Authorize(actor, req)
	if err != nil {
		return nil, access.Decision{}, err
	}
	return r, d, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (formato %s)", domain.ErrInvalidInput, s, dto.DateLayout)
	}
	return d, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entityToRestaurantResponse(r *entity.Restaurant) *dto.RestaurantResponse {
	if r == nil {
		return nil
	}
	out := &dto.RestaurantResponse{
		ID:               r.ID,
		Name:             r.Name,
		UniqueCode:       r.UniqueCode,
		Active:           r.Active,
		SubscriptionDate: r.SubscriptionDate.Format(dto.DateLayout),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.ExpirationDate != nil {
		exp := r.ExpirationDate.Format(dto.DateLayout)
		out.ExpirationDate = &exp
	}
	return out
}
