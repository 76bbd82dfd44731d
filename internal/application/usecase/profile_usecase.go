package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// ProfileUseCase datos de contacto de cada restaurante. El perfil nace y muere con su restaurante.
type ProfileUseCase struct {
	repo  repository.ProfileRepository
	guard *Guard
	now   func() time.Time
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(repo repository.ProfileRepository, guard *Guard) *ProfileUseCase {
	return &ProfileUseCase{repo: repo, guard: guard, now: time.Now}
}

// Get obtiene el perfil de un restaurante.
func (uc *ProfileUseCase) Get(ctx context.Context, actor *entity.User, restaurantID string) (*dto.ProfileResponse, error) {
	p, _, err := uc.load(ctx, actor, restaurantID, access.ActionRead)
	if err != nil {
		return nil, err
	}
	return entityToProfileResponse(p), nil
}

// List lista los perfiles visibles.
func (uc *ProfileUseCase) List(ctx context.Context, actor *entity.User, limit, offset int) (*dto.ProfileListResponse, error) {
	d, err := uc.guard.Authorize(actor, access.Request{Action: access.ActionRead, Resource: access.ResourceProfile})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProfileResponse, 0)
	if !d.Scope.IsEmpty() {
		list, err := uc.repo.List(ctx, d.Scope, limit, offset)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			items = append(items, *entityToProfileResponse(p))
		}
	}
	return &dto.ProfileListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Update modifica teléfono, dirección o sitio web.
func (uc *ProfileUseCase) Update(ctx context.Context, actor *entity.User, restaurantID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, d, err := uc.load(ctx, actor, restaurantID, access.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	applyProfile(p, in)
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, d.Scope, p); err != nil {
		return nil, err
	}
	return entityToProfileResponse(p), nil
}

func (uc *ProfileUseCase) load(ctx context.Context, actor *entity.User, restaurantID string, action access.Action) (*entity.RestaurantProfile, access.Decision, error) {
	req := access.Request{Action: action, Resource: access.ResourceProfile}
	p, err := uc.repo.GetByRestaurantID(ctx, restaurantID)
	if err != nil {
		return nil, access.Decision{}, err
	}
	if p == nil {
		if _, err := uc.guard.Authorize(actor, req); err != nil {
			return nil, access.Decision{}, err
		}
		return nil, access.Decision{}, domain.ErrNotFound
	}
	target := access.TargetOfProfile(p)
	req.Target = &target
	d, err := uc.guard.Authorize(actor, req)
	if err != nil {
		return nil, access.Decision{}, err
	}
	return p, d, nil
}

func applyProfile(p *entity.RestaurantProfile, in dto.UpdateProfileRequest) {
	if in.PhoneNumber != nil {
		p.PhoneNumber = strings.TrimSpace(*in.PhoneNumber)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.Website != nil {
		p.Website = strings.TrimSpace(*in.Website)
	}
}

func entityToProfileResponse(p *entity.RestaurantProfile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		RestaurantID: p.RestaurantID,
		PhoneNumber:  p.PhoneNumber,
		Address:      p.Address,
		Website:      p.Website,
		UpdatedAt:    p.UpdatedAt,
	}
}
