package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 8

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo        repository.UserRepository
	restaurants repository.RestaurantRepository
	guard       *Guard
	now         func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, restaurants repository.RestaurantRepository, guard *Guard) *UserUseCase {
	return &UserUseCase{repo: repo, restaurants: restaurants, guard: guard, now: time.Now}
}

// Create crea un usuario. Un admin solo crea personal operativo y siempre en su propio restaurante,
// aunque pida otro.
func (uc *UserUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	requested := entity.Role(strings.ToLower(strings.TrimSpace(in.Role)))
	d, err := uc.guard.Authorize(actor, access.Request{
		Action:            access.ActionCreate,
		Resource:          access.ResourceUser,
		RequestedRole:     requested,
		RequestedTenantID: strings.TrimSpace(in.RestaurantID),
	})
	if err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(in.Email)
	in.Email, in.Role, in.RestaurantID = email, string(requested), strings.TrimSpace(in.RestaurantID)
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	restaurantID, err := uc.placement(ctx, requested, d.Overrides.TenantID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	createdBy := actor.ID
	user := &entity.User{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         requested,
		Active:       true,
		CreatedBy:    &createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return entityToUserResponse(user), nil
}

// GetByID obtiene un usuario dentro del alcance del solicitante.
func (uc *UserUseCase) GetByID(ctx context.Context, actor *entity.User, id string) (*dto.UserResponse, error) {
	u, _, err := uc.load(ctx, actor, id, access.Request{Action: access.ActionRead})
	if err != nil {
		return nil, err
	}
	return entityToUserResponse(u), nil
}

// List lista usuarios visibles con filtros opcionales de rol y email.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User, in dto.UserFilterRequest, limit, offset int) (*dto.UserListResponse, error) {
	d, err := uc.guard.Authorize(actor, access.Request{Action: access.ActionRead, Resource: access.ResourceUser})
	if err != nil {
		return nil, err
	}
	filter := repository.UserFilter{EmailContains: strings.TrimSpace(in.Email)}
	if in.Role != "" {
		role, ok := entity.ParseRole(in.Role)
		if !ok {
			return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, in.Role)
		}
		filter.Role = role
	}
	items := make([]dto.UserResponse, 0)
	if !d.Scope.IsEmpty() {
		list, err := uc.repo.List(ctx, d.Scope, filter, limit, offset)
		if err != nil {
			return nil, err
		}
		for _, u := range list {
			items = append(items, *entityToUserResponse(u))
		}
	}
	return &dto.UserListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// Update modifica datos, rol, restaurante o estado de un usuario.
func (uc *UserUseCase) Update(ctx context.Context, actor *entity.User, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	req := access.Request{Action: access.ActionUpdate}
	if in.Role != nil {
		req.RequestedRole = entity.Role(strings.ToLower(strings.TrimSpace(*in.Role)))
		if req.RequestedRole == "" {
			return nil, fmt.Errorf("%w: role no puede ser vacío", domain.ErrInvalidInput)
		}
	}
	if in.RestaurantID != nil {
		req.RequestedTenantID = strings.TrimSpace(*in.RestaurantID)
	}
	u, d, err := uc.load(ctx, actor, id, req)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		role := string(req.RequestedRole)
		in.Role = &role
	}
	if err := ValidateInput(in); err != nil {
		return nil, err
	}
	if in.Active != nil && !*in.Active && u.ID == actor.ID {
		return nil, &access.Error{Code: access.CodeSelfModification, Err: domain.ErrActionForbidden}
	}

	role := u.Role
	if req.RequestedRole != "" {
		role = req.RequestedRole
	}
	tenant := u.TenantID()
	if d.Overrides.TenantID != "" {
		tenant = d.Overrides.TenantID
	}
	if role == entity.RoleSuperAdmin && req.RequestedTenantID == "" {
		tenant = ""
	}
	restaurantID, err := uc.placement(ctx, role, tenant)
	if err != nil {
		return nil, err
	}

	u.Role = role
	u.RestaurantID = restaurantID
	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, d.Scope, u); err != nil {
		return nil, err
	}
	return entityToUserResponse(u), nil
}

// Delete elimina definitivamente un usuario. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	_, d, err := uc.load(ctx, actor, id, access.Request{Action: access.ActionDelete})
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, d.Scope, id)
}

// load obtiene el usuario objetivo y pasa la compuerta con él como Target.
func (uc *UserUseCase) load(ctx context.Context, actor *entity.User, id string, req access.Request) (*entity.User, access.Decision, error) {
	req.Resource = access.ResourceUser
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, access.Decision{}, err
	}
	if u == nil {
		bare := access.Request{Action: req.Action, Resource: req.Resource}
		if _, err := uc.guard.Authorize(actor, bare); err != nil {
			return nil, access.Decision{}, err
		}
		return nil, access.Decision{}, domain.ErrUserNotFound
	}
	// Repetir el rol actual no es una reasignación.
	if req.RequestedRole == u.Role {
		req.RequestedRole = ""
	}
	target := access.TargetOfUser(u)
	req.Target = &target
	d, err := uc.guard.Authorize(actor, req)
	if err != nil {
		return nil, access.Decision{}, err
	}
	return u, d, nil
}

// placement valida el restaurante final según el rol: super_admin sin restaurante,
// el resto con un restaurante existente.
func (uc *UserUseCase) placement(ctx context.Context, role entity.Role, restaurantID string) (*string, error) {
	if role == entity.RoleSuperAdmin {
		if restaurantID != "" {
			return nil, fmt.Errorf("%w: super_admin no pertenece a un restaurante", domain.ErrInvalidInput)
		}
		return nil, nil
	}
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurant_id es requerido para el rol %s", domain.ErrInvalidInput, role)
	}
	r, err := uc.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: restaurante %s no existe", domain.ErrInvalidInput, restaurantID)
	}
	return &restaurantID, nil
}

func validatePassword(p string) error {
	if len(p) < MinPasswordLength {
		return fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
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
