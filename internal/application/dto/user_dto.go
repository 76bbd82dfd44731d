package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// RestaurantID se ignora si el solicitante es admin: se fuerza su propio restaurante.
type CreateUserRequest struct {
	Email        string `json:"email" validate:"required,email,max=254"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	FirstName    string `json:"first_name" validate:"omitempty,max=150"`
	LastName     string `json:"last_name" validate:"omitempty,max=150"`
	Role         string `json:"role" validate:"required,oneof=super_admin admin cook waiter accountant"`
	RestaurantID string `json:"restaurant_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
type UpdateUserRequest struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" validate:"omitempty,max=150"`
	Role         *string `json:"role" validate:"omitempty,oneof=super_admin admin cook waiter accountant"`
	RestaurantID *string `json:"restaurant_id" validate:"omitempty,uuid"`
	Active       *bool   `json:"active"`
}

// UserFilterRequest filtros opcionales de listado de usuarios.
type UserFilterRequest struct {
	Role  string `query:"role"`
	Email string `query:"email"`
}

// ChangePasswordRequest rotación de contraseña de un usuario.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	RestaurantID *string   `json:"restaurant_id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT. RestaurantCode solo para usuarios con restaurante.
type LoginResponse struct {
	Token          string       `json:"token"`
	Role           string       `json:"role"`
	RestaurantCode *string      `json:"restaurant_code,omitempty"`
	User           UserResponse `json:"user"`
}
