package dto

import "time"

// DateLayout formato de fechas de suscripción (sin hora).
const DateLayout = "2006-01-02"

// CreateRestaurantRequest entrada para crear un restaurante. El código único lo genera el sistema.
type CreateRestaurantRequest struct {
	Name             string                `json:"name" validate:"required,min=1,max=100"`
	SubscriptionDate *string               `json:"subscription_date" validate:"omitempty,datetime=2006-01-02"`
	ExpirationDate   *string               `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	Profile          *UpdateProfileRequest `json:"profile"`
}

// UpdateRestaurantRequest entrada para actualizar un restaurante (campos opcionales).
// El código único no es modificable.
type UpdateRestaurantRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=100"`
	Active         *bool   `json:"active"`
	ExpirationDate *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

// RestaurantResponse salida de un restaurante.
type RestaurantResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	UniqueCode       string    `json:"unique_code"`
	Active           bool      `json:"active"`
	SubscriptionDate string    `json:"subscription_date"`
	ExpirationDate   *string   `json:"expiration_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RestaurantListResponse lista paginada de restaurantes.
type RestaurantListResponse struct {
	Items []RestaurantResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// UpdateProfileRequest datos de contacto del restaurante (campos opcionales).
type UpdateProfileRequest struct {
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=15"`
	Address     *string `json:"address"`
	Website     *string `json:"website" validate:"omitempty,url"`
}

// ProfileResponse salida del perfil de un restaurante.
type ProfileResponse struct {
	RestaurantID string    `json:"restaurant_id"`
	PhoneNumber  string    `json:"phone_number"`
	Address      string    `json:"address"`
	Website      string    `json:"website"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfileListResponse lista paginada de perfiles.
type ProfileListResponse struct {
	Items []ProfileResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
