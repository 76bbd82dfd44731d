package entity

import "time"

// UniqueCodeLength es la cantidad de dígitos del código público de un restaurante.
const UniqueCodeLength = 6

// Restaurant representa un tenant del sistema: la unidad de aislamiento de datos.
type Restaurant struct {
	ID               string
	Name             string
	UniqueCode       string // se asigna una sola vez al crear; inmutable
	Active           bool   // suscripción activa; "eliminar" solo lo desactiva
	SubscriptionDate time.Time
	ExpirationDate   *time.Time // nil = sin vencimiento
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RestaurantProfile datos de contacto del restaurante (relación 1:1, se crea junto al Restaurant).
type RestaurantProfile struct {
	RestaurantID string
	PhoneNumber  string
	Address      string
	Website      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
