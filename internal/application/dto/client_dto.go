package dto

import "time"

// CreateClientRequest entrada para crear un cliente. DateOfBirth en formato YYYY-MM-DD.
type CreateClientRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Phone       string  `json:"phone" validate:"max=50"`
	DateOfBirth *string `json:"date_of_birth"`
	Address     string  `json:"address" validate:"max=500"`
}

// UpdateClientRequest entrada para actualización parcial (el estado se cambia por su propio endpoint).
type UpdateClientRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=50"`
	DateOfBirth *string `json:"date_of_birth"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

// UpdateClientStatusRequest cambio de estado: active | inactive.
type UpdateClientStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateOfBirth *string   `json:"date_of_birth"`
	Address     string    `json:"address"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientListResponse lista paginada de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
