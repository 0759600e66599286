package dto

import "time"

// CreatePolicyRequest entrada para emitir una póliza. PolicyNumber vacío = se genera POL-...
// Fechas en formato YYYY-MM-DD; StartDate vacío = hoy.
type CreatePolicyRequest struct {
	ClientID     string  `json:"client_id" validate:"required"`
	ProductID    string  `json:"product_id" validate:"required"`
	PolicyNumber string  `json:"policy_number" validate:"max=50"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
}

// UpdatePolicyStatusRequest cambio administrativo de estado con notas opcionales.
type UpdatePolicyStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// RenewPolicyRequest renovación: NewEndDate explícita o Months (por defecto 12).
type RenewPolicyRequest struct {
	Months     *int    `json:"months" validate:"omitempty,min=1,max=120"`
	NewEndDate *string `json:"new_end_date"`
	Notes      string  `json:"notes" validate:"max=2000"`
}

// PolicyResponse salida de una póliza. Status es el estado efectivo (con vencimiento aplicado);
// StoredStatus es el valor persistido.
type PolicyResponse struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name,omitempty"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	ProductType  string    `json:"product_type,omitempty"`
	PolicyNumber string    `json:"policy_number"`
	StartDate    string    `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	Status       string    `json:"status"`
	StoredStatus string    `json:"stored_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PolicyListResponse lista paginada de pólizas.
type PolicyListResponse struct {
	Items []PolicyResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
