package entity

import "time"

// ClientStatus estado administrativo del cliente.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

// Valid informa si el estado es uno de los dos permitidos.
func (s ClientStatus) Valid() bool {
	switch s {
	case ClientStatusActive, ClientStatusInactive:
		return true
	}
	return false
}

// Client representa un asegurado. Email es único entre todos los clientes.
type Client struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	DateOfBirth *time.Time
	Address     string
	Status      ClientStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
