package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"    // gestiona clientes y pólizas
	RoleAdjuster = "adjuster" // decide reclamaciones
)

// User representa un usuario del back-office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, agent, adjuster
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
