package entity

import "time"

// Tipos de entidad auditables.
const (
	AuditEntityPolicy = "policy"
	AuditEntityClaim  = "claim"
	AuditEntityClient = "client"
)

// StatusChange registro append-only de un cambio de estado (bitácora de auditoría).
type StatusChange struct {
	ID         string
	EntityType string // ver constantes AuditEntity*
	EntityID   string
	OldStatus  string
	NewStatus  string
	Notes      string
	ChangedBy  string // ID de usuario; vacío si la acción no vino de un usuario autenticado
	ChangedAt  time.Time
}
