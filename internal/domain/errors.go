package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las capas superiores los traducen a códigos HTTP; los repositorios los envuelven con %w.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidArgument    = errors.New("argumento inválido")
	ErrInvalidState       = errors.New("operación inválida para el estado actual")
	ErrPreconditionFailed = errors.New("precondición no cumplida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrCreatedIncomplete  = errors.New("creado, pero la respuesta está incompleta")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

// DomainError error de dominio con mensaje legible y detalles estructurados
// (p. ej. conteos de dependientes que bloquean un borrado o la cobertura máxima).
// errors.Is(err, Kind) funciona gracias a Unwrap.
type DomainError struct {
	Kind    error
	Message string
	Details map[string]any
}

// Error implementa error.
func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

// Unwrap expone el tipo de error (sentinel) para errors.Is.
func (e *DomainError) Unwrap() error { return e.Kind }

// NewError construye un DomainError del tipo indicado.
func NewError(kind error, message string, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Message: message, Details: details}
}

// Details extrae los detalles de un DomainError envuelto en err (nil si no hay).
func Details(err error) map[string]any {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}

// Message devuelve el mensaje del DomainError envuelto en err, o err.Error() si no lo es.
func Message(err error) string {
	var de *DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return err.Error()
}
