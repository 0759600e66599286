package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Seguros-api/internal/domain"
)

// Querier lo satisfacen *pgxpool.Pool y pgx.Tx; los repositorios aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation           = "23505"
	codeCheckViolation            = "23514"
	codeInvalidTextRepresentation = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isNoMatch indica que la búsqueda por clave no encontró fila. Un identificador con formato
// inválido (22P02 al convertir a UUID) tampoco puede coincidir.
func isNoMatch(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidTextRepresentation
}

// isUUID filtra identificadores antes de usarlos en listados sobre columnas UUID.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// constraintName devuelve el constraint violado, o "" si err no es un PgError.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// wrapWrite traduce violaciones de unicidad a domain.ErrConflict y de CHECK a
// domain.ErrInvalidArgument; el resto se envuelve con op.
func wrapWrite(op string, err error) error {
	if isUniqueViolation(err) {
		return domain.NewError(domain.ErrConflict, "registro duplicado",
			map[string]any{"constraint": constraintName(err)})
	}
	if pgCode(err) == codeCheckViolation {
		return domain.NewError(domain.ErrInvalidArgument, "valores fuera de las reglas del registro",
			map[string]any{"constraint": constraintName(err)})
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOne devuelve ErrNotFound si el comando no afectó filas.
func expectOne(tag pgconn.CommandTag, what string) error {
	if tag.RowsAffected() == 0 {
		return domain.NewError(domain.ErrNotFound, what+" no encontrado", nil)
	}
	return nil
}
