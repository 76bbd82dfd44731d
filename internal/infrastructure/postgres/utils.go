package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Restaurante-api/internal/domain/access"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// violatedConstraint nombre del constraint violado ("" si no es un error de PostgreSQL).
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// validID evita enviar a PostgreSQL ids que no son UUID (fallarían con 22P02 en vez de no encontrar nada).
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// scopeClause traduce un access.Scope a una condición SQL equivalente a Scope.Matches.
// tenantCol es la columna de restaurante del registro e idCol su clave. Los placeholders
// empiezan en $next. Devuelve la condición y sus argumentos.
func scopeClause(scope access.Scope, tenantCol, idCol string, next int) (string, []any) {
	switch {
	case scope.Mode == access.ScopeAll:
		return "TRUE", nil
	case scope.Mode == access.ScopeTenant && scope.TenantID != "":
		cond := fmt.Sprintf("%s = $%d", tenantCol, next)
		args := []any{scope.TenantID}
		if scope.UserID != "" {
			cond += fmt.Sprintf(" AND %s = $%d", idCol, next+1)
			args = append(args, scope.UserID)
		}
		return cond, args
	default:
		return "FALSE", nil
	}
}

// pageClause LIMIT/OFFSET con placeholders a partir de $next. limit <= 0 = sin límite.
func pageClause(limit, offset, next int) (string, []any) {
	offset = max(offset, 0)
	if limit <= 0 {
		return fmt.Sprintf(" OFFSET $%d", next), []any{offset}
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", next, next+1), []any{limit, offset}
}
