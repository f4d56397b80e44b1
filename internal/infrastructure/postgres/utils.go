package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// limitArg LIMIT NULL en PostgreSQL equivale a sin límite.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

// nullString cadena vacía -> NULL (columnas uuid opcionales).
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
