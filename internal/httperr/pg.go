package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de erro do Postgres que o motor de reservas interpreta.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsUniqueViolation identifica a rejeição do índice único. É assim que
// o banco serializa reservas concorrentes para a mesma chave: exatamente
// um INSERT vence, os demais recebem 23505.
func IsUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

// IsExclusionViolation identifica a rejeição da constraint de exclusão
// de intervalos sobrepostos por barbeiro.
func IsExclusionViolation(err error) bool {
	return pgErrorCode(err) == pgExclusionViolation
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
