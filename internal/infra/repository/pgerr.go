package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberpro-booking/internal/db"
	domain "github.com/BruksfildServices01/barberpro-booking/internal/domain/appointment"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// isOverlapViolation: a exclusion constraint barrou a inserção.
func isOverlapViolation(err error) bool {
	code, _ := pgCode(err)
	return code == pgExclusionViolation
}

func isIdempotencyViolation(err error) bool {
	code, constraint := pgCode(err)
	return code == pgUniqueViolation && constraint == db.IdempotencyIndex
}

func isUniqueViolation(err error) bool {
	code, _ := pgCode(err)
	return code == pgUniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
