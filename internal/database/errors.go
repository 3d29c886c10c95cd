package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNumericOutOfRange   = "22003"
)

// IsUniqueViolation reports whether err is a unique constraint violation and
// returns the name of the violated constraint.
func IsUniqueViolation(err error) (string, bool) {
	return pgCode(err, codeUniqueViolation)
}

// IsForeignKeyViolation reports whether err is a foreign key violation and
// returns the name of the violated constraint.
func IsForeignKeyViolation(err error) (string, bool) {
	return pgCode(err, codeForeignKeyViolation)
}

// IsNumericOutOfRange reports whether a value did not fit its column type,
// such as an INT overflow or a NUMERIC precision overflow.
func IsNumericOutOfRange(err error) bool {
	_, ok := pgCode(err, codeNumericOutOfRange)
	return ok
}

func pgCode(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}
