// Package postgres implements the store interfaces on PostgreSQL using the
// pgx driver through database/sql.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	uniqueViolationCode      = "23505" // unique constraint violation
	serializationFailureCode = "40001" // serialization failure (retryable)
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a second review record for the same
// (student, card) pair.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isSerializationFailure checks if the given error is a PostgreSQL
// serialization failure. These are safe for callers to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailureCode
}
