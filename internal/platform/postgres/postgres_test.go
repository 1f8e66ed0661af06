package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: uniqueViolationCode}
	assert.True(t, isUniqueViolation(pgErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", pgErr)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("plain error")))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsSerializationFailure(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: serializationFailureCode}
	assert.True(t, isSerializationFailure(pgErr))
	assert.True(t, isSerializationFailure(fmt.Errorf("update failed: %w", pgErr)))

	assert.False(t, isSerializationFailure(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, isSerializationFailure(errors.New("plain error")))
}
