// Package store owns every SQL statement in the system. Handlers never
// touch database/sql directly; they call store methods which return
// apperrors values with the catalog messages, so a proactive check and a
// constraint violation surface identically to the client.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/machineapp/machine-backend/internal/apperrors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Store wraps the injected database handle.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// translate maps driver-level constraint violations onto the same
// user-visible errors as the proactive checks: unique violations become the
// "already exists" conflict, foreign key violations the "ID not found"
// error. Anything else is an internal failure.
func translate(err error, internalMsg, conflictMsg, fkMsg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return apperrors.Conflict(conflictMsg)
		case pqForeignKeyViolation:
			return apperrors.NotFound(fkMsg)
		}
	}
	return apperrors.Internal(internalMsg, err)
}

// exists reports whether a row with the given id is present. table must be
// one of the fixed table names; it is never caller input.
func (s *Store) exists(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	var found bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&found)
	if err != nil {
		return false, err
	}
	return found, nil
}
