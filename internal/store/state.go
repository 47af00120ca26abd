package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/models"
)

// CreateState inserts a state after confirming the owning country exists
// and no sibling under that country carries the same name (case-insensitive).
func (s *Store) CreateState(ctx context.Context, name string, countryID uuid.UUID) (*models.State, error) {
	found, err := s.exists(ctx, "countries", countryID)
	if err != nil {
		return nil, apperrors.Internal(messages.StateCreateError, err)
	}
	if !found {
		return nil, apperrors.NotFound(messages.CountryIDNotFound)
	}

	var existing uuid.UUID
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM states WHERE country_id = $1 AND LOWER(name) = LOWER($2)`,
		countryID, name).Scan(&existing)
	if err == nil {
		return nil, apperrors.Conflict(messages.StateAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal(messages.StateCreateError, err)
	}

	state := &models.State{Name: name, CountryID: countryID}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO states (name, country_id) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		name, countryID).Scan(&state.ID, &state.CreatedAt, &state.UpdatedAt)
	if err != nil {
		return nil, translate(err, messages.StateCreateError,
			messages.StateAlreadyExists, messages.CountryIDNotFound)
	}
	return state, nil
}

// GetState fetches one state by id.
func (s *Store) GetState(ctx context.Context, id uuid.UUID) (*models.State, error) {
	state := &models.State{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, country_id, created_at, updated_at FROM states WHERE id = $1`,
		id).Scan(&state.ID, &state.Name, &state.CountryID, &state.CreatedAt, &state.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.StateIDNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.StateFetchError, err)
	}
	return state, nil
}

// GetStateDetail fetches a state joined with its country's name.
func (s *Store) GetStateDetail(ctx context.Context, id uuid.UUID) (*models.StateDetail, error) {
	detail := &models.StateDetail{}
	err := s.db.QueryRowContext(ctx,
		`SELECT s.id, s.name, s.country_id, c.name
		 FROM states s JOIN countries c ON c.id = s.country_id
		 WHERE s.id = $1`,
		id).Scan(&detail.ID, &detail.Name, &detail.CountryID, &detail.CountryName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.StateIDNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.StateFetchError, err)
	}
	return detail, nil
}

// ListStates returns one page of states ordered by creation time
// descending, with an optional case-insensitive name filter.
func (s *Store) ListStates(ctx context.Context, params models.ListParams) ([]models.State, int, error) {
	offset := params.Normalize()
	search := strings.TrimSpace(params.Search)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, country_id, created_at, updated_at FROM states
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		search, params.Limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal(messages.StateListFetchError, err)
	}
	defer rows.Close()

	states := []models.State{}
	for rows.Next() {
		var st models.State
		if err := rows.Scan(&st.ID, &st.Name, &st.CountryID, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, 0, apperrors.Internal(messages.StateListFetchError, err)
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal(messages.StateListFetchError, err)
	}

	var total int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM states WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`,
		search).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.Internal(messages.StateListFetchError, err)
	}

	return states, total, nil
}

// UpdateState renames a state and optionally moves it to another country.
// countryID == uuid.Nil keeps the current owner. The duplicate check runs
// against siblings under the resolved owner, excluding the state itself,
// and a same-name rename is rejected.
func (s *Store) UpdateState(ctx context.Context, id uuid.UUID, name string, countryID uuid.UUID) (*models.State, error) {
	current, err := s.GetState(ctx, id)
	if err != nil {
		return nil, err
	}

	if countryID != uuid.Nil {
		found, err := s.exists(ctx, "countries", countryID)
		if err != nil {
			return nil, apperrors.Internal(messages.StateEditError, err)
		}
		if !found {
			return nil, apperrors.NotFound(messages.CountryIDNotFound)
		}
	} else {
		countryID = current.CountryID
	}

	if strings.EqualFold(current.Name, name) {
		return nil, apperrors.Conflict(messages.StateAlreadyExists)
	}

	var duplicate uuid.UUID
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM states
		 WHERE country_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3`,
		countryID, name, id).Scan(&duplicate)
	if err == nil {
		return nil, apperrors.Conflict(messages.StateAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal(messages.StateEditError, err)
	}

	state := &models.State{ID: id, Name: name, CountryID: countryID}
	err = s.db.QueryRowContext(ctx,
		`UPDATE states SET name = $1, country_id = $2, updated_at = NOW() WHERE id = $3
		 RETURNING created_at, updated_at`,
		name, countryID, id).Scan(&state.CreatedAt, &state.UpdatedAt)
	if err != nil {
		return nil, translate(err, messages.StateEditError,
			messages.StateAlreadyExists, messages.CountryIDNotFound)
	}
	return state, nil
}

// DeleteState removes a state and its cities in one transaction.
func (s *Store) DeleteState(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetState(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Internal(messages.StateDeleteError, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cities WHERE state_id = $1`, id); err != nil {
		return apperrors.Internal(messages.StateDeleteError, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM states WHERE id = $1`, id); err != nil {
		return apperrors.Internal(messages.StateDeleteError, err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Internal(messages.StateDeleteError, err)
	}
	return nil
}
