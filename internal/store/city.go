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

// CreateCity inserts a city after confirming the owning state exists and no
// sibling under that state carries the same name (case-insensitive).
func (s *Store) CreateCity(ctx context.Context, name string, stateID uuid.UUID) (*models.City, error) {
	found, err := s.exists(ctx, "states", stateID)
	if err != nil {
		return nil, apperrors.Internal(messages.CityCreateError, err)
	}
	if !found {
		return nil, apperrors.NotFound(messages.StateIDNotFound)
	}

	var existing uuid.UUID
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM cities WHERE state_id = $1 AND LOWER(name) = LOWER($2)`,
		stateID, name).Scan(&existing)
	if err == nil {
		return nil, apperrors.Conflict(messages.CityAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal(messages.CityCreateError, err)
	}

	city := &models.City{Name: name, StateID: stateID}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO cities (name, state_id) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		name, stateID).Scan(&city.ID, &city.CreatedAt, &city.UpdatedAt)
	if err != nil {
		return nil, translate(err, messages.CityCreateError,
			messages.CityAlreadyExists, messages.StateIDNotFound)
	}
	return city, nil
}

// GetCity fetches one city by id.
func (s *Store) GetCity(ctx context.Context, id uuid.UUID) (*models.City, error) {
	city := &models.City{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, state_id, created_at, updated_at FROM cities WHERE id = $1`,
		id).Scan(&city.ID, &city.Name, &city.StateID, &city.CreatedAt, &city.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.CityIDNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.CityFetchError, err)
	}
	return city, nil
}

// GetCityDetail fetches a city joined with its state's name.
func (s *Store) GetCityDetail(ctx context.Context, id uuid.UUID) (*models.CityDetail, error) {
	detail := &models.CityDetail{}
	err := s.db.QueryRowContext(ctx,
		`SELECT ci.id, ci.name, ci.state_id, st.name
		 FROM cities ci JOIN states st ON st.id = ci.state_id
		 WHERE ci.id = $1`,
		id).Scan(&detail.ID, &detail.Name, &detail.StateID, &detail.StateName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.CityIDNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.CityFetchError, err)
	}
	return detail, nil
}

// ListCities returns one page of cities ordered by creation time
// descending, with an optional case-insensitive name filter.
func (s *Store) ListCities(ctx context.Context, params models.ListParams) ([]models.City, int, error) {
	offset := params.Normalize()
	search := strings.TrimSpace(params.Search)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, state_id, created_at, updated_at FROM cities
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		search, params.Limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal(messages.CityListFetchError, err)
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, apperrors.Internal(messages.CityListFetchError, err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal(messages.CityListFetchError, err)
	}

	var total int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cities WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`,
		search).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.Internal(messages.CityListFetchError, err)
	}

	return cities, total, nil
}

// UpdateCity renames a city and optionally moves it to another state.
// stateID == uuid.Nil keeps the current owner. Same-name renames are
// rejected, and the sibling duplicate check excludes the city itself.
func (s *Store) UpdateCity(ctx context.Context, id uuid.UUID, name string, stateID uuid.UUID) (*models.City, error) {
	current, err := s.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}

	if stateID != uuid.Nil {
		found, err := s.exists(ctx, "states", stateID)
		if err != nil {
			return nil, apperrors.Internal(messages.CityEditError, err)
		}
		if !found {
			return nil, apperrors.NotFound(messages.StateIDNotFound)
		}
	} else {
		stateID = current.StateID
	}

	if strings.EqualFold(current.Name, name) {
		return nil, apperrors.Conflict(messages.CityAlreadyExists)
	}

	var duplicate uuid.UUID
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM cities
		 WHERE state_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3`,
		stateID, name, id).Scan(&duplicate)
	if err == nil {
		return nil, apperrors.Conflict(messages.CityAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal(messages.CityEditError, err)
	}

	city := &models.City{ID: id, Name: name, StateID: stateID}
	err = s.db.QueryRowContext(ctx,
		`UPDATE cities SET name = $1, state_id = $2, updated_at = NOW() WHERE id = $3
		 RETURNING created_at, updated_at`,
		name, stateID, id).Scan(&city.CreatedAt, &city.UpdatedAt)
	if err != nil {
		return nil, translate(err, messages.CityEditError,
			messages.CityAlreadyExists, messages.StateIDNotFound)
	}
	return city, nil
}

// DeleteCity removes a city. Cities are leaves, so there is no cascade.
func (s *Store) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCity(ctx, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cities WHERE id = $1`, id); err != nil {
		return apperrors.Internal(messages.CityDeleteError, err)
	}
	return nil
}
