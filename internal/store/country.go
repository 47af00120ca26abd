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

// CreateCountry inserts a country after the global case-insensitive
// duplicate check. A concurrent insert that slips past the check is caught
// by the unique index and mapped to the same conflict message.
func (s *Store) CreateCountry(ctx context.Context, name string) (*models.Country, error) {
	var existing uuid.UUID
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM countries WHERE LOWER(name) = LOWER($1)`, name).Scan(&existing)
	if err == nil {
		return nil, apperrors.Conflict(messages.CountryAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal(messages.CountryCreateError, err)
	}

	country := &models.Country{Name: name}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO countries (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		name).Scan(&country.ID, &country.CreatedAt, &country.UpdatedAt)
	if err != nil {
		return nil, translate(err, messages.CountryCreateError,
			messages.CountryAlreadyExists, messages.CountryIDNotFound)
	}
	return country, nil
}

// GetCountry fetches one country by id.
func (s *Store) GetCountry(ctx context.Context, id uuid.UUID) (*models.Country, error) {
	country := &models.Country{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM countries WHERE id = $1`,
		id).Scan(&country.ID, &country.Name, &country.CreatedAt, &country.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound(messages.CountryIDNotFound)
	}
	if err != nil {
		return nil, apperrors.Internal(messages.CountryFetchError, err)
	}
	return country, nil
}

// ListCountries returns one page ordered by creation time descending, with
// an optional case-insensitive substring filter, plus the unfiltered total
// for the same filter.
func (s *Store) ListCountries(ctx context.Context, params models.ListParams) ([]models.Country, int, error) {
	offset := params.Normalize()
	search := strings.TrimSpace(params.Search)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM countries
		 WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		search, params.Limit, offset)
	if err != nil {
		return nil, 0, apperrors.Internal(messages.CountryListFetchError, err)
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, apperrors.Internal(messages.CountryListFetchError, err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.Internal(messages.CountryListFetchError, err)
	}

	var total int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM countries WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`,
		search).Scan(&total)
	if err != nil {
		return nil, 0, apperrors.Internal(messages.CountryListFetchError, err)
	}

	return countries, total, nil
}

// UpdateCountry renames a country. A new name that case-insensitively
// equals the current one is rejected as a duplicate, so capitalization-only
// renames fail.
func (s *Store) UpdateCountry(ctx context.Context, id uuid.UUID, name string) (*models.Country, error) {
	current, err := s.GetCountry(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(current.Name, name) {
		return nil, apperrors.Conflict(messages.CountryAlreadyExists)
	}

	var duplicate uuid.UUID
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM countries WHERE LOWER(name) = LOWER($1) AND id <> $2`,
		name, id).Scan(&duplicate)
	if err == nil {
		return nil, apperrors.Conflict(messages.CountryAlreadyExists)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal(messages.CountryEditError, err)
	}

	country := &models.Country{ID: id, Name: name}
	err = s.db.QueryRowContext(ctx,
		`UPDATE countries SET name = $1, updated_at = NOW() WHERE id = $2
		 RETURNING created_at, updated_at`,
		name, id).Scan(&country.CreatedAt, &country.UpdatedAt)
	if err != nil {
		return nil, translate(err, messages.CountryEditError,
			messages.CountryAlreadyExists, messages.CountryIDNotFound)
	}
	return country, nil
}

// DeleteCountry removes a country with its states and their cities in one
// transaction, leaf to root, so a mid-cascade failure never leaves a
// partially deleted hierarchy.
func (s *Store) DeleteCountry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCountry(ctx, id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Internal(messages.CountryDeleteError, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cities WHERE state_id IN (SELECT id FROM states WHERE country_id = $1)`,
		id); err != nil {
		return apperrors.Internal(messages.CountryDeleteError, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM states WHERE country_id = $1`, id); err != nil {
		return apperrors.Internal(messages.CountryDeleteError, err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM countries WHERE id = $1`, id); err != nil {
		return apperrors.Internal(messages.CountryDeleteError, err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Internal(messages.CountryDeleteError, err)
	}
	return nil
}
