package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func assertKind(t *testing.T, err error, kind apperrors.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	ae := apperrors.From(err, "unexpected")
	assert.Equal(t, kind, ae.Kind)
	assert.Equal(t, msg, ae.Message)
}

func TestCreateCountry(t *testing.T) {
	dupQuery := regexp.QuoteMeta(`SELECT id FROM countries WHERE LOWER(name) = LOWER($1)`)
	insertQuery := regexp.QuoteMeta(`INSERT INTO countries (name) VALUES ($1) RETURNING id, created_at, updated_at`)

	t.Run("inserts when name is free", func(t *testing.T) {
		st, mock := newMockStore(t)
		id := uuid.New()
		now := time.Now()

		mock.ExpectQuery(dupQuery).WithArgs("India").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(insertQuery).WithArgs("India").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(id.String(), now, now))

		country, err := st.CreateCountry(context.Background(), "India")
		require.NoError(t, err)
		assert.Equal(t, id, country.ID)
		assert.Equal(t, "India", country.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("case-insensitive duplicate is a conflict", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(dupQuery).WithArgs("INDIA").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

		country, err := st.CreateCountry(context.Background(), "INDIA")
		assert.Nil(t, country)
		assertKind(t, err, apperrors.KindConflict, messages.CountryAlreadyExists)
		// no INSERT was attempted
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateCountry(t *testing.T) {
	getQuery := regexp.QuoteMeta(`SELECT id, name, created_at, updated_at FROM countries WHERE id = $1`)
	dupQuery := regexp.QuoteMeta(`SELECT id FROM countries WHERE LOWER(name) = LOWER($1) AND id <> $2`)
	updateQuery := regexp.QuoteMeta(`UPDATE countries SET name = $1, updated_at = NOW() WHERE id = $2`)

	id := uuid.New()
	now := time.Now()
	currentRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(id.String(), "India", now, now)
	}

	t.Run("renames when new name is free", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnRows(currentRow())
		mock.ExpectQuery(dupQuery).WithArgs("Bharat", id).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(updateQuery).WithArgs("Bharat", id).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		country, err := st.UpdateCountry(context.Background(), id, "Bharat")
		require.NoError(t, err)
		assert.Equal(t, "Bharat", country.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("capitalization-only rename is a conflict", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnRows(currentRow())

		country, err := st.UpdateCountry(context.Background(), id, "INDIA")
		assert.Nil(t, country)
		assertKind(t, err, apperrors.KindConflict, messages.CountryAlreadyExists)
		// rejected before the duplicate lookup or UPDATE
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate check excludes the row itself", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnRows(currentRow())
		mock.ExpectQuery(dupQuery).WithArgs("Bharat", id).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

		country, err := st.UpdateCountry(context.Background(), id, "Bharat")
		assert.Nil(t, country)
		assertKind(t, err, apperrors.KindConflict, messages.CountryAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id is not found", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnError(sql.ErrNoRows)

		country, err := st.UpdateCountry(context.Background(), id, "Bharat")
		assert.Nil(t, country)
		assertKind(t, err, apperrors.KindNotFound, messages.CountryIDNotFound)
	})
}

func TestDeleteCountry(t *testing.T) {
	getQuery := regexp.QuoteMeta(`SELECT id, name, created_at, updated_at FROM countries WHERE id = $1`)
	deleteCities := regexp.QuoteMeta(`DELETE FROM cities WHERE state_id IN (SELECT id FROM states WHERE country_id = $1)`)
	deleteStates := regexp.QuoteMeta(`DELETE FROM states WHERE country_id = $1`)
	deleteCountry := regexp.QuoteMeta(`DELETE FROM countries WHERE id = $1`)

	id := uuid.New()
	now := time.Now()
	currentRow := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(id.String(), "India", now, now)
	}

	t.Run("cascades leaf to root in one transaction", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnRows(currentRow())
		mock.ExpectBegin()
		mock.ExpectExec(deleteCities).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(deleteStates).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(deleteCountry).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, st.DeleteCountry(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mid-cascade failure rolls back", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnRows(currentRow())
		mock.ExpectBegin()
		mock.ExpectExec(deleteCities).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(deleteStates).WithArgs(id).
			WillReturnError(errors.New("driver: bad connection"))
		mock.ExpectRollback()

		err := st.DeleteCountry(context.Background(), id)
		assertKind(t, err, apperrors.KindInternal, messages.CountryDeleteError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id is not found before any delete", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnError(sql.ErrNoRows)

		err := st.DeleteCountry(context.Background(), id)
		assertKind(t, err, apperrors.KindNotFound, messages.CountryIDNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
