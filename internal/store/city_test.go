package store

import (
	"context"
	"database/sql"
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

func TestCreateCityScopedDuplicate(t *testing.T) {
	stateExists := regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM states WHERE id = $1)`)
	dupQuery := regexp.QuoteMeta(`SELECT id FROM cities WHERE state_id = $1 AND LOWER(name) = LOWER($2)`)

	stateID := uuid.New()
	st, mock := newMockStore(t)

	mock.ExpectQuery(stateExists).WithArgs(stateID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(dupQuery).WithArgs(stateID, "PANAJI").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	city, err := st.CreateCity(context.Background(), "PANAJI", stateID)
	assert.Nil(t, city)
	assertKind(t, err, apperrors.KindConflict, messages.CityAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCity(t *testing.T) {
	getQuery := regexp.QuoteMeta(`SELECT id, name, state_id, created_at, updated_at FROM cities WHERE id = $1`)
	deleteCity := regexp.QuoteMeta(`DELETE FROM cities WHERE id = $1`)

	id := uuid.New()
	stateID := uuid.New()
	now := time.Now()

	t.Run("deletes the leaf row only", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "state_id", "created_at", "updated_at"}).
				AddRow(id.String(), "Panaji", stateID.String(), now, now))
		mock.ExpectExec(deleteCity).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, st.DeleteCity(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id is not found", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(getQuery).WithArgs(id).WillReturnError(sql.ErrNoRows)

		err := st.DeleteCity(context.Background(), id)
		assertKind(t, err, apperrors.KindNotFound, messages.CityIDNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
