package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind apperrors.Kind
		wantMsg  string
	}{
		{
			name:     "unique violation becomes conflict",
			err:      &pq.Error{Code: "23505", Constraint: "idx_countries_name_lower"},
			wantKind: apperrors.KindConflict,
			wantMsg:  messages.CountryAlreadyExists,
		},
		{
			name:     "foreign key violation becomes not found",
			err:      &pq.Error{Code: "23503", Constraint: "states_country_id_fkey"},
			wantKind: apperrors.KindNotFound,
			wantMsg:  messages.CountryIDNotFound,
		},
		{
			name:     "wrapped pq error still translated",
			err:      fmt.Errorf("insert country: %w", &pq.Error{Code: "23505"}),
			wantKind: apperrors.KindConflict,
			wantMsg:  messages.CountryAlreadyExists,
		},
		{
			name:     "other pq error is internal",
			err:      &pq.Error{Code: "42P01"},
			wantKind: apperrors.KindInternal,
			wantMsg:  messages.CountryCreateError,
		},
		{
			name:     "plain error is internal",
			err:      errors.New("driver: bad connection"),
			wantKind: apperrors.KindInternal,
			wantMsg:  messages.CountryCreateError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, messages.CountryCreateError, messages.CountryAlreadyExists, messages.CountryIDNotFound)
			ae := apperrors.From(got, "unexpected")
			assert.Equal(t, tt.wantKind, ae.Kind)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}

func TestTranslateKeepsCauseForLogging(t *testing.T) {
	cause := &pq.Error{Code: "42P01", Message: "relation does not exist"}
	got := translate(cause, messages.CountryCreateError, messages.CountryAlreadyExists, messages.CountryIDNotFound)

	ae := apperrors.From(got, "unexpected")
	require.Equal(t, apperrors.KindInternal, ae.Kind)
	assert.True(t, errors.Is(got, cause))
}
