package store

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
)

func TestTranslateUserErr(t *testing.T) {
	tests := []struct {
		name     string
		err      *pq.Error
		wantKind apperrors.Kind
		wantMsg  string
	}{
		{
			name:     "duplicate email or username",
			err:      &pq.Error{Code: "23505", Constraint: "idx_users_email_lower"},
			wantKind: apperrors.KindConflict,
			wantMsg:  messages.UserAlreadyExists,
		},
		{
			name:     "dangling country reference",
			err:      &pq.Error{Code: "23503", Constraint: "users_country_id_fkey"},
			wantKind: apperrors.KindNotFound,
			wantMsg:  messages.CountryIDNotFound,
		},
		{
			name:     "dangling state reference",
			err:      &pq.Error{Code: "23503", Constraint: "users_state_id_fkey"},
			wantKind: apperrors.KindNotFound,
			wantMsg:  messages.StateIDNotFound,
		},
		{
			name:     "dangling city reference",
			err:      &pq.Error{Code: "23503", Constraint: "users_city_id_fkey"},
			wantKind: apperrors.KindNotFound,
			wantMsg:  messages.CityIDNotFound,
		},
		{
			name:     "unrecognized fk constraint is internal",
			err:      &pq.Error{Code: "23503", Constraint: "users_unknown_fkey"},
			wantKind: apperrors.KindInternal,
			wantMsg:  messages.UserCreateError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateUserErr(tt.err, messages.UserCreateError)
			ae := apperrors.From(got, "unexpected")
			assert.Equal(t, tt.wantKind, ae.Kind)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}
