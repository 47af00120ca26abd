package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/models"
)

func TestDecode(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/country/create", strings.NewReader(`{"name":"India"}`))
		var req CountryRequest
		require.NoError(t, decode(r, &req))
		assert.Equal(t, "India", req.Name)
	})

	t.Run("empty body is allowed", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/country/list", nil)
		var params models.ListParams
		require.NoError(t, decode(r, &params))
		assert.Equal(t, 0, params.Page)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/api/country/create", strings.NewReader(`{"name":`))
		var req CountryRequest
		err := decode(r, &req)
		require.Error(t, err)
		ae := apperrors.From(err, "")
		assert.Equal(t, apperrors.KindValidation, ae.Kind)
		assert.Equal(t, "Invalid request body", ae.Message)
	})
}

func TestPathID(t *testing.T) {
	newRequest := func(id string) *chi.Context {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return rctx
	}

	t.Run("valid id", func(t *testing.T) {
		want := uuid.MustParse("6f2b1f9c-68a4-4d1c-9f3a-2b7c8d9e0a1b")
		r := httptest.NewRequest("GET", "/api/country/"+want.String(), nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, newRequest(want.String())))

		got, err := pathID(r, messages.CountryIDInvalid)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid id", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/country/nope", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, newRequest("nope")))

		got, err := pathID(r, messages.CountryIDInvalid)
		require.Error(t, err)
		assert.Equal(t, uuid.Nil, got)
		assert.Equal(t, messages.CountryIDInvalid, apperrors.From(err, "").Message)
	})
}
