// Package handlers maps HTTP requests onto store and service calls. Each
// handler decodes a typed request struct, runs the field validators, then
// hands off to the store; every outcome goes through the response envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/config"
	"github.com/machineapp/machine-backend/internal/services"
	"github.com/machineapp/machine-backend/internal/store"
	"github.com/machineapp/machine-backend/internal/validate"
)

// Handler carries the injected collaborators shared by all endpoints.
type Handler struct {
	store    *store.Store
	sessions *services.Sessions
	mailer   *services.Mailer
	cfg      *config.Config
}

func New(st *store.Store, sessions *services.Sessions, mailer *services.Mailer, cfg *config.Config) *Handler {
	return &Handler{store: st, sessions: sessions, mailer: mailer, cfg: cfg}
}

// decode reads the JSON body into v. An empty body is allowed so list
// endpoints can be called without parameters.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Validation("Invalid request body")
	}
	return nil
}

// pathID extracts and validates the {id} path parameter. invalidMsg is the
// entity-specific format message.
func pathID(r *http.Request, invalidMsg string) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if err := validate.EntityID(raw, invalidMsg); err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(raw), nil
}
