package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/models"
	"github.com/machineapp/machine-backend/internal/response"
	"github.com/machineapp/machine-backend/internal/validate"
)

type StateRequest struct {
	Name      string `json:"name"`
	CountryID string `json:"countryId"`
}

// CreateState handles POST /state/create.
func (h *Handler) CreateState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.StateCreateError)
		return
	}

	if err := validate.EntityName(req.Name, messages.StateNameRequired, messages.StateNameInvalid); err != nil {
		response.Error(w, err, messages.StateCreateError)
		return
	}
	if err := validate.Required(req.CountryID, messages.CountryIDAssocRequired); err != nil {
		response.Error(w, err, messages.StateCreateError)
		return
	}
	if err := validate.EntityID(req.CountryID, messages.CountryIDInvalid); err != nil {
		response.Error(w, err, messages.StateCreateError)
		return
	}

	state, err := h.store.CreateState(r.Context(), strings.TrimSpace(req.Name), uuid.MustParse(req.CountryID))
	if err != nil {
		response.Error(w, err, messages.StateCreateError)
		return
	}
	response.Success(w, state, messages.StateCreateSuccess)
}

// GetState handles GET /state/{id}.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.StateIDInvalid)
	if err != nil {
		response.Error(w, err, messages.StateFetchError)
		return
	}

	state, err := h.store.GetState(r.Context(), id)
	if err != nil {
		response.Error(w, err, messages.StateFetchError)
		return
	}
	response.Success(w, state, messages.StateFetchSuccess)
}

// GetStateDetail handles GET /state/get/{id}, enriching the state with its
// country's name.
func (h *Handler) GetStateDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.StateIDInvalid)
	if err != nil {
		response.Error(w, err, messages.StateFetchError)
		return
	}

	detail, err := h.store.GetStateDetail(r.Context(), id)
	if err != nil {
		response.Error(w, err, messages.StateFetchError)
		return
	}
	response.Success(w, detail, messages.StateFetchSuccess)
}

// ListStates handles POST /state/getAllStates.
func (h *Handler) ListStates(w http.ResponseWriter, r *http.Request) {
	var params models.ListParams
	if err := decode(r, &params); err != nil {
		response.Error(w, err, messages.StateListFetchError)
		return
	}
	params.Normalize()

	states, total, err := h.store.ListStates(r.Context(), params)
	if err != nil {
		response.Error(w, err, messages.StateListFetchError)
		return
	}
	response.SuccessPage(w, states, messages.StateListFetchSuccess,
		models.NewPagination(params.Page, params.Limit, total))
}

// EditState handles POST /state/{id}. countryId is optional; when absent
// the state keeps its current owner.
func (h *Handler) EditState(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.StateIDInvalid)
	if err != nil {
		response.Error(w, err, messages.StateEditError)
		return
	}

	var req StateRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.StateEditError)
		return
	}

	if err := validate.EntityName(req.Name, messages.StateNameRequired, messages.StateNameInvalid); err != nil {
		response.Error(w, err, messages.StateEditError)
		return
	}

	countryID := uuid.Nil
	if strings.TrimSpace(req.CountryID) != "" {
		if err := validate.EntityID(req.CountryID, messages.CountryIDInvalid); err != nil {
			response.Error(w, err, messages.StateEditError)
			return
		}
		countryID = uuid.MustParse(req.CountryID)
	}

	state, err := h.store.UpdateState(r.Context(), id, strings.TrimSpace(req.Name), countryID)
	if err != nil {
		response.Error(w, err, messages.StateEditError)
		return
	}
	response.Success(w, state, messages.StateEditSuccess)
}

// DeleteState handles DELETE /state/{id}. Dependent cities are removed
// first, in the same transaction.
func (h *Handler) DeleteState(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.StateIDInvalid)
	if err != nil {
		response.Error(w, err, messages.StateDeleteError)
		return
	}

	if err := h.store.DeleteState(r.Context(), id); err != nil {
		response.Error(w, err, messages.StateDeleteError)
		return
	}
	response.Success(w, nil, messages.StateDeleteSuccess)
}
