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

type CityRequest struct {
	Name    string `json:"name"`
	StateID string `json:"stateId"`
}

// CreateCity handles POST /city/create.
func (h *Handler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req CityRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.CityCreateError)
		return
	}

	if err := validate.EntityName(req.Name, messages.CityNameRequired, messages.CityNameInvalid); err != nil {
		response.Error(w, err, messages.CityCreateError)
		return
	}
	if err := validate.Required(req.StateID, messages.StateIDAssocRequired); err != nil {
		response.Error(w, err, messages.CityCreateError)
		return
	}
	if err := validate.EntityID(req.StateID, messages.StateIDInvalid); err != nil {
		response.Error(w, err, messages.CityCreateError)
		return
	}

	city, err := h.store.CreateCity(r.Context(), strings.TrimSpace(req.Name), uuid.MustParse(req.StateID))
	if err != nil {
		response.Error(w, err, messages.CityCreateError)
		return
	}
	response.Success(w, city, messages.CityCreateSuccess)
}

// GetCity handles GET /city/{id}.
func (h *Handler) GetCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.CityIDInvalid)
	if err != nil {
		response.Error(w, err, messages.CityFetchError)
		return
	}

	city, err := h.store.GetCity(r.Context(), id)
	if err != nil {
		response.Error(w, err, messages.CityFetchError)
		return
	}
	response.Success(w, city, messages.CityFetchSuccess)
}

// GetCityDetail handles GET /city/get/{id}, enriching the city with its
// state's name.
func (h *Handler) GetCityDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.CityIDInvalid)
	if err != nil {
		response.Error(w, err, messages.CityFetchError)
		return
	}

	detail, err := h.store.GetCityDetail(r.Context(), id)
	if err != nil {
		response.Error(w, err, messages.CityFetchError)
		return
	}
	response.Success(w, detail, messages.CityFetchSuccess)
}

// ListCities handles POST /city/list.
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	var params models.ListParams
	if err := decode(r, &params); err != nil {
		response.Error(w, err, messages.CityListFetchError)
		return
	}
	params.Normalize()

	cities, total, err := h.store.ListCities(r.Context(), params)
	if err != nil {
		response.Error(w, err, messages.CityListFetchError)
		return
	}
	response.SuccessPage(w, cities, messages.CityListFetchSuccess,
		models.NewPagination(params.Page, params.Limit, total))
}

// EditCity handles POST /city/{id}. stateId is optional; when absent the
// city keeps its current owner.
func (h *Handler) EditCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.CityIDInvalid)
	if err != nil {
		response.Error(w, err, messages.CityEditError)
		return
	}

	var req CityRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.CityEditError)
		return
	}

	if err := validate.EntityName(req.Name, messages.CityNameRequired, messages.CityNameInvalid); err != nil {
		response.Error(w, err, messages.CityEditError)
		return
	}

	stateID := uuid.Nil
	if strings.TrimSpace(req.StateID) != "" {
		if err := validate.EntityID(req.StateID, messages.StateIDInvalid); err != nil {
			response.Error(w, err, messages.CityEditError)
			return
		}
		stateID = uuid.MustParse(req.StateID)
	}

	city, err := h.store.UpdateCity(r.Context(), id, strings.TrimSpace(req.Name), stateID)
	if err != nil {
		response.Error(w, err, messages.CityEditError)
		return
	}
	response.Success(w, city, messages.CityEditSuccess)
}

// DeleteCity handles DELETE /city/{id}. Cities are leaves; no cascade.
func (h *Handler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.CityIDInvalid)
	if err != nil {
		response.Error(w, err, messages.CityDeleteError)
		return
	}

	if err := h.store.DeleteCity(r.Context(), id); err != nil {
		response.Error(w, err, messages.CityDeleteError)
		return
	}
	response.Success(w, nil, messages.CityDeleteSuccess)
}
