package handlers

import (
	"net/http"
	"strings"

	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/models"
	"github.com/machineapp/machine-backend/internal/response"
	"github.com/machineapp/machine-backend/internal/validate"
)

type CountryRequest struct {
	Name string `json:"name"`
}

// CreateCountry handles POST /country/create.
func (h *Handler) CreateCountry(w http.ResponseWriter, r *http.Request) {
	var req CountryRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.CountryCreateError)
		return
	}

	if err := validate.EntityName(req.Name, messages.CountryNameRequired, messages.CountryNameInvalid); err != nil {
		response.Error(w, err, messages.CountryCreateError)
		return
	}

	country, err := h.store.CreateCountry(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		response.Error(w, err, messages.CountryCreateError)
		return
	}
	response.Success(w, country, messages.CountryCreateSuccess)
}

// GetCountry handles GET /country/{id}.
func (h *Handler) GetCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.CountryIDInvalid)
	if err != nil {
		response.Error(w, err, messages.CountryFetchError)
		return
	}

	country, err := h.store.GetCountry(r.Context(), id)
	if err != nil {
		response.Error(w, err, messages.CountryFetchError)
		return
	}
	response.Success(w, country, messages.CountryFetchSuccess)
}

// ListCountries handles POST /country/list.
func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	var params models.ListParams
	if err := decode(r, &params); err != nil {
		response.Error(w, err, messages.CountryListFetchError)
		return
	}
	params.Normalize()

	countries, total, err := h.store.ListCountries(r.Context(), params)
	if err != nil {
		response.Error(w, err, messages.CountryListFetchError)
		return
	}
	response.SuccessPage(w, countries, messages.CountryListFetchSuccess,
		models.NewPagination(params.Page, params.Limit, total))
}

// EditCountry handles POST /country/{id}.
func (h *Handler) EditCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.CountryIDInvalid)
	if err != nil {
		response.Error(w, err, messages.CountryEditError)
		return
	}

	var req CountryRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.CountryEditError)
		return
	}

	if err := validate.EntityName(req.Name, messages.CountryNameRequired, messages.CountryNameInvalid); err != nil {
		response.Error(w, err, messages.CountryEditError)
		return
	}

	country, err := h.store.UpdateCountry(r.Context(), id, strings.TrimSpace(req.Name))
	if err != nil {
		response.Error(w, err, messages.CountryEditError)
		return
	}
	response.Success(w, country, messages.CountryEditSuccess)
}

// DeleteCountry handles DELETE /country/{id}. The cascade removes the
// country's states and their cities in one transaction.
func (h *Handler) DeleteCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.CountryIDInvalid)
	if err != nil {
		response.Error(w, err, messages.CountryDeleteError)
		return
	}

	if err := h.store.DeleteCountry(r.Context(), id); err != nil {
		response.Error(w, err, messages.CountryDeleteError)
		return
	}
	response.Success(w, nil, messages.CountryDeleteSuccess)
}
