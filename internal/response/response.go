// Package response renders the JSON envelope every endpoint shares:
// {status, message, data, pagination?}. Handled failures keep the envelope
// shape with status=false and data=null; internal causes are logged
// server-side and never exposed.
package response

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/models"
)

type Envelope struct {
	Status     bool               `json:"status"`
	Message    string             `json:"message"`
	Data       any                `json:"data"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

// Success writes a 200 envelope with the given payload.
func Success(w http.ResponseWriter, data any, message string) {
	write(w, http.StatusOK, Envelope{Status: true, Message: message, Data: data})
}

// SuccessPage writes a 200 envelope with a payload page and its pagination.
func SuccessPage(w http.ResponseWriter, data any, message string, p models.Pagination) {
	write(w, http.StatusOK, Envelope{Status: true, Message: message, Data: data, Pagination: &p})
}

// Error writes the failure envelope for err. Unexpected errors are wrapped
// with fallbackMsg, and their cause is logged, not returned.
func Error(w http.ResponseWriter, err error, fallbackMsg string) {
	ae := apperrors.From(err, fallbackMsg)
	if ae.Kind == apperrors.KindInternal {
		log.Printf("ERROR: %s: %v", ae.Message, ae.Cause)
	}
	write(w, statusFor(ae.Kind), Envelope{Status: false, Message: ae.Message, Data: nil})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("ERROR: failed to encode response: %v", err)
	}
}
