package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/models"
	"github.com/machineapp/machine-backend/internal/response"
	"github.com/machineapp/machine-backend/internal/services"
	"github.com/machineapp/machine-backend/internal/validate"
	"github.com/machineapp/machine-backend/pkg/utils"
)

type SignupRequest struct {
	Name        string `json:"name"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Mobile      string `json:"mobile"`
	CountryCode string `json:"countryCode"`
	CountryID   string `json:"countryId"`
	StateID     string `json:"stateId"`
	CityID      string `json:"cityId"`
}

type EditUserRequest struct {
	Name        string `json:"name"`
	UserName    string `json:"userName"`
	Password    string `json:"password"`
	Mobile      string `json:"mobile"`
	CountryCode string `json:"countryCode"`
	CountryID   string `json:"countryId"`
	StateID     string `json:"stateId"`
	CityID      string `json:"cityId"`
}

// validateSignup runs all pure checks in declaration order: presence,
// formats, then password strength. No I/O happens before it passes.
func validateSignup(req *SignupRequest) error {
	required := []struct{ value, msg string }{
		{req.Name, messages.NameRequired},
		{req.UserName, messages.UsernameRequired},
		{req.Email, messages.EmailRequired},
		{req.Password, messages.PasswordRequired},
		{req.Mobile, messages.MobileRequired},
		{req.CountryCode, messages.CountryCodeRequired},
		{req.CountryID, messages.CountryIDRequired},
		{req.StateID, messages.StateIDRequired},
		{req.CityID, messages.CityIDRequired},
	}
	for _, f := range required {
		if err := validate.Required(f.value, f.msg); err != nil {
			return err
		}
	}

	if err := validate.CountryCode(req.CountryCode); err != nil {
		return err
	}
	if err := validate.Email(req.Email); err != nil {
		return err
	}
	if err := validate.EntityID(req.CountryID, messages.CountryIDInvalid); err != nil {
		return err
	}
	if err := validate.EntityID(req.StateID, messages.StateIDInvalid); err != nil {
		return err
	}
	if err := validate.EntityID(req.CityID, messages.CityIDInvalid); err != nil {
		return err
	}
	if err := validate.Mobile(req.Mobile); err != nil {
		return err
	}
	return validate.StrongPassword(req.Password)
}

// Signup handles POST /user/create: full validation, parallel location
// existence resolution, uniqueness check, then account + first OTP in one
// insert. Mail dispatch runs in the background and never fails the signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.UserCreateError)
		return
	}

	if err := validateSignup(&req); err != nil {
		response.Error(w, err, messages.UserCreateError)
		return
	}

	ctx := r.Context()
	countryID := uuid.MustParse(req.CountryID)
	stateID := uuid.MustParse(req.StateID)
	cityID := uuid.MustParse(req.CityID)

	if err := h.store.ResolveLocation(ctx, countryID, stateID, cityID); err != nil {
		response.Error(w, err, messages.UserCreateError)
		return
	}
	if err := h.store.CheckUserUnique(ctx, req.Email, req.UserName); err != nil {
		response.Error(w, err, messages.UserCreateError)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Error(w, apperrors.Internal(messages.UserCreateError, err), messages.UserCreateError)
		return
	}
	code, err := services.GenerateOTP()
	if err != nil {
		response.Error(w, apperrors.Internal(messages.UserCreateError, err), messages.UserCreateError)
		return
	}

	now := time.Now()
	expiresAt := services.OTPExpiry(now)
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		UserName:     strings.TrimSpace(req.UserName),
		Email:        strings.TrimSpace(req.Email),
		Password:     hashed,
		Mobile:       req.Mobile,
		CountryCode:  req.CountryCode,
		CountryID:    countryID,
		StateID:      stateID,
		CityID:       cityID,
		OTP:          code,
		OTPCreatedAt: &now,
		OTPExpiresAt: &expiresAt,
		OTPCount:     1,
	}

	if err := h.store.CreateUser(ctx, user); err != nil {
		response.Error(w, err, messages.UserCreateError)
		return
	}

	go func() {
		if err := h.mailer.SendSignupOTP(user.Email, user.Name, code); err != nil {
			log.Printf("ERROR: failed to send signup OTP to %s: %v", user.Email, err)
		}
	}()

	profile, err := h.store.GetUserProfile(ctx, user.ID)
	if err != nil {
		response.Error(w, err, messages.UserCreateError)
		return
	}
	response.Success(w, map[string]any{"userProfile": profile}, messages.UserCreateSuccess)
}

// GetUser handles GET /user/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.InvalidUniqueIDFormat)
	if err != nil {
		response.Error(w, err, messages.UserFetchError)
		return
	}

	profile, err := h.store.GetUserProfile(r.Context(), id)
	if err != nil {
		response.Error(w, err, messages.UserFetchError)
		return
	}
	response.Success(w, map[string]any{"userProfile": profile}, messages.UserFetchSuccess)
}

// EditUser handles POST /user/{id}. Email is immutable; username
// uniqueness excludes the user being edited; the location tuple is
// re-resolved. A supplied password is re-hashed under the signup policy.
func (h *Handler) EditUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.InvalidUniqueIDFormat)
	if err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}

	ctx := r.Context()
	current, err := h.store.GetUserByID(ctx, id)
	if err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}

	var req EditUserRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}

	required := []struct{ value, msg string }{
		{req.Name, messages.NameRequired},
		{req.UserName, messages.UsernameRequired},
		{req.Mobile, messages.MobileRequired},
		{req.CountryCode, messages.CountryCodeRequired},
		{req.CountryID, messages.CountryIDRequired},
		{req.StateID, messages.StateIDRequired},
		{req.CityID, messages.CityIDRequired},
	}
	for _, f := range required {
		if err := validate.Required(f.value, f.msg); err != nil {
			response.Error(w, err, messages.UserEditError)
			return
		}
	}
	if err := validate.Mobile(req.Mobile); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}
	if err := validate.CountryCode(req.CountryCode); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}
	if err := validate.EntityID(req.CountryID, messages.CountryIDInvalid); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}
	if err := validate.EntityID(req.StateID, messages.StateIDInvalid); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}
	if err := validate.EntityID(req.CityID, messages.CityIDInvalid); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}

	userName := strings.TrimSpace(req.UserName)
	if err := h.store.UserNameTakenByOther(ctx, userName, id); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}

	countryID := uuid.MustParse(req.CountryID)
	stateID := uuid.MustParse(req.StateID)
	cityID := uuid.MustParse(req.CityID)
	if err := h.store.ResolveLocation(ctx, countryID, stateID, cityID); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}

	var hashed string
	if req.Password != "" {
		if err := validate.StrongPassword(req.Password); err != nil {
			response.Error(w, err, messages.UserEditError)
			return
		}
		hashed, err = utils.HashPassword(req.Password)
		if err != nil {
			response.Error(w, apperrors.Internal(messages.UserEditError, err), messages.UserEditError)
			return
		}
	}

	current.Name = strings.TrimSpace(req.Name)
	current.UserName = userName
	current.Mobile = req.Mobile
	current.CountryCode = req.CountryCode
	current.CountryID = countryID
	current.StateID = stateID
	current.CityID = cityID
	current.Password = hashed

	if err := h.store.UpdateUser(ctx, current); err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}

	profile, err := h.store.GetUserProfile(ctx, id)
	if err != nil {
		response.Error(w, err, messages.UserEditError)
		return
	}
	response.Success(w, map[string]any{"userProfile": profile}, messages.UserEditSuccess)
}

// DeleteUser handles DELETE /user/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, messages.InvalidUniqueIDFormat)
	if err != nil {
		response.Error(w, err, messages.UserDeleteError)
		return
	}

	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		response.Error(w, err, messages.UserDeleteError)
		return
	}
	response.Success(w, nil, messages.UserDeleted)
}
