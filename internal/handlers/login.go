package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/response"
	"github.com/machineapp/machine-backend/internal/services"
	"github.com/machineapp/machine-backend/internal/validate"
	"github.com/machineapp/machine-backend/pkg/utils"
)

type LoginRequest struct {
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Login handles POST /login/create. The identifier is the email when one
// is supplied, otherwise the username. Unverified accounts cannot log in;
// success issues an opaque bearer token with a fixed lifetime.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.InternalServerError)
		return
	}

	email := strings.TrimSpace(req.Email)
	userName := strings.TrimSpace(req.UserName)

	if email == "" && userName == "" {
		response.Error(w, apperrors.Validation(messages.EmailOrUsernameRequired), messages.InternalServerError)
		return
	}
	if err := validate.Required(req.Password, messages.PasswordRequired); err != nil {
		response.Error(w, err, messages.InternalServerError)
		return
	}
	if email != "" {
		if err := validate.Email(email); err != nil {
			response.Error(w, err, messages.InternalServerError)
			return
		}
	}

	ctx := r.Context()
	user, err := h.store.FindUserForLogin(ctx, email, userName)
	if err != nil {
		response.Error(w, err, messages.InternalServerError)
		return
	}

	if !user.Verify {
		response.Error(w, apperrors.Unauthorized(messages.UserNotVerified), messages.InternalServerError)
		return
	}

	ok, err := utils.VerifyPassword(req.Password, user.Password)
	if err != nil || !ok {
		response.Error(w, apperrors.Unauthorized(messages.IncorrectPassword), messages.InternalServerError)
		return
	}

	token, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		response.Error(w, apperrors.Internal(messages.InternalServerError, err), messages.InternalServerError)
		return
	}

	profile, err := h.store.GetUserProfile(ctx, user.ID)
	if err != nil {
		response.Error(w, err, messages.InternalServerError)
		return
	}
	response.Success(w, map[string]any{"userProfile": profile, "token": token}, messages.LoginSuccess)
}

// VerifyOTP handles POST /login/verify-otp: exact code match, then expiry.
// Verifying an already-verified account with a valid code re-stamps the
// verification time rather than failing.
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.OTPVerificationError)
		return
	}

	if err := validate.Required(req.Email, messages.EmailRequired); err != nil {
		response.Error(w, err, messages.OTPVerificationError)
		return
	}
	if err := validate.Required(req.OTP, messages.OTPRequired); err != nil {
		response.Error(w, err, messages.OTPVerificationError)
		return
	}
	if err := validate.Email(req.Email); err != nil {
		response.Error(w, err, messages.OTPVerificationError)
		return
	}
	if err := validate.OTP(req.OTP); err != nil {
		response.Error(w, err, messages.OTPVerificationError)
		return
	}

	ctx := r.Context()
	user, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.From(err, "").Kind == apperrors.KindNotFound {
			err = apperrors.NotFound(messages.UserNotFound)
		}
		response.Error(w, err, messages.OTPVerificationError)
		return
	}

	now := time.Now()
	if err := services.CheckOTP(user, req.OTP, now); err != nil {
		response.Error(w, err, messages.OTPVerificationError)
		return
	}

	if err := h.store.MarkVerified(ctx, user.ID, now); err != nil {
		response.Error(w, err, messages.OTPVerificationError)
		return
	}
	response.Success(w, map[string]any{"email": user.Email}, messages.OTPVerified)
}
