package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/response"
	"github.com/machineapp/machine-backend/internal/services"
	"github.com/machineapp/machine-backend/internal/validate"
	"github.com/machineapp/machine-backend/pkg/utils"
)

type ForgetPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgetPassword handles POST /password/forget-password. It re-issues an
// OTP for a known email, subject to the rolling 24-hour issue cap.
func (h *Handler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgetPasswordRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.EmailOTPError)
		return
	}

	if err := validate.Required(req.Email, messages.EmailRequired); err != nil {
		response.Error(w, err, messages.EmailOTPError)
		return
	}

	ctx := r.Context()
	user, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		response.Error(w, err, messages.EmailOTPError)
		return
	}

	now := time.Now()
	count, err := services.NextOTPCount(user, now, h.cfg.OTPMaxPerDay)
	if err != nil {
		response.Error(w, err, messages.EmailOTPError)
		return
	}

	code, err := services.GenerateOTP()
	if err != nil {
		response.Error(w, apperrors.Internal(messages.EmailOTPError, err), messages.EmailOTPError)
		return
	}

	if err := h.store.SetOTP(ctx, user.ID, code, now, services.OTPExpiry(now), count); err != nil {
		response.Error(w, err, messages.EmailOTPError)
		return
	}

	go func() {
		if err := h.mailer.SendPasswordResetOTP(user.Email, user.Name, code); err != nil {
			log.Printf("ERROR: failed to send password reset OTP to %s: %v", user.Email, err)
		}
	}()

	response.Success(w, map[string]any{"email": user.Email}, messages.OTPSentSuccess)
}

// ResetPassword handles POST /password/reset-password. The reset flow uses
// the length-only password rule, not the signup complexity rule.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decode(r, &req); err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}

	if err := validate.Required(req.Email, messages.EmailRequired); err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}
	if err := validate.Required(req.NewPassword, messages.NewPasswordRequired); err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}
	if err := validate.Required(req.ConfirmPassword, messages.ConfirmPasswordRequired); err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}
	if err := validate.Email(req.Email); err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		response.Error(w, apperrors.Validation(messages.PasswordsDoNotMatch), messages.PasswordResetError)
		return
	}
	if err := validate.MinLengthPassword(req.NewPassword); err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}

	ctx := r.Context()
	user, err := h.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		response.Error(w, apperrors.Internal(messages.PasswordResetError, err), messages.PasswordResetError)
		return
	}

	if err := h.store.UpdatePassword(ctx, user.Email, hashed); err != nil {
		response.Error(w, err, messages.PasswordResetError)
		return
	}
	response.Success(w, map[string]any{"email": user.Email}, messages.PasswordResetSuccess)
}
