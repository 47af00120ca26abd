package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
)

func validSignupRequest() SignupRequest {
	return SignupRequest{
		Name:        "Asha Rao",
		UserName:    "asharao",
		Email:       "asha@example.com",
		Password:    "Sup3rSecret!",
		Mobile:      "9876543210",
		CountryCode: "+91",
		CountryID:   "6f2b1f9c-68a4-4d1c-9f3a-2b7c8d9e0a1b",
		StateID:     "7c3d2e0a-79b5-4e2d-8a4b-3c8d9e0f1a2c",
		CityID:      "8d4e3f1b-8ac6-4f3e-9b5c-4d9e0f1a2b3d",
	}
}

func TestValidateSignup(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		req := validSignupRequest()
		assert.NoError(t, validateSignup(&req))
	})

	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantMsg string
	}{
		{name: "missing name", mutate: func(r *SignupRequest) { r.Name = "" }, wantMsg: messages.NameRequired},
		{name: "missing username", mutate: func(r *SignupRequest) { r.UserName = "  " }, wantMsg: messages.UsernameRequired},
		{name: "missing email", mutate: func(r *SignupRequest) { r.Email = "" }, wantMsg: messages.EmailRequired},
		{name: "missing password", mutate: func(r *SignupRequest) { r.Password = "" }, wantMsg: messages.PasswordRequired},
		{name: "missing mobile", mutate: func(r *SignupRequest) { r.Mobile = "" }, wantMsg: messages.MobileRequired},
		{name: "missing country code", mutate: func(r *SignupRequest) { r.CountryCode = "" }, wantMsg: messages.CountryCodeRequired},
		{name: "missing country id", mutate: func(r *SignupRequest) { r.CountryID = "" }, wantMsg: messages.CountryIDRequired},
		{name: "missing state id", mutate: func(r *SignupRequest) { r.StateID = "" }, wantMsg: messages.StateIDRequired},
		{name: "missing city id", mutate: func(r *SignupRequest) { r.CityID = "" }, wantMsg: messages.CityIDRequired},
		{name: "bad country code", mutate: func(r *SignupRequest) { r.CountryCode = "91" }, wantMsg: messages.CountryCodeInvalid},
		{name: "bad email", mutate: func(r *SignupRequest) { r.Email = "not-an-email" }, wantMsg: messages.EmailInvalid},
		{name: "bad country id", mutate: func(r *SignupRequest) { r.CountryID = "abc" }, wantMsg: messages.CountryIDInvalid},
		{name: "bad state id", mutate: func(r *SignupRequest) { r.StateID = "abc" }, wantMsg: messages.StateIDInvalid},
		{name: "bad city id", mutate: func(r *SignupRequest) { r.CityID = "abc" }, wantMsg: messages.CityIDInvalid},
		{name: "bad mobile", mutate: func(r *SignupRequest) { r.Mobile = "12345" }, wantMsg: messages.MobileInvalid},
		{name: "weak password", mutate: func(r *SignupRequest) { r.Password = "weakpass" }, wantMsg: messages.PasswordInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignupRequest()
			tt.mutate(&req)
			err := validateSignup(&req)
			require.Error(t, err)
			ae := apperrors.From(err, "unexpected")
			assert.Equal(t, apperrors.KindValidation, ae.Kind)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}

func TestValidateSignupPresenceBeatsFormat(t *testing.T) {
	// Every field missing: the presence checks run in declaration order
	// before any format check, so Name wins.
	req := SignupRequest{}
	err := validateSignup(&req)
	require.Error(t, err)
	assert.Equal(t, messages.NameRequired, apperrors.From(err, "").Message)

	// Bad email and bad mobile together: country code format is checked
	// first.
	req = validSignupRequest()
	req.CountryCode = "xx"
	req.Email = "broken"
	req.Mobile = "1"
	err = validateSignup(&req)
	require.Error(t, err)
	assert.Equal(t, messages.CountryCodeInvalid, apperrors.From(err, "").Message)
}
