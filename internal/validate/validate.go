// Package validate holds the pure field validators. Every function takes a
// raw value and returns nil or a validation error with the catalog message;
// none of them touch the database.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
)

var (
	nameRegex        = regexp.MustCompile(`^[A-Za-z\s]+$`)
	mobileRegex      = regexp.MustCompile(`^\d{10}$`)
	countryCodeRegex = regexp.MustCompile(`^\+\d{1,4}$`)
	emailRegex       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	otpRegex         = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// Required fails when value is empty after trimming. msg is the
// field-specific catalog message.
func Required(value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validation(msg)
	}
	return nil
}

// EntityName checks the letters-and-spaces rule shared by Country, State
// and City names. The caller passes the field-specific messages.
func EntityName(name, requiredMsg, invalidMsg string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return apperrors.Validation(requiredMsg)
	}
	if !nameRegex.MatchString(trimmed) {
		return apperrors.Validation(invalidMsg)
	}
	return nil
}

func Email(email string) error {
	if !emailRegex.MatchString(email) {
		return apperrors.Validation(messages.EmailInvalid)
	}
	return nil
}

func Mobile(mobile string) error {
	if !mobileRegex.MatchString(mobile) {
		return apperrors.Validation(messages.MobileInvalid)
	}
	return nil
}

func CountryCode(code string) error {
	if !countryCodeRegex.MatchString(code) {
		return apperrors.Validation(messages.CountryCodeInvalid)
	}
	return nil
}

func OTP(code string) error {
	if !otpRegex.MatchString(code) {
		return apperrors.Validation(messages.OTPFormatInvalid)
	}
	return nil
}

// MinLengthPassword is the length-only rule used by the reset flow.
func MinLengthPassword(password string) error {
	if len(password) < 6 {
		return apperrors.Validation(messages.PasswordTooShort)
	}
	return nil
}

// StrongPassword is the full complexity rule used by signup: at least 8
// characters with upper case, lower case, a digit and a special character.
func StrongPassword(password string) error {
	if len(password) < 8 {
		return apperrors.Validation(messages.PasswordInvalid)
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return apperrors.Validation(messages.PasswordInvalid)
	}
	return nil
}

// EntityID verifies the 36-character 8-4-4-4-12 token shape with the
// version and variant nibbles constrained, before any database lookup.
// invalidMsg is the field-specific format message.
func EntityID(id, invalidMsg string) error {
	parsed, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		return apperrors.Validation(invalidMsg)
	}
	if v := parsed.Version(); v < 1 || v > 5 {
		return apperrors.Validation(invalidMsg)
	}
	if parsed.Variant() != uuid.RFC4122 {
		return apperrors.Validation(invalidMsg)
	}
	return nil
}
