package services

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/machineapp/machine-backend/internal/apperrors"
	"github.com/machineapp/machine-backend/internal/messages"
	"github.com/machineapp/machine-backend/internal/models"
)

const (
	// OTPTTL is how long an issued code stays valid.
	OTPTTL = 5 * time.Minute
	// OTPWindow is the rolling window the issue cap is evaluated against.
	OTPWindow = 24 * time.Hour
)

// GenerateOTP produces a 6-digit numeric code from a CSPRNG.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	code := n.Int64() + 100000
	return big.NewInt(code).String(), nil
}

// OTPExpiry returns the expiry for a code issued at the given time.
func OTPExpiry(issuedAt time.Time) time.Time {
	return issuedAt.Add(OTPTTL)
}

// NextOTPCount returns the attempt count to store for an issue at now, or a
// lockout error when the user has exhausted maxPerWindow codes within the
// rolling window. OTPCreatedAt is re-stamped on every issue, so the window
// is measured from the latest issue; the count restarts at 1 once 24h pass
// without one.
func NextOTPCount(u *models.User, now time.Time, maxPerWindow int) (int, error) {
	if u.OTPCreatedAt == nil || now.Sub(*u.OTPCreatedAt) >= OTPWindow {
		return 1, nil
	}
	if u.OTPCount >= maxPerWindow {
		return 0, apperrors.TooManyRequests(messages.OTPLimitReached)
	}
	return u.OTPCount + 1, nil
}

// CheckOTP validates a supplied code against the stored one: exact string
// match first, then expiry against now.
func CheckOTP(u *models.User, code string, now time.Time) error {
	if u.OTP == "" || u.OTP != code {
		return apperrors.Unauthorized(messages.OTPInvalid)
	}
	if u.OTPExpiresAt != nil && now.After(*u.OTPExpiresAt) {
		return apperrors.Unauthorized(messages.OTPExpired)
	}
	return nil
}
