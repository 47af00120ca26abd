package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENV", "ALLOWED_ORIGINS", "FRONTEND_URL", "POSTGRES_URI", "REDIS_URI",
		"PORT", "SMTP_HOST", "SMTP_PORT", "EMAIL_USER", "EMAIL_PASS",
		"MAIL_FROM", "OTP_MAX_PER_DAY",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 5, cfg.OTPMaxPerDay)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")
	t.Setenv("PORT", "9000")
	t.Setenv("EMAIL_USER", "bot@example.com")
	t.Setenv("MAIL_FROM", "")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("OTP_MAX_PER_DAY", "3")

	cfg := Load()

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "bot@example.com", cfg.SMTPUser)
	assert.Equal(t, "bot@example.com", cfg.MailFrom)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, 3, cfg.OTPMaxPerDay)
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	cfg := Load()
	assert.Equal(t, 587, cfg.SMTPPort)
}
