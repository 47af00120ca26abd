package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/machineapp/machine-backend/internal/config"
)

// Mailer sends OTP emails over SMTP. Dispatch is fire-and-forget from the
// caller's point of view: a send failure is logged, never propagated into
// the request that triggered it.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// SendSignupOTP delivers the verification code issued at signup.
func (m *Mailer) SendSignupOTP(to, name, code string) error {
	if name == "" {
		name = to
	}
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>Welcome to <strong>Machine</strong>! Thank you for signing up.</p>
<p>To verify your email address and complete your registration, please use the following One-Time Password (OTP):</p>
<h2 style="color: #1a73e8;">%s</h2>
<p>This OTP is valid for 5 minutes. Do not share it with anyone.</p>
<p>If you did not request this, please ignore this email.</p>`, name, code)

	return m.send(to, "Your OTP for Machine", body)
}

// SendPasswordResetOTP delivers the code issued by the forgot-password flow.
func (m *Mailer) SendPasswordResetOTP(to, name, code string) error {
	if name == "" {
		name = to
	}
	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>We received a request to reset your password for <strong>Machine</strong>.</p>
<p>Please use the following One-Time Password (OTP) to proceed with resetting your password:</p>
<h2 style="color: #d93025;">%s</h2>
<p>This OTP is valid for 5 minutes. Do not share it with anyone.</p>
<p>If you did not request a password reset, you can safely ignore this email.</p>`, name, code)

	return m.send(to, "Password Reset OTP - Machine", body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}
