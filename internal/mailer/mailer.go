package mailer

import (
	"context"
	"os"
)

// Service sends transactional mail (order receipts). Plain text only;
// the storefront has no HTML mail.
type Service interface {
	Send(ctx context.Context, e Email) error
}

type Email struct {
	FromName string // optional display name, e.g. "Pizza Project"
	From     string // required sender address
	To       []string
	Subject  string
	TextBody string
}

// FromEnv picks a mailer by MAILER ("smtp" | "mock"; default mock, which
// only logs through the caller). Returns nil service when disabled.
func FromEnv() Service {
	switch os.Getenv("MAILER") {
	case "smtp":
		return NewSMTP(SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envOr("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Pass:     os.Getenv("SMTP_PASS"),
			StartTLS: os.Getenv("SMTP_STARTTLS") != "false",
		})
	case "mock":
		return &Mock{}
	default:
		return nil
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
