// Package mail delivers account emails through Resend. In development, or
// without an API key, messages are logged instead of sent.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// emailClient is the subset of resend.EmailsSvc used here.
type emailClient interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Sender struct {
	emails emailClient
	from   string
	webURL string
	isDev  bool
	logger *slog.Logger
}

type Options struct {
	APIKey string
	From   string
	WebURL string
	IsDev  bool
}

func NewSender(opts Options, logger *slog.Logger) *Sender {
	s := &Sender{
		from:   opts.From,
		webURL: opts.WebURL,
		isDev:  opts.IsDev,
		logger: logger,
	}
	if opts.APIKey != "" && !opts.IsDev {
		s.emails = resend.NewClient(opts.APIKey).Emails
	}
	return s
}

// SendVerification emails the activation link for transaction to a newly
// registered user.
func (s *Sender) SendVerification(ctx context.Context, to, name, transaction string) error {
	subject, body, err := verificationEmail(name, transaction, s.webURL)
	if err != nil {
		return err
	}

	if s.isDev || s.emails == nil {
		s.logger.Info("email sent (dev mode)",
			"type", "verification",
			"to", to,
			"subject", subject,
			"transaction", transaction,
		)
		return nil
	}

	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		return fmt.Errorf("sending verification email: %w", err)
	}

	s.logger.Info("email sent", "type", "verification", "to", to, "id", resp.Id)
	return nil
}
