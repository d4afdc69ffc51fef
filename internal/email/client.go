package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/quoteflow/quote-service/internal/config"
	"github.com/quoteflow/quote-service/internal/logger"
)

// Sender delivers outbound mail. The quote send flow and team invitations go
// through it; a disabled sender logs and drops instead of failing the
// request.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type resendSender struct {
	client *resend.Client
	from   string
	logger *logger.Logger
}

// NewSender builds a resend-backed sender. Without an API key or with email
// disabled it returns a no-op sender so local runs never deliver.
func NewSender(cfg *config.Configuration, log *logger.Logger) Sender {
	if !cfg.Email.Enabled || cfg.Email.ResendAPIKey == "" {
		return &noopSender{logger: log}
	}
	return &resendSender{
		client: resend.NewClient(cfg.Email.ResendAPIKey),
		from:   cfg.Email.FromAddress,
		logger: log,
	}
}

func (s *resendSender) Send(ctx context.Context, to, subject, html string) error {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		s.logger.Errorw("failed to send email", "error", err, "to", to, "subject", subject)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infow("email sent", "message_id", sent.Id, "to", to, "subject", subject)
	return nil
}

type noopSender struct {
	logger *logger.Logger
}

func (s *noopSender) Send(_ context.Context, to, subject, _ string) error {
	s.logger.Warnw("email disabled, skipping send", "to", to, "subject", subject)
	return nil
}
