package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// ResendMailer delivers through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
	logger *slog.Logger
}

// NewResendMailer builds a ResendMailer. ResendAPIKey is required.
func NewResendMailer(cfg Config, logger *slog.Logger) (*ResendMailer, error) {
	if cfg.ResendAPIKey == "" {
		return nil, errors.New("mail.NewResendMailer: Resend API key is required")
	}
	return &ResendMailer{client: resend.NewClient(cfg.ResendAPIKey), logger: logger}, nil
}

// Send posts msg to Resend and returns the id Resend assigned.
func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	resp, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From.String(),
		To:      []string{msg.To.String()},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("mail.ResendMailer.Send: %w", err)
	}

	m.logger.InfoContext(ctx, "email sent", "transport", TransportResend, "message_id", resp.Id, "to", msg.To.Address)
	return resp.Id, nil
}
