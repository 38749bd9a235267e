package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer delivers through an SMTP relay. Without credentials it connects
// unauthenticated, which is what local catchers such as Mailpit expect.
type SMTPMailer struct {
	client *gomail.Client
	logger *slog.Logger
}

// NewSMTPMailer builds an SMTPMailer from cfg. SMTPHost is required.
func NewSMTPMailer(cfg Config, logger *slog.Logger) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, errors.New("mail.NewSMTPMailer: SMTP host is required")
	}

	opts := []gomail.Option{gomail.WithTLSPolicy(gomail.TLSOpportunistic)}
	if cfg.SMTPPort > 0 {
		opts = append(opts, gomail.WithPort(cfg.SMTPPort))
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTPUsername),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail.NewSMTPMailer: %w", err)
	}
	return &SMTPMailer{client: client, logger: logger}, nil
}

// Send dials the relay, delivers msg, and returns the generated Message-ID.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) (string, error) {
	out := gomail.NewMsg()
	if err := out.FromFormat(msg.From.Name, msg.From.Address); err != nil {
		return "", fmt.Errorf("mail.SMTPMailer.Send: from: %w", err)
	}
	if err := out.AddToFormat(msg.To.Name, msg.To.Address); err != nil {
		return "", fmt.Errorf("mail.SMTPMailer.Send: to: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetMessageID()
	out.SetBodyString(gomail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return "", fmt.Errorf("mail.SMTPMailer.Send: %w", err)
	}

	id := out.GetMessageID()
	m.logger.InfoContext(ctx, "email sent", "transport", TransportSMTP, "message_id", id, "to", msg.To.Address)
	return id, nil
}
