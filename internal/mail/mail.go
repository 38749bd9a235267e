// Package mail sends outbound email. Mailer hides the transport so the rest of
// the application never knows whether a message went to an SMTP relay, the
// Resend API, or only to the log.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Address is a display name plus an email address.
type Address struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

// String renders the address in RFC 5322 form: "Name <addr>" or just "addr".
func (a Address) String() string {
	if a.Name == "" {
		return a.Address
	}
	return fmt.Sprintf("%q <%s>", a.Name, a.Address)
}

// Message is a single HTML email.
type Message struct {
	From    Address `json:"from"`
	To      Address `json:"to"`
	Subject string  `json:"subject"`
	HTML    string  `json:"html"`
}

// Mailer delivers a Message and returns the transport's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Transport names accepted by New.
const (
	TransportLog    = "log"
	TransportSMTP   = "smtp"
	TransportResend = "resend"
)

// Config selects and configures a transport.
type Config struct {
	Transport    string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	ResendAPIKey string
}

// New returns the Mailer named by cfg.Transport. An empty transport means log.
func New(cfg Config, logger *slog.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Transport) {
	case "", TransportLog:
		return NewLogMailer(logger), nil
	case TransportSMTP:
		return NewSMTPMailer(cfg, logger)
	case TransportResend:
		return NewResendMailer(cfg, logger)
	default:
		return nil, fmt.Errorf("mail.New: unknown transport %q", cfg.Transport)
	}
}
