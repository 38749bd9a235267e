package mail

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogMailer writes every message to the logger instead of delivering it.
// It is the development transport: the log line is the message preview.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer returns a LogMailer writing to logger.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs msg at info level and returns a random message id.
func (m *LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	m.logger.InfoContext(ctx, "email preview",
		"message_id", id,
		"from", msg.From.String(),
		"to", msg.To.String(),
		"subject", msg.Subject,
		"html", msg.HTML,
	)
	return id, nil
}
