// Package job defines the background tasks of the Plann.er API and the worker
// that runs them. Tasks are stored in Redis by asynq: the API enqueues, the
// worker process (cmd/worker) consumes.
package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/pkordes/planner/internal/mail"
)

// TaskSendEmail is the asynq task type for delivering one rendered email.
const TaskSendEmail = "email:send"

// QueueDefault is the queue email tasks are placed on.
const QueueDefault = "default"

// NewSendEmailTask wraps msg in a task. The message is rendered before it is
// queued, so the worker only needs a Mailer.
func NewSendEmailTask(msg mail.Message) (*asynq.Task, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("job.NewSendEmailTask: %w", err)
	}
	return asynq.NewTask(
		TaskSendEmail,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}

// EmailProcessor handles TaskSendEmail by passing the message to a Mailer.
type EmailProcessor struct {
	mailer mail.Mailer
	logger *slog.Logger
}

// NewEmailProcessor returns an EmailProcessor delivering through mailer.
func NewEmailProcessor(mailer mail.Mailer, logger *slog.Logger) *EmailProcessor {
	return &EmailProcessor{mailer: mailer, logger: logger}
}

// ProcessTask implements asynq.Handler. A payload that does not decode can
// never succeed, so it is not retried; send errors are returned for retry.
func (p *EmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var msg mail.Message
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		return fmt.Errorf("job.EmailProcessor: decode payload: %v: %w", err, asynq.SkipRetry)
	}

	id, err := p.mailer.Send(ctx, msg)
	if err != nil {
		p.logger.ErrorContext(ctx, "email task failed", "to", msg.To.Address, "error", err)
		return fmt.Errorf("job.EmailProcessor: %w", err)
	}

	p.logger.InfoContext(ctx, "email task done", "to", msg.To.Address, "message_id", id)
	return nil
}

// Register routes TaskSendEmail on mux to p.
func (p *EmailProcessor) Register(mux *asynq.ServeMux) {
	mux.Handle(TaskSendEmail, p)
}
