package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/job"
	"github.com/pkordes/planner/internal/mail"
)

// Notifier hands a rendered message to a delivery mechanism.
type Notifier interface {
	Notify(ctx context.Context, msg mail.Message) error
}

// Direct sends each message inline through a Mailer.
type Direct struct {
	mailer mail.Mailer
}

// NewDirect returns a Notifier that sends through mailer before returning.
func NewDirect(mailer mail.Mailer) *Direct {
	return &Direct{mailer: mailer}
}

// Notify sends msg now.
func (d *Direct) Notify(ctx context.Context, msg mail.Message) error {
	if _, err := d.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify.Direct: %w", err)
	}
	return nil
}

// enqueuer is satisfied by *asynq.Client.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue defers delivery to the worker by enqueuing an email task. The worker
// retries failed sends, which Direct does not.
type Queue struct {
	client enqueuer
}

// NewQueue returns a Notifier that enqueues through client.
func NewQueue(client enqueuer) *Queue {
	return &Queue{client: client}
}

// Notify enqueues msg for background delivery.
func (q *Queue) Notify(ctx context.Context, msg mail.Message) error {
	task, err := job.NewSendEmailTask(msg)
	if err != nil {
		return fmt.Errorf("notify.Queue: %w", err)
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("notify.Queue: enqueue: %w", err)
	}
	return nil
}

// Confirmations composes the confirmation email for new trips and hands it to
// a Notifier.
type Confirmations struct {
	opts     Options
	notifier Notifier
}

// NewConfirmations returns a Confirmations using opts for every email.
func NewConfirmations(opts Options, notifier Notifier) *Confirmations {
	return &Confirmations{opts: opts, notifier: notifier}
}

// TripCreated emails the owner of trip a confirmation link.
// trip must carry its participants.
func (c *Confirmations) TripCreated(ctx context.Context, trip domain.Trip) error {
	owner, ok := trip.Owner()
	if !ok {
		return errors.New("notify.Confirmations.TripCreated: trip has no owner")
	}
	msg, err := ComposeConfirmation(trip, owner, c.opts)
	if err != nil {
		return err
	}
	return c.notifier.Notify(ctx, msg)
}
