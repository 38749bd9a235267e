package notify_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/job"
	"github.com/pkordes/planner/internal/locale"
	"github.com/pkordes/planner/internal/mail"
	"github.com/pkordes/planner/internal/notify"
)

type mockMailer struct {
	send func(ctx context.Context, msg mail.Message) (string, error)
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) (string, error) {
	return m.send(ctx, msg)
}

type mockEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (m *mockEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tasks = append(m.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

var tripID = uuid.MustParse("6f1c2a4e-1b7d-4b7e-9a55-0f6c7a1d2e3f")

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          tripID,
		Destination: "Florianópolis",
		StartsAt:    time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2031, 1, 5, 0, 0, 0, 0, time.UTC),
		Participants: []domain.Participant{
			domain.NewOwner("Alice", "alice@example.com"),
			domain.NewInvitee("bob@example.com"),
		},
	}
}

func optionsFixture(tag string) notify.Options {
	return notify.Options{
		From:    mail.Address{Name: "Equipe Plann.er", Address: "oi@plann.er"},
		BaseURL: "http://localhost:3333",
		Locale:  locale.Parse(tag),
	}
}

func TestConfirmationLink(t *testing.T) {
	link, err := notify.ConfirmationLink("http://localhost:3333/", tripID)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3333/trips/"+tripID.String()+"/confirm", link)
}

func TestComposeConfirmation_PtBR(t *testing.T) {
	trip := tripFixture()
	owner, _ := trip.Owner()

	msg, err := notify.ComposeConfirmation(trip, owner, optionsFixture("pt-BR"))

	require.NoError(t, err)
	assert.Equal(t, mail.Address{Name: "Equipe Plann.er", Address: "oi@plann.er"}, msg.From)
	assert.Equal(t, mail.Address{Name: "Alice", Address: "alice@example.com"}, msg.To)
	assert.Equal(t, "Confirme sua viagem para Florianópolis em 1 de janeiro de 2031", msg.Subject)

	for _, want := range []string{
		"Plann.er",
		"Faaaala Alice, tudo bem?",
		"Florianópolis",
		"1 de janeiro de 2031",
		"5 de janeiro de 2031",
		`href="http://localhost:3333/trips/` + tripID.String() + `/confirm"`,
		"Confirmar viagem",
		"apenas ignore esse e-mail",
	} {
		assert.Contains(t, msg.HTML, want)
	}
}

func TestComposeConfirmation_EnUS(t *testing.T) {
	trip := tripFixture()
	owner, _ := trip.Owner()

	msg, err := notify.ComposeConfirmation(trip, owner, optionsFixture("en-US"))

	require.NoError(t, err)
	assert.Equal(t, "Confirm your trip to Florianópolis on January 1, 2031", msg.Subject)
	assert.Contains(t, msg.HTML, "Hi Alice, how are you?")
	assert.Contains(t, msg.HTML, "January 5, 2031")
}

func TestComposeConfirmation_EscapesUserInput(t *testing.T) {
	trip := tripFixture()
	trip.Destination = "<script>alert(1)</script>"
	owner := domain.NewOwner("<b>Mallory</b>", "mallory@example.com")

	msg, err := notify.ComposeConfirmation(trip, owner, optionsFixture("pt-BR"))

	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "<b>Mallory</b>")
	assert.Contains(t, msg.HTML, "&lt;b&gt;Mallory&lt;/b&gt;")
}

func TestDirect_Notify(t *testing.T) {
	var got mail.Message
	d := notify.NewDirect(&mockMailer{send: func(_ context.Context, msg mail.Message) (string, error) {
		got = msg
		return "id", nil
	}})

	require.NoError(t, d.Notify(context.Background(), mail.Message{Subject: "hi"}))
	assert.Equal(t, "hi", got.Subject)

	sendErr := errors.New("relay refused")
	d = notify.NewDirect(&mockMailer{send: func(context.Context, mail.Message) (string, error) {
		return "", sendErr
	}})
	assert.ErrorIs(t, d.Notify(context.Background(), mail.Message{}), sendErr)
}

func TestQueue_Notify_EnqueuesEmailTask(t *testing.T) {
	enq := &mockEnqueuer{}
	q := notify.NewQueue(enq)

	require.NoError(t, q.Notify(context.Background(), mail.Message{Subject: "hi"}))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, job.TaskSendEmail, enq.tasks[0].Type())
	assert.True(t, strings.Contains(string(enq.tasks[0].Payload()), `"subject":"hi"`))
}

func TestQueue_Notify_EnqueueError(t *testing.T) {
	redisErr := errors.New("redis unreachable")
	q := notify.NewQueue(&mockEnqueuer{err: redisErr})

	assert.ErrorIs(t, q.Notify(context.Background(), mail.Message{}), redisErr)
}

func TestConfirmations_TripCreated(t *testing.T) {
	var sent []mail.Message
	c := notify.NewConfirmations(optionsFixture("pt-BR"), notify.NewDirect(&mockMailer{
		send: func(_ context.Context, msg mail.Message) (string, error) {
			sent = append(sent, msg)
			return "id", nil
		},
	}))

	require.NoError(t, c.TripCreated(context.Background(), tripFixture()))

	require.Len(t, sent, 1, "only the owner is emailed")
	assert.Equal(t, "alice@example.com", sent[0].To.Address)
	assert.Contains(t, sent[0].HTML, tripID.String())
}

func TestConfirmations_TripCreated_NoOwner(t *testing.T) {
	c := notify.NewConfirmations(optionsFixture("pt-BR"), notify.NewDirect(&mockMailer{
		send: func(context.Context, mail.Message) (string, error) {
			t.Fatal("no email without an owner")
			return "", nil
		},
	}))

	trip := tripFixture()
	trip.Participants = nil

	assert.Error(t, c.TripCreated(context.Background(), trip))
}
