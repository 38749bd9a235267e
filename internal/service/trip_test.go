package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/repo"
	"github.com/pkordes/planner/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error) {
	return m.create(ctx, trip, participants)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// recordingNotifier remembers every trip it was told about.
type recordingNotifier struct {
	trips []domain.Trip
	err   error
}

func (n *recordingNotifier) TripCreated(_ context.Context, trip domain.Trip) error {
	n.trips = append(n.trips, trip)
	return n.err
}

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func validParams() domain.CreateTripParams {
	return domain.CreateTripParams{
		Destination:    "Florianópolis",
		StartsAt:       time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2031, 1, 5, 0, 0, 0, 0, time.UTC),
		OwnerName:      "Alice",
		OwnerEmail:     "alice@example.com",
		EmailsToInvite: []string{"bob@example.com"},
	}
}

// storingRepo behaves like the database: it assigns ids and attaches
// participants. created counts successful calls.
func storingRepo(created *int) *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip, ps []domain.Participant) (domain.Trip, error) {
			*created++
			t.ID = uuid.New()
			for i := range ps {
				ps[i].ID = uuid.New()
				ps[i].TripID = t.ID
			}
			t.Participants = ps
			return t, nil
		},
	}
}

func newService(r repo.TripRepo, n service.TripNotifier, logs *bytes.Buffer) *service.TripService {
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	return service.NewTripService(r, n, logger, service.WithClock(clock))
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	var created int
	notifier := &recordingNotifier{}
	svc := newService(storingRepo(&created), notifier, &bytes.Buffer{})

	got, err := svc.Create(context.Background(), validParams())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "Florianópolis", got.Destination)
	assert.Equal(t, 1, created)

	require.Len(t, notifier.trips, 1, "the owner is notified exactly once")
	assert.Equal(t, got.ID, notifier.trips[0].ID)
}

func TestTripService_Create_BuildsOwnerAndInvitees(t *testing.T) {
	var gotParticipants []domain.Participant
	r := &mockTripRepo{
		create: func(_ context.Context, tr domain.Trip, ps []domain.Participant) (domain.Trip, error) {
			gotParticipants = ps
			tr.Participants = ps
			return tr, nil
		},
	}
	svc := newService(r, &recordingNotifier{}, &bytes.Buffer{})

	params := validParams()
	params.EmailsToInvite = []string{"bob@example.com", "carol@example.com"}
	_, err := svc.Create(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, gotParticipants, 1+len(params.EmailsToInvite))

	owners := 0
	for _, p := range gotParticipants {
		if p.IsOwner {
			owners++
			assert.True(t, p.IsConfirmed)
			assert.Equal(t, "alice@example.com", p.Email)
		} else {
			assert.False(t, p.IsConfirmed)
			assert.Nil(t, p.Name)
		}
	}
	assert.Equal(t, 1, owners)
}

func TestTripService_Create_StartInThePast(t *testing.T) {
	var created int
	notifier := &recordingNotifier{}
	svc := newService(storingRepo(&created), notifier, &bytes.Buffer{})

	params := validParams()
	params.StartsAt = fixedNow.Add(-time.Second)

	_, err := svc.Create(context.Background(), params)

	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Zero(t, created, "nothing is persisted")
	assert.Empty(t, notifier.trips, "nothing is sent")
}

func TestTripService_Create_StartExactlyNow(t *testing.T) {
	var created int
	svc := newService(storingRepo(&created), &recordingNotifier{}, &bytes.Buffer{})

	params := validParams()
	params.StartsAt = fixedNow
	params.EndsAt = fixedNow

	_, err := svc.Create(context.Background(), params)

	assert.NoError(t, err)
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	var created int
	notifier := &recordingNotifier{}
	svc := newService(storingRepo(&created), notifier, &bytes.Buffer{})

	params := validParams()
	params.EndsAt = time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), params)

	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.ErrorContains(t, err, "end date")
	assert.Zero(t, created)
	assert.Empty(t, notifier.trips)
}

func TestTripService_Create_EndEqualToStart(t *testing.T) {
	var created int
	svc := newService(storingRepo(&created), &recordingNotifier{}, &bytes.Buffer{})

	params := validParams()
	params.EndsAt = params.StartsAt // a same-day trip is valid

	_, err := svc.Create(context.Background(), params)

	assert.NoError(t, err)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(context.Context, domain.Trip, []domain.Participant) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	notifier := &recordingNotifier{}
	svc := newService(r, notifier, &bytes.Buffer{})

	_, err := svc.Create(context.Background(), validParams())

	assert.ErrorIs(t, err, repoErr)
	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.Empty(t, notifier.trips)
}

func TestTripService_Create_NotifierErrorIsLoggedNotReturned(t *testing.T) {
	var created int
	var logs bytes.Buffer
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := newService(storingRepo(&created), notifier, &logs)

	got, err := svc.Create(context.Background(), validParams())

	require.NoError(t, err, "the committed trip is still reported")
	assert.NotEqual(t, uuid.Nil, got.ID)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, got.ID.String(), entry["trip_id"])
	assert.Equal(t, "smtp down", entry["error"])
}

func TestTripService_Create_TwiceYieldsDistinctTrips(t *testing.T) {
	var created int
	svc := newService(storingRepo(&created), &recordingNotifier{}, &bytes.Buffer{})

	first, err := svc.Create(context.Background(), validParams())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validParams())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, created)
}

// ---- GetByID tests ---------------------------------------------------------

func TestTripService_GetByID_Found(t *testing.T) {
	want := domain.Trip{ID: uuid.New(), Destination: "Lisboa"}
	r := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return want, nil },
	}
	svc := newService(r, &recordingNotifier{}, &bytes.Buffer{})

	got, err := svc.GetByID(context.Background(), want.ID)

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return domain.Trip{}, domain.ErrNotFound },
	}
	svc := newService(r, &recordingNotifier{}, &bytes.Buffer{})

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrDependency)
}

func TestTripService_GetByID_RepoError(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Trip, error) { return domain.Trip{}, errors.New("timeout") },
	}
	svc := newService(r, &recordingNotifier{}, &bytes.Buffer{})

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrDependency)
}
