// Package service contains the business logic for the Plann.er API.
// Services enforce business rules and orchestrate repo calls and side effects.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/planner/internal/domain"
	"github.com/pkordes/planner/internal/repo"
)

// TripNotifier is told about every trip that was committed.
type TripNotifier interface {
	TripCreated(ctx context.Context, trip domain.Trip) error
}

// TripService implements business logic for Trip operations.
type TripService struct {
	repo     repo.TripRepo
	notifier TripNotifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option customises a TripService.
type Option func(*TripService)

// WithClock replaces time.Now, so tests can pin "now".
func WithClock(now func() time.Time) Option {
	return func(s *TripService) { s.now = now }
}

// NewTripService constructs a TripService backed by the provided repo that
// reports new trips to notifier.
func NewTripService(r repo.TripRepo, notifier TripNotifier, logger *slog.Logger, opts ...Option) *TripService {
	s := &TripService{repo: r, notifier: notifier, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create checks the date rules, persists the trip with its owner and invitees
// in one transaction, then asks the notifier to email the owner.
//
// Returns domain.ErrBusinessRule when the dates are out of order and
// domain.ErrDependency when the store fails. A notification failure does not
// fail the call: the trip is already committed, so it is only logged.
func (s *TripService) Create(ctx context.Context, params domain.CreateTripParams) (domain.Trip, error) {
	if err := validateDates(params.StartsAt, params.EndsAt, s.now()); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	trip := domain.Trip{
		Destination: params.Destination,
		StartsAt:    params.StartsAt,
		EndsAt:      params.EndsAt,
	}
	created, err := s.repo.Create(ctx, trip, domain.ParticipantsFor(params))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: %w", domain.ErrDependency, err)
	}

	if err := s.notifier.TripCreated(ctx, created); err != nil {
		s.logger.ErrorContext(ctx, "trip confirmation not sent",
			"trip_id", created.ID,
			"error", err,
		)
	}

	return created, nil
}

// GetByID returns a single trip with its participants.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
		}
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w: %w", domain.ErrDependency, err)
	}
	return trip, nil
}

// validateDates enforces: the trip does not start before now, and does not
// end before it starts. Equal instants are allowed in both rules.
func validateDates(startsAt, endsAt, now time.Time) error {
	if startsAt.Before(now) {
		return fmt.Errorf("%w: invalid trip start date: must not be in the past", domain.ErrBusinessRule)
	}
	if endsAt.Before(startsAt) {
		return fmt.Errorf("%w: invalid trip end date: must not be before the start date", domain.ErrBusinessRule)
	}
	return nil
}
