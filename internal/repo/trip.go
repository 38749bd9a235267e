// Package repo contains all database access logic for the Plann.er API.
// Each aggregate has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so Create stays atomic inside a test transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips and their participants.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts the trip and all of its participants in one transaction
	// and returns the persisted trip (DB-generated id and created_at populated,
	// participants attached). Either every row is written or none is.
	Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error)

	// GetByID retrieves a trip and its participants, owner first.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

var participantColumns = []string{"id", "trip_id", "name", "email", "is_owner", "is_confirmed"}

// Create inserts the trip row, then bulk-copies the participant rows, inside a
// single transaction.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (destination, starts_at, ends_at)
		VALUES (@destination, @starts_at, @ends_at)
		RETURNING id, destination, starts_at, ends_at, is_confirmed, created_at`

	var created domain.Trip
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, q, pgx.NamedArgs{
			"destination": trip.Destination,
			"starts_at":   trip.StartsAt,
			"ends_at":     trip.EndsAt,
		})
		t, err := scanTrip(row)
		if err != nil {
			return fmt.Errorf("insert trip: %w", err)
		}

		rows := make([][]any, len(participants))
		t.Participants = make([]domain.Participant, len(participants))
		for i, p := range participants {
			p.ID = uuid.New()
			p.TripID = t.ID
			rows[i] = []any{
				pgtype.UUID{Bytes: p.ID, Valid: true},
				pgtype.UUID{Bytes: p.TripID, Valid: true},
				p.Name, // nil becomes NULL
				p.Email,
				p.IsOwner,
				p.IsConfirmed,
			}
			t.Participants[i] = p
		}

		n, err := tx.CopyFrom(ctx, pgx.Identifier{"participants"}, participantColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("insert participants: %w", err)
		}
		if n != int64(len(rows)) {
			return fmt.Errorf("insert participants: wrote %d of %d rows", n, len(rows))
		}

		created = t
		return nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return created, nil
}

// GetByID retrieves a trip by primary key along with its participants.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, destination, starts_at, ends_at, is_confirmed, created_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	trip, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	participants, err := r.listParticipants(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	trip.Participants = participants
	return trip, nil
}

// listParticipants returns a trip's participants, owner first then by email.
func (r *pgTripRepo) listParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, name, email, is_owner, is_confirmed
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY is_owner DESC, email ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("participants: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("participants: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("participants: rows: %w", err)
	}
	return participants, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.Destination, &t.StartsAt, &t.EndsAt, &t.IsConfirmed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

// scanParticipant maps a single participants row. name is nullable.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p      domain.Participant
		id     pgtype.UUID
		tripID pgtype.UUID
		name   pgtype.Text
	)

	if err := s.Scan(&id, &tripID, &name, &p.Email, &p.IsOwner, &p.IsConfirmed); err != nil {
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	if name.Valid {
		n := name.String
		p.Name = &n
	}
	return p, nil
}
