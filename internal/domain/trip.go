// Package domain contains the core data types for the Plann.er API.
// This package has no dependencies on other internal packages and is imported
// by every layer (repo, service, handler, notify).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned journey to a destination over a date range.
// A trip is the top-level aggregate; participants belong to a trip.
// IsConfirmed stays false until the owner follows the confirmation link.
type Trip struct {
	ID           uuid.UUID
	Destination  string
	StartsAt     time.Time
	EndsAt       time.Time
	IsConfirmed  bool
	CreatedAt    time.Time
	Participants []Participant
}

// Owner returns the participant flagged as owner, and false when the trip has
// no participants loaded.
func (t Trip) Owner() (Participant, bool) {
	for _, p := range t.Participants {
		if p.IsOwner {
			return p, true
		}
	}
	return Participant{}, false
}

// CreateTripParams carries the input of the trip creation use case, already
// shape-validated by the HTTP layer.
type CreateTripParams struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}
