package domain

import "github.com/google/uuid"

// Participant is a person attached to a trip, either its owner or an invitee.
// Name is nil for invitees, who have only been identified by email so far.
type Participant struct {
	ID          uuid.UUID
	TripID      uuid.UUID
	Name        *string
	Email       string
	IsOwner     bool
	IsConfirmed bool
}

// NewOwner builds the owner participant. Owners are confirmed on creation.
func NewOwner(name, email string) Participant {
	return Participant{
		Name:        &name,
		Email:       email,
		IsOwner:     true,
		IsConfirmed: true,
	}
}

// NewInvitee builds an unconfirmed, nameless participant for an invited email.
func NewInvitee(email string) Participant {
	return Participant{Email: email}
}

// ParticipantsFor returns the owner followed by one invitee per address, in
// the order the addresses were given.
func ParticipantsFor(p CreateTripParams) []Participant {
	out := make([]Participant, 0, 1+len(p.EmailsToInvite))
	out = append(out, NewOwner(p.OwnerName, p.OwnerEmail))
	for _, email := range p.EmailsToInvite {
		out = append(out, NewInvitee(email))
	}
	return out
}
