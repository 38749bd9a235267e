package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/planner/internal/domain"
)

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Destination    string     `json:"destination" validate:"required,min=4"`
	StartsAt       *Timestamp `json:"startsAt" validate:"required"`
	EndsAt         *Timestamp `json:"endsAt" validate:"required"`
	OwnerName      string     `json:"ownerName" validate:"required"`
	OwnerEmail     string     `json:"ownerEmail" validate:"required,email"`
	EmailsToInvite []string   `json:"emailsToInvite" validate:"required,dive,email"`
}

// CreateTripResponse is the body of a 201 from POST /trips.
type CreateTripResponse struct {
	TripID openapi_types.UUID `json:"tripId"`
}

// TripResponse is the body of GET /trips/{tripId}.
type TripResponse struct {
	ID           openapi_types.UUID    `json:"id"`
	Destination  string                `json:"destination"`
	StartsAt     time.Time             `json:"startsAt"`
	EndsAt       time.Time             `json:"endsAt"`
	IsConfirmed  bool                  `json:"isConfirmed"`
	CreatedAt    time.Time             `json:"createdAt"`
	Participants []ParticipantResponse `json:"participants"`
}

// ParticipantResponse is one participant inside TripResponse.
type ParticipantResponse struct {
	ID          openapi_types.UUID `json:"id"`
	Name        *string            `json:"name"`
	Email       string             `json:"email"`
	IsOwner     bool               `json:"isOwner"`
	IsConfirmed bool               `json:"isConfirmed"`
}

// Timestamp accepts either an RFC 3339 timestamp or a plain YYYY-MM-DD date,
// which is read as midnight UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	var d openapi_types.Date
	if err := d.UnmarshalJSON(data); err == nil {
		ts.Time = d.Time
		return nil
	}
	return fmt.Errorf("%q is neither an RFC 3339 timestamp nor a YYYY-MM-DD date", s)
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, "request validation failed", fieldErrors(err))
		return
	}

	trip, err := s.trips.Create(r.Context(), requestToParams(req))
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, CreateTripResponse{TripID: trip.ID})
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	var tripID openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "tripId", chi.URLParam(r, "tripId"), &tripID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, fmt.Sprintf("invalid tripId: %v", err), nil)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), tripID)
	if err != nil {
		s.writeServiceError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// --- mapping helpers --------------------------------------------------------

func requestToParams(req CreateTripRequest) domain.CreateTripParams {
	return domain.CreateTripParams{
		Destination:    req.Destination,
		StartsAt:       req.StartsAt.Time,
		EndsAt:         req.EndsAt.Time,
		OwnerName:      req.OwnerName,
		OwnerEmail:     req.OwnerEmail,
		EmailsToInvite: req.EmailsToInvite,
	}
}

func tripToResponse(t domain.Trip) TripResponse {
	resp := TripResponse{
		ID:           t.ID,
		Destination:  t.Destination,
		StartsAt:     t.StartsAt,
		EndsAt:       t.EndsAt,
		IsConfirmed:  t.IsConfirmed,
		CreatedAt:    t.CreatedAt,
		Participants: make([]ParticipantResponse, len(t.Participants)),
	}
	for i, p := range t.Participants {
		resp.Participants[i] = ParticipantResponse{
			ID:          p.ID,
			Name:        p.Name,
			Email:       p.Email,
			IsOwner:     p.IsOwner,
			IsConfirmed: p.IsConfirmed,
		}
	}
	return resp
}
