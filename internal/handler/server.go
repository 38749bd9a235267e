// Package handler implements the HTTP handlers for the Plann.er API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, openapi.go) but share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/planner/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, params domain.CreateTripParams) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips    TripServicer
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, logger *slog.Logger) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names ("ownerEmail") rather than Go names ("OwnerEmail").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{trips: trips, validate: v, logger: logger}
}

// Routes returns the router for every API endpoint. Cross-cutting middleware
// is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Post("/trips", s.CreateTrip)
	r.Get("/trips/{tripId}", s.GetTrip)
	return r
}
