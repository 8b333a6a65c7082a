// Package handler implements the HTTP layer for the trip planner API.
// All handlers are methods on Server, split into resource-specific files
// (trip.go, user.go, destination.go, ...) that share one struct so they can
// access its dependencies. Handlers decode requests, call a service, and map
// sentinel errors to status codes; no business rules live here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/domain"
	"github.com/tripforge/backend/internal/middleware"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, p domain.Principal, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error)
	ListByUser(ctx context.Context, p domain.Principal, page domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error

	GetBudget(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Budget, error)
	UpdateBudget(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.BudgetPatch) (domain.Trip, error)
	Share(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error)
	Export(ctx context.Context, p domain.Principal, id uuid.UUID) ([]domain.ExportRow, error)

	AddVisit(ctx context.Context, p domain.Principal, tripID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error)
	UpdateVisit(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error)
	RemoveVisit(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID) (domain.Trip, error)
	AddAccommodation(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Accommodation) (domain.Trip, error)
	UpdateAccommodation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Accommodation) (domain.Trip, error)
	RemoveAccommodation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error)
	AddActivity(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Activity) (domain.Trip, error)
	UpdateActivity(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Activity) (domain.Trip, error)
	RemoveActivity(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error)
	AddTransportation(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, t domain.Transportation) (domain.Trip, error)
	UpdateTransportation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, t domain.Transportation) (domain.Trip, error)
	RemoveTransportation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error)
	AddNote(ctx context.Context, p domain.Principal, tripID uuid.UUID, n domain.TripNote) (domain.Trip, error)
	UpdateNote(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID, n domain.TripNote) (domain.Trip, error)
	RemoveNote(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID) (domain.Trip, error)
}

// UserServicer defines the account operations the user handlers depend on.
type UserServicer interface {
	Signup(ctx context.Context, name, email, password string) (domain.User, string, error)
	Login(ctx context.Context, email, password string) (domain.User, string, error)
	Me(ctx context.Context, p domain.Principal) (domain.User, error)
	UpdateProfile(ctx context.Context, p domain.Principal, name, email string) (domain.User, error)
	UpdatePassword(ctx context.Context, p domain.Principal, current, next string) error
	DeleteAccount(ctx context.Context, p domain.Principal) error
	GetPreferences(ctx context.Context, p domain.Principal) (domain.Preferences, error)
	UpdatePreferences(ctx context.Context, p domain.Principal, prefs domain.Preferences) (domain.Preferences, error)
	AddTravelHistory(ctx context.Context, p domain.Principal, entry domain.TravelHistoryEntry) (domain.User, error)
	RemoveTravelHistory(ctx context.Context, p domain.Principal, entryID uuid.UUID) (domain.User, error)
	ListUsers(ctx context.Context, p domain.Principal, page domain.PaginationParams) ([]domain.User, int64, error)
	GetUser(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.User, error)
	SetUserRole(ctx context.Context, p domain.Principal, id uuid.UUID, role domain.Role) (domain.User, error)
	DeleteUser(ctx context.Context, p domain.Principal, id uuid.UUID) error
}

// DestinationServicer defines the catalog operations the destination
// handlers depend on.
type DestinationServicer interface {
	List(ctx context.Context, page domain.PaginationParams) ([]domain.Destination, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Destination, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Destination, error)
	Popular(ctx context.Context, limit int) ([]domain.Destination, error)
	Recommended(ctx context.Context, limit int) ([]domain.Destination, error)
	Personalized(ctx context.Context, p domain.Principal, limit int) ([]domain.Destination, error)
	Create(ctx context.Context, p domain.Principal, d domain.Destination) (domain.Destination, error)
	Update(ctx context.Context, p domain.Principal, id uuid.UUID, d domain.Destination) (domain.Destination, error)
	Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	trips        TripServicer
	users        UserServicer
	destinations DestinationServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, users UserServicer, destinations DestinationServicer) *Server {
	return &Server{trips: trips, users: users, destinations: destinations}
}

// Routes builds the API route tree. authn is the bearer-token middleware;
// it is injected so tests can substitute one that plants a fixed principal.
func (s *Server) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.Health)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/me", s.Me)
			r.Patch("/me", s.UpdateProfile)
			r.Patch("/me/password", s.UpdatePassword)
			r.Delete("/me", s.DeleteAccount)
			r.Get("/me/preferences", s.GetPreferences)
			r.Put("/me/preferences", s.UpdatePreferences)
			r.Get("/me/travel-history", s.ListTravelHistory)
			r.Post("/me/travel-history", s.AddTravelHistory)
			r.Delete("/me/travel-history/{entryID}", s.RemoveTravelHistory)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn, middleware.RequireAdmin)
			r.Get("/", s.ListUsers)
			r.Get("/{userID}", s.GetUser)
			r.Patch("/{userID}/role", s.SetUserRole)
			r.Delete("/{userID}", s.DeleteUser)
		})
	})

	r.Route("/api/trips", func(r chi.Router) {
		r.Use(authn)

		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
		r.Get("/{tripID}", s.GetTrip)
		r.Patch("/{tripID}", s.UpdateTrip)
		r.Delete("/{tripID}", s.DeleteTrip)

		r.Get("/{tripID}/budget", s.GetBudget)
		r.Patch("/{tripID}/budget", s.UpdateBudget)
		r.Patch("/{tripID}/share", s.ShareTrip)
		r.Get("/{tripID}/export", s.ExportTrip)

		r.Get("/{tripID}/destinations", s.ListVisits)
		r.Post("/{tripID}/destinations", s.AddVisit)
		r.Patch("/{tripID}/destinations/{visitID}", s.UpdateVisit)
		r.Delete("/{tripID}/destinations/{visitID}", s.RemoveVisit)

		r.Get("/{tripID}/destinations/{visitID}/accommodations", s.ListAccommodations)
		r.Post("/{tripID}/destinations/{visitID}/accommodations", s.AddAccommodation)
		r.Patch("/{tripID}/destinations/{visitID}/accommodations/{itemID}", s.UpdateAccommodation)
		r.Delete("/{tripID}/destinations/{visitID}/accommodations/{itemID}", s.RemoveAccommodation)

		r.Get("/{tripID}/destinations/{visitID}/activities", s.ListActivities)
		r.Post("/{tripID}/destinations/{visitID}/activities", s.AddActivity)
		r.Patch("/{tripID}/destinations/{visitID}/activities/{itemID}", s.UpdateActivity)
		r.Delete("/{tripID}/destinations/{visitID}/activities/{itemID}", s.RemoveActivity)

		r.Get("/{tripID}/destinations/{visitID}/transportation", s.ListTransportation)
		r.Post("/{tripID}/destinations/{visitID}/transportation", s.AddTransportation)
		r.Patch("/{tripID}/destinations/{visitID}/transportation/{itemID}", s.UpdateTransportation)
		r.Delete("/{tripID}/destinations/{visitID}/transportation/{itemID}", s.RemoveTransportation)

		r.Get("/{tripID}/notes", s.ListNotes)
		r.Post("/{tripID}/notes", s.AddNote)
		r.Patch("/{tripID}/notes/{noteID}", s.UpdateNote)
		r.Delete("/{tripID}/notes/{noteID}", s.RemoveNote)
	})

	r.Route("/api/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Get("/search", s.SearchDestinations)
		r.Get("/nearby", s.NearbyDestinations)
		r.Get("/popular", s.PopularDestinations)
		r.Get("/recommended", s.RecommendedDestinations)

		r.Group(func(r chi.Router) {
			r.Use(authn)
			r.Get("/personalized", s.PersonalizedDestinations)
		})

		r.Group(func(r chi.Router) {
			r.Use(authn, middleware.RequireAdmin)
			r.Post("/", s.CreateDestination)
			r.Put("/{destinationID}", s.UpdateDestination)
			r.Delete("/{destinationID}", s.DeleteDestination)
		})

		// chi matches the literal discovery routes above before this param route.
		r.Get("/{destinationID}", s.GetDestination)
	})

	return r
}
