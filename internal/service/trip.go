// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce ownership rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/domain"
	"github.com/tripforge/backend/internal/repo"
)

// TripService implements business logic for trips and everything embedded in
// them. Every mutation follows the same shape: load the document, check
// ownership, apply the change, re-derive the budget, persist the whole
// document in one write.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip owned by the principal.
// Client-supplied budget figures for the derived categories are discarded;
// the budget is recomputed from the trip's line items before the write.
func (s *TripService) Create(ctx context.Context, p domain.Principal, trip domain.Trip) (domain.Trip, error) {
	trip.ID = uuid.Nil
	trip.UserID = p.UserID
	normalizeTrip(&trip)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	domain.RecomputeBudget(&trip)
	return s.repo.Create(ctx, trip)
}

// GetByID returns a single trip. Public trips are readable by anyone;
// private trips only by their owner or an admin.
func (s *TripService) GetByID(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if !trip.IsPublic && !p.CanAccess(trip.UserID) {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrForbidden)
	}
	return trip, nil
}

// ListByUser returns one page of the principal's own trips plus the total.
func (s *TripService) ListByUser(ctx context.Context, p domain.Principal, page domain.PaginationParams) ([]domain.Trip, int64, error) {
	return s.repo.ListByUser(ctx, p.UserID, page)
}

// Update applies a partial update to the trip's top-level fields. Fields
// absent from the patch keep their stored values; nested collections and
// the budget are managed through their own operations and survive unchanged.
func (s *TripService) Update(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, id)
	if err != nil {
		return domain.Trip{}, err
	}

	if patch.Title != nil {
		trip.Title = *patch.Title
	}
	if patch.Description != nil {
		trip.Description = *patch.Description
	}
	if patch.StartDate != nil {
		trip.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		trip.EndDate = *patch.EndDate
	}
	if patch.IsPublic != nil {
		trip.IsPublic = *patch.IsPublic
	}

	return s.saveTrip(ctx, trip)
}

// Delete removes a trip and all embedded data.
func (s *TripService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if _, err := s.authorizedTrip(ctx, p, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// GetBudget returns the trip's budget aggregate.
func (s *TripService) GetBudget(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Budget, error) {
	trip, err := s.GetByID(ctx, p, id)
	if err != nil {
		return domain.Budget{}, err
	}
	return trip.Budget, nil
}

// UpdateBudget applies a partial update to the user-settable budget fields:
// currency, total, and the food, shopping, and other categories. Fields
// absent from the patch keep their stored values. The derived categories and
// spent have no patch surface and are recomputed on the write.
func (s *TripService) UpdateBudget(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.BudgetPatch) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, id)
	if err != nil {
		return domain.Trip{}, err
	}

	if patch.Currency != nil {
		trip.Budget.Currency = *patch.Currency
	}
	if patch.Total != nil {
		trip.Budget.Total = *patch.Total
	}
	if patch.Categories.Food != nil {
		trip.Budget.Categories.Food = *patch.Categories.Food
	}
	if patch.Categories.Shopping != nil {
		trip.Budget.Categories.Shopping = *patch.Categories.Shopping
	}
	if patch.Categories.Other != nil {
		trip.Budget.Categories.Other = *patch.Categories.Other
	}

	return s.saveTrip(ctx, trip)
}

// Share toggles the trip's public visibility. A public trip can be read
// without ownership; toggling again makes it private.
func (s *TripService) Share(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, id)
	if err != nil {
		return domain.Trip{}, err
	}
	trip.IsPublic = !trip.IsPublic
	return s.saveTrip(ctx, trip)
}

// authorizedTrip loads a trip and verifies the principal may mutate it.
// Visibility never grants write access; only the owner or an admin passes.
func (s *TripService) authorizedTrip(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, err
	}
	if !p.CanAccess(trip.UserID) {
		return domain.Trip{}, fmt.Errorf("service.TripService: %w", domain.ErrForbidden)
	}
	return trip, nil
}

// saveTrip validates, re-derives the budget, and persists the document.
// Every mutation path funnels through here so stored budget figures are
// never stale.
func (s *TripService) saveTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	domain.RecomputeBudget(&trip)
	return s.repo.Update(ctx, trip)
}

// normalizeTrip fills defaults on a freshly created trip.
func normalizeTrip(t *domain.Trip) {
	if t.Budget.Currency == "" {
		t.Budget.Currency = domain.DefaultCurrency
	}
	if t.Destinations == nil {
		t.Destinations = []domain.DestinationVisit{}
	}
	if t.Notes == nil {
		t.Notes = []domain.TripNote{}
	}
	for i := range t.Destinations {
		v := &t.Destinations[i]
		if v.ID == uuid.Nil {
			v.ID = uuid.New()
		}
		if v.Accommodations == nil {
			v.Accommodations = []domain.Accommodation{}
		}
		if v.Activities == nil {
			v.Activities = []domain.Activity{}
		}
		if v.Transportation == nil {
			v.Transportation = []domain.Transportation{}
		}
		for j := range v.Accommodations {
			if v.Accommodations[j].ID == uuid.Nil {
				v.Accommodations[j].ID = uuid.New()
			}
		}
		for j := range v.Activities {
			if v.Activities[j].ID == uuid.Nil {
				v.Activities[j].ID = uuid.New()
			}
		}
		for j := range v.Transportation {
			if v.Transportation[j].ID == uuid.Nil {
				v.Transportation[j].ID = uuid.New()
			}
		}
	}
	for i := range t.Notes {
		if t.Notes[i].ID == uuid.Nil {
			t.Notes[i].ID = uuid.New()
		}
		if t.Notes[i].Date.IsZero() {
			t.Notes[i].Date = time.Now().UTC()
		}
	}
}

// validateTrip enforces the trip-level business rules. All violations are
// reported as domain.ErrValidation with a human-readable reason.
func validateTrip(t domain.Trip) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if t.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}
	if t.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", domain.ErrValidation)
	}
	if !t.EndDate.After(t.StartDate) {
		return fmt.Errorf("%w: end date must be after start date", domain.ErrValidation)
	}
	for _, v := range t.Destinations {
		if strings.TrimSpace(v.Location) == "" {
			return fmt.Errorf("%w: destination location is required", domain.ErrValidation)
		}
		for _, tr := range v.Transportation {
			if !tr.Mode.Valid() {
				return fmt.Errorf("%w: invalid transportation type %q", domain.ErrValidation, tr.Mode)
			}
		}
	}
	return nil
}
