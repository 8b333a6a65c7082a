package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/domain"
)

// Nested-collection operations on the trip aggregate. Each one loads the
// document, checks ownership, applies the mutation, and persists through
// saveTrip so the budget is re-derived in the same write.

// AddVisit appends a destination visit to the trip.
func (s *TripService) AddVisit(ctx context.Context, p domain.Principal, tripID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	trip.AddVisit(v)
	return s.saveTrip(ctx, trip)
}

// UpdateVisit replaces the scalar fields of an existing visit.
func (s *TripService) UpdateVisit(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := trip.UpdateVisit(visitID, v); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// RemoveVisit deletes a visit and everything embedded in it.
func (s *TripService) RemoveVisit(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := trip.RemoveVisit(visitID); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// AddAccommodation appends a lodging item to the given visit.
func (s *TripService) AddAccommodation(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Accommodation) (domain.Trip, error) {
	if err := validateAccommodation(a); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := trip.AddAccommodation(visitID, a); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// UpdateAccommodation replaces a lodging item in place.
func (s *TripService) UpdateAccommodation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Accommodation) (domain.Trip, error) {
	if err := validateAccommodation(a); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := trip.UpdateAccommodation(visitID, itemID, a); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// RemoveAccommodation deletes a lodging item from the given visit.
func (s *TripService) RemoveAccommodation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := trip.RemoveAccommodation(visitID, itemID); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// AddActivity appends an activity to the given visit.
func (s *TripService) AddActivity(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Activity) (domain.Trip, error) {
	if err := validateActivity(a); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := trip.AddActivity(visitID, a); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// UpdateActivity replaces an activity in place.
func (s *TripService) UpdateActivity(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Activity) (domain.Trip, error) {
	if err := validateActivity(a); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := trip.UpdateActivity(visitID, itemID, a); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// RemoveActivity deletes an activity from the given visit.
func (s *TripService) RemoveActivity(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := trip.RemoveActivity(visitID, itemID); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// AddTransportation appends a travel leg to the given visit.
func (s *TripService) AddTransportation(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, tr domain.Transportation) (domain.Trip, error) {
	if !tr.Mode.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: invalid transportation type %q", domain.ErrValidation, tr.Mode)
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := trip.AddTransportation(visitID, tr); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// UpdateTransportation replaces a travel leg in place.
func (s *TripService) UpdateTransportation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, tr domain.Transportation) (domain.Trip, error) {
	if !tr.Mode.Valid() {
		return domain.Trip{}, fmt.Errorf("%w: invalid transportation type %q", domain.ErrValidation, tr.Mode)
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if _, err := trip.UpdateTransportation(visitID, itemID, tr); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// RemoveTransportation deletes a travel leg from the given visit.
func (s *TripService) RemoveTransportation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := trip.RemoveTransportation(visitID, itemID); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// AddNote appends a free-form note. An unset date defaults to now.
func (s *TripService) AddNote(ctx context.Context, p domain.Principal, tripID uuid.UUID, n domain.TripNote) (domain.Trip, error) {
	if err := validateNote(n); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if n.Date.IsZero() {
		n.Date = time.Now().UTC()
	}
	trip.AddNote(n)
	return s.saveTrip(ctx, trip)
}

// UpdateNote replaces a note in place.
func (s *TripService) UpdateNote(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID, n domain.TripNote) (domain.Trip, error) {
	if err := validateNote(n); err != nil {
		return domain.Trip{}, err
	}
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if n.Date.IsZero() {
		n.Date = time.Now().UTC()
	}
	if _, err := trip.UpdateNote(noteID, n); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

// RemoveNote deletes a note.
func (s *TripService) RemoveNote(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID) (domain.Trip, error) {
	trip, err := s.authorizedTrip(ctx, p, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := trip.RemoveNote(noteID); err != nil {
		return domain.Trip{}, err
	}
	return s.saveTrip(ctx, trip)
}

func validateAccommodation(a domain.Accommodation) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: accommodation name is required", domain.ErrValidation)
	}
	return nil
}

func validateActivity(a domain.Activity) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: activity name is required", domain.ErrValidation)
	}
	return nil
}

func validateNote(n domain.TripNote) error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: note title is required", domain.ErrValidation)
	}
	return nil
}
