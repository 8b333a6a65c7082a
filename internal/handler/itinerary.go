package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/domain"
)

// Nested-collection endpoints. Every mutation returns the full updated trip
// document so clients always see the recomputed budget without a second
// request.

// itemIDs parses the trip and visit path parameters shared by the nested
// item endpoints.
func itemIDs(w http.ResponseWriter, r *http.Request) (tripID, visitID uuid.UUID, ok bool) {
	tripID, ok = pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	visitID, ok = pathUUID(w, r, "visitID")
	return
}

// ListVisits implements GET /api/trips/{tripID}/destinations.
func (s *Server) ListVisits(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), principal(r), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(trip.Destinations))
}

// visitFromPath loads the trip (applying its read-access rules) and resolves
// the visit named in the path. Reports ok=false after writing the error.
func (s *Server) visitFromPath(w http.ResponseWriter, r *http.Request) (*domain.DestinationVisit, bool) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return nil, false
	}

	trip, err := s.trips.GetByID(r.Context(), principal(r), tripID)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	visit, err := trip.Visit(visitID)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	return visit, true
}

// ListAccommodations implements
// GET /api/trips/{tripID}/destinations/{visitID}/accommodations.
func (s *Server) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	visit, ok := s.visitFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(visit.Accommodations))
}

// ListActivities implements
// GET /api/trips/{tripID}/destinations/{visitID}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	visit, ok := s.visitFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(visit.Activities))
}

// ListTransportation implements
// GET /api/trips/{tripID}/destinations/{visitID}/transportation.
func (s *Server) ListTransportation(w http.ResponseWriter, r *http.Request) {
	visit, ok := s.visitFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(visit.Transportation))
}

// ListNotes implements GET /api/trips/{tripID}/notes.
func (s *Server) ListNotes(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), principal(r), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(trip.Notes))
}

// AddVisit implements POST /api/trips/{tripID}/destinations.
func (s *Server) AddVisit(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var in domain.DestinationVisit
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.AddVisit(r.Context(), principal(r), tripID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripResponse(trip))
}

// UpdateVisit implements PATCH /api/trips/{tripID}/destinations/{visitID}.
func (s *Server) UpdateVisit(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}

	var in domain.DestinationVisit
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.UpdateVisit(r.Context(), principal(r), tripID, visitID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// RemoveVisit implements DELETE /api/trips/{tripID}/destinations/{visitID}.
func (s *Server) RemoveVisit(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.RemoveVisit(r.Context(), principal(r), tripID, visitID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// AddAccommodation implements
// POST /api/trips/{tripID}/destinations/{visitID}/accommodations.
func (s *Server) AddAccommodation(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}

	var in domain.Accommodation
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.AddAccommodation(r.Context(), principal(r), tripID, visitID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripResponse(trip))
}

// UpdateAccommodation implements
// PATCH /api/trips/{tripID}/destinations/{visitID}/accommodations/{itemID}.
func (s *Server) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	var in domain.Accommodation
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.UpdateAccommodation(r.Context(), principal(r), tripID, visitID, itemID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// RemoveAccommodation implements
// DELETE /api/trips/{tripID}/destinations/{visitID}/accommodations/{itemID}.
func (s *Server) RemoveAccommodation(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	trip, err := s.trips.RemoveAccommodation(r.Context(), principal(r), tripID, visitID, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// AddActivity implements
// POST /api/trips/{tripID}/destinations/{visitID}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}

	var in domain.Activity
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.AddActivity(r.Context(), principal(r), tripID, visitID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripResponse(trip))
}

// UpdateActivity implements
// PATCH /api/trips/{tripID}/destinations/{visitID}/activities/{itemID}.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	var in domain.Activity
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.UpdateActivity(r.Context(), principal(r), tripID, visitID, itemID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// RemoveActivity implements
// DELETE /api/trips/{tripID}/destinations/{visitID}/activities/{itemID}.
func (s *Server) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	trip, err := s.trips.RemoveActivity(r.Context(), principal(r), tripID, visitID, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// AddTransportation implements
// POST /api/trips/{tripID}/destinations/{visitID}/transportation.
func (s *Server) AddTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}

	var in domain.Transportation
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.AddTransportation(r.Context(), principal(r), tripID, visitID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripResponse(trip))
}

// UpdateTransportation implements
// PATCH /api/trips/{tripID}/destinations/{visitID}/transportation/{itemID}.
func (s *Server) UpdateTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	var in domain.Transportation
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.UpdateTransportation(r.Context(), principal(r), tripID, visitID, itemID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// RemoveTransportation implements
// DELETE /api/trips/{tripID}/destinations/{visitID}/transportation/{itemID}.
func (s *Server) RemoveTransportation(w http.ResponseWriter, r *http.Request) {
	tripID, visitID, ok := itemIDs(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	trip, err := s.trips.RemoveTransportation(r.Context(), principal(r), tripID, visitID, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// AddNote implements POST /api/trips/{tripID}/notes.
func (s *Server) AddNote(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var in domain.TripNote
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.AddNote(r.Context(), principal(r), tripID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripResponse(trip))
}

// UpdateNote implements PATCH /api/trips/{tripID}/notes/{noteID}.
func (s *Server) UpdateNote(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	var in domain.TripNote
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.UpdateNote(r.Context(), principal(r), tripID, noteID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// RemoveNote implements DELETE /api/trips/{tripID}/notes/{noteID}.
func (s *Server) RemoveNote(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	noteID, ok := pathUUID(w, r, "noteID")
	if !ok {
		return
	}

	trip, err := s.trips.RemoveNote(r.Context(), principal(r), tripID, noteID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}
