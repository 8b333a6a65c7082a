package handler

import (
	"net/http"

	"github.com/tripforge/backend/internal/domain"
)

// tripResponse decorates a trip with its derived duration in days.
// Duration is computed on read and never stored.
type tripResponse struct {
	domain.Trip
	Duration int `json:"duration"`
}

func newTripResponse(t domain.Trip) tripResponse {
	return tripResponse{Trip: t, Duration: t.Duration()}
}

// CreateTrip implements POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var in domain.Trip
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Create(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTripResponse(trip))
}

// ListTrips implements GET /api/trips. It returns one page of the caller's
// own trips, newest start date first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	page := pagination(r)

	trips, total, err := s.trips.ListByUser(r.Context(), principal(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, newTripResponse(t))
	}
	writeJSON(w, http.StatusOK, newPagedResponse(out, page, total))
}

// GetTrip implements GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// UpdateTrip implements PATCH /api/trips/{tripID}. The body is a partial
// update of the top-level fields; anything it omits keeps its stored value.
// Nested collections have their own endpoints.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var in domain.TripPatch
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.Update(r.Context(), principal(r), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}

// DeleteTrip implements DELETE /api/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ShareTrip implements PATCH /api/trips/{tripID}/share.
func (s *Server) ShareTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.Share(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripResponse(trip))
}
