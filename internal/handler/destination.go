package handler

import (
	"net/http"

	"github.com/tripforge/backend/internal/domain"
)

// ListDestinations implements GET /api/destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	page := pagination(r)

	dests, total, err := s.destinations.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newPagedResponse(dests, page, total))
}

// GetDestination implements GET /api/destinations/{destinationID}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "destinationID")
	if !ok {
		return
	}

	dest, err := s.destinations.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dest)
}

// SearchDestinations implements GET /api/destinations/search?q=...
func (s *Server) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.destinations.Search(r.Context(), r.URL.Query().Get("q"), limitParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(dests))
}

// NearbyDestinations implements
// GET /api/destinations/nearby?lat=..&lng=..&radius=..
func (s *Server) NearbyDestinations(w http.ResponseWriter, r *http.Request) {
	lat, latOK := queryFloat(r, "lat")
	lng, lngOK := queryFloat(r, "lng")
	if !latOK || !lngOK {
		writeBadRequest(w, "lat and lng are required")
		return
	}
	radius, _ := queryFloat(r, "radius")

	dests, err := s.destinations.Nearby(r.Context(), lat, lng, radius, limitParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(dests))
}

// PopularDestinations implements GET /api/destinations/popular.
func (s *Server) PopularDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.destinations.Popular(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(dests))
}

// RecommendedDestinations implements GET /api/destinations/recommended.
func (s *Server) RecommendedDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.destinations.Recommended(r.Context(), limitParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(dests))
}

// PersonalizedDestinations implements GET /api/destinations/personalized.
func (s *Server) PersonalizedDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.destinations.Personalized(r.Context(), principal(r), limitParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse(dests))
}

// CreateDestination implements POST /api/destinations. Admin-only.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var in domain.Destination
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	dest, err := s.destinations.Create(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dest)
}

// UpdateDestination implements PUT /api/destinations/{destinationID}. Admin-only.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "destinationID")
	if !ok {
		return
	}

	var in domain.Destination
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	dest, err := s.destinations.Update(r.Context(), principal(r), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dest)
}

// DeleteDestination implements DELETE /api/destinations/{destinationID}. Admin-only.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "destinationID")
	if !ok {
		return
	}

	if err := s.destinations.Delete(r.Context(), principal(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
