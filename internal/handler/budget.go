package handler

import (
	"net/http"

	"github.com/tripforge/backend/internal/domain"
)

// GetBudget implements GET /api/trips/{tripID}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	budget, err := s.trips.GetBudget(r.Context(), principal(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// UpdateBudget implements PATCH /api/trips/{tripID}/budget. The body is a
// partial update; only currency, total, and the user-entered categories can
// be set, and anything omitted keeps its stored value. Everything else is
// re-derived.
func (s *Server) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var in domain.BudgetPatch
	if err := decodeJSON(r, &in); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	trip, err := s.trips.UpdateBudget(r.Context(), principal(r), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip.Budget)
}
