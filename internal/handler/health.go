package handler

import "net/http"

// Health implements GET /health. It reports liveness only; readiness is the
// load balancer's problem.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
