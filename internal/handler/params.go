package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/domain"
	"github.com/tripforge/backend/internal/middleware"
)

// principal returns the authenticated principal planted by the auth
// middleware. Routes calling this are always behind that middleware, so a
// missing principal means a wiring bug; the zero principal then fails every
// ownership check.
func principal(r *http.Request) domain.Principal {
	p, _ := middleware.PrincipalFromContext(r.Context())
	return p
}

// pathUUID parses a UUID path parameter, reporting ok=false after writing a
// 400 response so callers can simply return.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeBadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads optional ?page= and ?limit= query parameters.
func pagination(r *http.Request) domain.PaginationParams {
	return domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
}

// queryInt returns the named query parameter as *int, nil when absent or
// unparseable.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// queryFloat returns the named query parameter as a float64 plus whether it
// parsed.
func queryFloat(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// limitParam reads ?limit= for the discovery endpoints; zero means "use the
// service default".
func limitParam(r *http.Request) int {
	if n := queryInt(r, "limit"); n != nil {
		return *n
	}
	return 0
}

// dataResponse is the envelope for unpaginated list endpoints. The nil guard
// keeps empty collections serializing as [] rather than null.
func dataResponse[T any](items []T) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{"data": items}
}

// pagedResponse is the envelope for all list endpoints.
type pagedResponse[T any] struct {
	Data  []T   `json:"data"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func newPagedResponse[T any](data []T, p domain.PaginationParams, total int64) pagedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return pagedResponse[T]{Data: data, Page: p.Page, Limit: p.Limit, Total: total}
}
