package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/backend/internal/domain"
	"github.com/tripforge/backend/internal/handler"
	"github.com/tripforge/backend/internal/middleware"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create     func(ctx context.Context, p domain.Principal, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error)
	listByUser func(ctx context.Context, p domain.Principal, page domain.PaginationParams) ([]domain.Trip, int64, error)
	update     func(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	delete     func(ctx context.Context, p domain.Principal, id uuid.UUID) error

	getBudget    func(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Budget, error)
	updateBudget func(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.BudgetPatch) (domain.Trip, error)
	share        func(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error)
	export       func(ctx context.Context, p domain.Principal, id uuid.UUID) ([]domain.ExportRow, error)

	addVisit             func(ctx context.Context, p domain.Principal, tripID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error)
	updateVisit          func(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error)
	removeVisit          func(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID) (domain.Trip, error)
	addAccommodation     func(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Accommodation) (domain.Trip, error)
	updateAccommodation  func(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Accommodation) (domain.Trip, error)
	removeAccommodation  func(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error)
	addActivity          func(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Activity) (domain.Trip, error)
	updateActivity       func(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Activity) (domain.Trip, error)
	removeActivity       func(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error)
	addTransportation    func(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, t domain.Transportation) (domain.Trip, error)
	updateTransportation func(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, t domain.Transportation) (domain.Trip, error)
	removeTransportation func(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error)
	addNote              func(ctx context.Context, p domain.Principal, tripID uuid.UUID, n domain.TripNote) (domain.Trip, error)
	updateNote           func(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID, n domain.TripNote) (domain.Trip, error)
	removeNote           func(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, p domain.Principal, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, p, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, p, id)
}
func (m *mockTripServicer) ListByUser(ctx context.Context, p domain.Principal, page domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listByUser(ctx, p, page)
}
func (m *mockTripServicer) Update(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, p, id, patch)
}
func (m *mockTripServicer) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	return m.delete(ctx, p, id)
}
func (m *mockTripServicer) GetBudget(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Budget, error) {
	return m.getBudget(ctx, p, id)
}
func (m *mockTripServicer) UpdateBudget(ctx context.Context, p domain.Principal, id uuid.UUID, patch domain.BudgetPatch) (domain.Trip, error) {
	return m.updateBudget(ctx, p, id, patch)
}
func (m *mockTripServicer) Share(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.Trip, error) {
	return m.share(ctx, p, id)
}
func (m *mockTripServicer) Export(ctx context.Context, p domain.Principal, id uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, p, id)
}
func (m *mockTripServicer) AddVisit(ctx context.Context, p domain.Principal, tripID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error) {
	return m.addVisit(ctx, p, tripID, v)
}
func (m *mockTripServicer) UpdateVisit(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, v domain.DestinationVisit) (domain.Trip, error) {
	return m.updateVisit(ctx, p, tripID, visitID, v)
}
func (m *mockTripServicer) RemoveVisit(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID) (domain.Trip, error) {
	return m.removeVisit(ctx, p, tripID, visitID)
}
func (m *mockTripServicer) AddAccommodation(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Accommodation) (domain.Trip, error) {
	return m.addAccommodation(ctx, p, tripID, visitID, a)
}
func (m *mockTripServicer) UpdateAccommodation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Accommodation) (domain.Trip, error) {
	return m.updateAccommodation(ctx, p, tripID, visitID, itemID, a)
}
func (m *mockTripServicer) RemoveAccommodation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error) {
	return m.removeAccommodation(ctx, p, tripID, visitID, itemID)
}
func (m *mockTripServicer) AddActivity(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, a domain.Activity) (domain.Trip, error) {
	return m.addActivity(ctx, p, tripID, visitID, a)
}
func (m *mockTripServicer) UpdateActivity(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, a domain.Activity) (domain.Trip, error) {
	return m.updateActivity(ctx, p, tripID, visitID, itemID, a)
}
func (m *mockTripServicer) RemoveActivity(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error) {
	return m.removeActivity(ctx, p, tripID, visitID, itemID)
}
func (m *mockTripServicer) AddTransportation(ctx context.Context, p domain.Principal, tripID, visitID uuid.UUID, tr domain.Transportation) (domain.Trip, error) {
	return m.addTransportation(ctx, p, tripID, visitID, tr)
}
func (m *mockTripServicer) UpdateTransportation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID, tr domain.Transportation) (domain.Trip, error) {
	return m.updateTransportation(ctx, p, tripID, visitID, itemID, tr)
}
func (m *mockTripServicer) RemoveTransportation(ctx context.Context, p domain.Principal, tripID, visitID, itemID uuid.UUID) (domain.Trip, error) {
	return m.removeTransportation(ctx, p, tripID, visitID, itemID)
}
func (m *mockTripServicer) AddNote(ctx context.Context, p domain.Principal, tripID uuid.UUID, n domain.TripNote) (domain.Trip, error) {
	return m.addNote(ctx, p, tripID, n)
}
func (m *mockTripServicer) UpdateNote(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID, n domain.TripNote) (domain.Trip, error) {
	return m.updateNote(ctx, p, tripID, noteID, n)
}
func (m *mockTripServicer) RemoveNote(ctx context.Context, p domain.Principal, tripID, noteID uuid.UUID) (domain.Trip, error) {
	return m.removeNote(ctx, p, tripID, noteID)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

var testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// stubAuthn plants a fixed principal instead of validating a real token,
// mirroring what the bearer-token middleware does in production.
func stubAuthn(p domain.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithPrincipal(r.Context(), p)))
		})
	}
}

// newHTTPHandler wires a Server with the given mocks into the route tree,
// authenticated as a regular user.
func newHTTPHandler(trips handler.TripServicer) http.Handler {
	srv := handler.NewServer(trips, nil, nil)
	return srv.Routes(stubAuthn(domain.Principal{UserID: testUserID, Role: domain.RoleUser}))
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		UserID:    testUserID,
		Title:     "Summer in Portugal",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
		Budget:    domain.Budget{Currency: "EUR", Total: 3000},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// ---- POST /api/trips -------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		create: func(_ context.Context, p domain.Principal, _ domain.Trip) (domain.Trip, error) {
			assert.Equal(t, testUserID, p.UserID)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"title":     "Summer in Portugal",
		"startDate": "2026-06-01T00:00:00Z",
		"endDate":   "2026-06-15T12:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/trips", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Summer in Portugal", resp["title"])
	assert.Equal(t, float64(15), resp["duration"], "duration is derived, rounding partial days up")
}

func TestCreateTrip_422_Validation(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Principal, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrValidation
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/trips", jsonBody(t, map[string]any{}))
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody[map[string]map[string]string](t, rec)
	assert.Equal(t, "validation_error", resp["error"]["code"])
}

func TestCreateTrip_400_MalformedBody(t *testing.T) {
	svc := &mockTripServicer{}

	req := httptest.NewRequest(http.MethodPost, "/api/trips", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /api/trips --------------------------------------------------------

func TestListTrips_200_Paged(t *testing.T) {
	svc := &mockTripServicer{
		listByUser: func(_ context.Context, _ domain.Principal, page domain.PaginationParams) ([]domain.Trip, int64, error) {
			assert.Equal(t, 2, page.Page)
			assert.Equal(t, 5, page.Limit)
			return []domain.Trip{tripFixture()}, 11, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips?page=2&limit=5", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(11), resp["total"])
	assert.Len(t, resp["data"], 1)
}

// ---- GET /api/trips/{tripID} -----------------------------------------------

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ domain.Principal, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_403_PrivateTrip(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ domain.Principal, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrForbidden
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetTrip_400_BadUUID(t *testing.T) {
	svc := &mockTripServicer{}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- PATCH /api/trips/{tripID} ---------------------------------------------

func TestUpdateTrip_200_TitleOnlyPatch(t *testing.T) {
	fixture := tripFixture()
	fixture.Title = "Renamed"
	svc := &mockTripServicer{
		update: func(_ context.Context, _ domain.Principal, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			require.NotNil(t, patch.Title)
			assert.Equal(t, "Renamed", *patch.Title)
			assert.Nil(t, patch.StartDate, "omitted fields arrive as nil")
			assert.Nil(t, patch.EndDate)
			assert.Nil(t, patch.IsPublic)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"title": "Renamed"})
	req := httptest.NewRequest(http.MethodPatch, "/api/trips/"+fixture.ID.String(), body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Renamed", resp["title"])
}

// ---- DELETE /api/trips/{tripID} --------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ domain.Principal, _ uuid.UUID) error { return nil },
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/trips/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

// ---- PATCH /api/trips/{tripID}/share ---------------------------------------

func TestShareTrip_200(t *testing.T) {
	fixture := tripFixture()
	fixture.IsPublic = true
	svc := &mockTripServicer{
		share: func(_ context.Context, _ domain.Principal, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	req := httptest.NewRequest(http.MethodPatch, "/api/trips/"+fixture.ID.String()+"/share", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, resp["isPublic"])
}

// ---- budget ----------------------------------------------------------------

func TestGetBudget_200(t *testing.T) {
	svc := &mockTripServicer{
		getBudget: func(_ context.Context, _ domain.Principal, _ uuid.UUID) (domain.Budget, error) {
			return domain.Budget{Currency: "EUR", Total: 3000, Spent: 185}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips/"+uuid.NewString()+"/budget", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(185), resp["spent"])
}

func TestUpdateBudget_200(t *testing.T) {
	fixture := tripFixture()
	fixture.Budget.Total = 5000
	svc := &mockTripServicer{
		updateBudget: func(_ context.Context, _ domain.Principal, _ uuid.UUID, patch domain.BudgetPatch) (domain.Trip, error) {
			require.NotNil(t, patch.Total)
			assert.Equal(t, 5000.0, *patch.Total)
			assert.Nil(t, patch.Currency, "omitted fields arrive as nil")
			assert.Nil(t, patch.Categories.Food)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"total": 5000})
	req := httptest.NewRequest(http.MethodPatch, "/api/trips/"+fixture.ID.String()+"/budget", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]any](t, rec)
	assert.Equal(t, float64(5000), resp["total"])
}

// ---- nested items ----------------------------------------------------------

func TestAddAccommodation_201(t *testing.T) {
	fixture := tripFixture()
	tripID := fixture.ID
	visitID := uuid.New()

	svc := &mockTripServicer{
		addAccommodation: func(_ context.Context, _ domain.Principal, gotTrip, gotVisit uuid.UUID, a domain.Accommodation) (domain.Trip, error) {
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, visitID, gotVisit)
			assert.Equal(t, "Alfama Guesthouse", a.Name)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{"name": "Alfama Guesthouse", "price": 450})
	req := httptest.NewRequest(http.MethodPost,
		"/api/trips/"+tripID.String()+"/destinations/"+visitID.String()+"/accommodations", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRemoveNote_404_UnknownNote(t *testing.T) {
	svc := &mockTripServicer{
		removeNote: func(_ context.Context, _ domain.Principal, _, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodDelete,
		"/api/trips/"+uuid.NewString()+"/notes/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
