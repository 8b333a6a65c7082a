package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/backend/internal/domain"
	"github.com/tripforge/backend/internal/repo"
	"github.com/tripforge/backend/internal/service"
)

// mockDestinationRepo is a hand-written test double for repo.DestinationRepo.
type mockDestinationRepo struct {
	create       func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID      func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list         func(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error)
	search       func(ctx context.Context, query string, limit int) ([]domain.Destination, error)
	nearby       func(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Destination, error)
	listByRating func(ctx context.Context, limit int) ([]domain.Destination, error)
	update       func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	delete       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	return m.list(ctx, p)
}
func (m *mockDestinationRepo) Search(ctx context.Context, query string, limit int) ([]domain.Destination, error) {
	return m.search(ctx, query, limit)
}
func (m *mockDestinationRepo) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Destination, error) {
	return m.nearby(ctx, lat, lng, radiusKm, limit)
}
func (m *mockDestinationRepo) ListByRating(ctx context.Context, limit int) ([]domain.Destination, error) {
	return m.listByRating(ctx, limit)
}
func (m *mockDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.update(ctx, d)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.DestinationRepo = (*mockDestinationRepo)(nil)

func catalogEntry(name string) domain.Destination {
	return domain.Destination{
		ID:          uuid.New(),
		Name:        name,
		Country:     "Japan",
		Coordinates: domain.Coordinates{Lat: 35.0, Lng: 135.0},
	}
}

func TestDestinationService_Search_EmptyQuery(t *testing.T) {
	svc := service.NewDestinationService(&mockDestinationRepo{}, echoUserRepo())

	_, err := svc.Search(context.Background(), "   ", 10)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Search_ClampsLimit(t *testing.T) {
	r := &mockDestinationRepo{
		search: func(_ context.Context, query string, limit int) ([]domain.Destination, error) {
			assert.Equal(t, "kyoto", query)
			assert.Equal(t, 50, limit, "limit is capped")
			return []domain.Destination{catalogEntry("Kyoto")}, nil
		},
	}
	svc := service.NewDestinationService(r, echoUserRepo())

	got, err := svc.Search(context.Background(), "kyoto", 500)

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDestinationService_Nearby_InvalidCoordinates(t *testing.T) {
	svc := service.NewDestinationService(&mockDestinationRepo{}, echoUserRepo())

	_, err := svc.Nearby(context.Background(), 91, 0, 100, 10)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDestinationService_Nearby_DefaultsRadius(t *testing.T) {
	r := &mockDestinationRepo{
		nearby: func(_ context.Context, _, _, radiusKm float64, _ int) ([]domain.Destination, error) {
			assert.Equal(t, 100.0, radiusKm)
			return []domain.Destination{}, nil
		},
	}
	svc := service.NewDestinationService(r, echoUserRepo())

	_, err := svc.Nearby(context.Background(), 35, 135, 0, 10)

	assert.NoError(t, err)
}

func TestDestinationService_Personalized_SkipsVisited(t *testing.T) {
	kyoto := catalogEntry("Kyoto")
	nara := catalogEntry("Nara")

	users := echoUserRepo()
	users.getByID = func(_ context.Context, id uuid.UUID) (domain.User, error) {
		return domain.User{
			ID: id,
			TravelHistory: []domain.TravelHistoryEntry{
				{ID: uuid.New(), Destination: "kyoto"}, // case-insensitive match
			},
		}, nil
	}
	r := &mockDestinationRepo{
		listByRating: func(_ context.Context, _ int) ([]domain.Destination, error) {
			return []domain.Destination{kyoto, nara}, nil
		},
	}
	svc := service.NewDestinationService(r, users)

	got, err := svc.Personalized(context.Background(), owner(), 10)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Nara", got[0].Name)
}

func TestDestinationService_Create_NonAdmin(t *testing.T) {
	svc := service.NewDestinationService(&mockDestinationRepo{}, echoUserRepo())

	_, err := svc.Create(context.Background(), owner(), catalogEntry("Kyoto"))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDestinationService_Create_AppliesDefaults(t *testing.T) {
	r := &mockDestinationRepo{
		create: func(_ context.Context, d domain.Destination) (domain.Destination, error) { return d, nil },
	}
	svc := service.NewDestinationService(r, echoUserRepo())

	got, err := svc.Create(context.Background(), admin(), catalogEntry("Kyoto"))

	require.NoError(t, err)
	assert.Equal(t, 5, got.CostIndex)
	assert.Equal(t, domain.VisaRequired, got.VisaRequirements)
	assert.Equal(t, 4.0, got.Ratings.Overall)
}

func TestDestinationService_Create_InvalidMonth(t *testing.T) {
	svc := service.NewDestinationService(&mockDestinationRepo{}, echoUserRepo())

	d := catalogEntry("Kyoto")
	d.BestTimeToVisit = []domain.VisitWindow{{Month: "Octember"}}

	_, err := svc.Create(context.Background(), admin(), d)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
