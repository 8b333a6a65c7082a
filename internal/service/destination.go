package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/domain"
	"github.com/tripforge/backend/internal/repo"
)

// DestinationService implements the destination catalog: public discovery
// queries plus admin-only catalog maintenance.
type DestinationService struct {
	repo  repo.DestinationRepo
	users repo.UserRepo
}

// NewDestinationService constructs a DestinationService. The user repo feeds
// the personalized recommendation query.
func NewDestinationService(r repo.DestinationRepo, users repo.UserRepo) *DestinationService {
	return &DestinationService{repo: r, users: users}
}

// Discovery query limits.
const (
	defaultDiscoveryLimit = 10
	maxDiscoveryLimit     = 50
	defaultNearbyRadiusKm = 100
)

// List returns one page of the catalog plus the total count.
func (s *DestinationService) List(ctx context.Context, page domain.PaginationParams) ([]domain.Destination, int64, error) {
	return s.repo.List(ctx, page)
}

// GetByID returns a single catalog entry.
func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return s.repo.GetByID(ctx, id)
}

// Search finds catalog entries matching a free-text query.
func (s *DestinationService) Search(ctx context.Context, query string, limit int) ([]domain.Destination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}
	return s.repo.Search(ctx, query, clampLimit(limit))
}

// Nearby finds catalog entries within radiusKm of a point, nearest first.
func (s *DestinationService) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Destination, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%w: invalid coordinates", domain.ErrValidation)
	}
	if radiusKm <= 0 {
		radiusKm = defaultNearbyRadiusKm
	}
	return s.repo.Nearby(ctx, lat, lng, radiusKm, clampLimit(limit))
}

// Popular returns the highest-rated catalog entries.
func (s *DestinationService) Popular(ctx context.Context, limit int) ([]domain.Destination, error) {
	return s.repo.ListByRating(ctx, clampLimit(limit))
}

// Recommended returns a general recommendation slice of the catalog.
func (s *DestinationService) Recommended(ctx context.Context, limit int) ([]domain.Destination, error) {
	dests, _, err := s.repo.List(ctx, domain.PaginationParams{Page: 1, Limit: clampLimit(limit)})
	return dests, err
}

// Personalized returns recommendations for the principal, skipping places
// already in their travel history.
func (s *DestinationService) Personalized(ctx context.Context, p domain.Principal, limit int) ([]domain.Destination, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool, len(user.TravelHistory))
	for _, entry := range user.TravelHistory {
		visited[strings.ToLower(entry.Destination)] = true
	}

	limit = clampLimit(limit)
	candidates, err := s.repo.ListByRating(ctx, limit+len(visited))
	if err != nil {
		return nil, err
	}

	picks := []domain.Destination{}
	for _, d := range candidates {
		if visited[strings.ToLower(d.Name)] {
			continue
		}
		picks = append(picks, d)
		if len(picks) == limit {
			break
		}
	}
	return picks, nil
}

// Create adds a catalog entry. Admin-only.
func (s *DestinationService) Create(ctx context.Context, p domain.Principal, d domain.Destination) (domain.Destination, error) {
	if !p.IsAdmin() {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", domain.ErrForbidden)
	}
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}
	domain.ApplyDestinationDefaults(&d)
	return s.repo.Create(ctx, d)
}

// Update replaces a catalog entry. Admin-only.
func (s *DestinationService) Update(ctx context.Context, p domain.Principal, id uuid.UUID, d domain.Destination) (domain.Destination, error) {
	if !p.IsAdmin() {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", domain.ErrForbidden)
	}
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}
	d.ID = id
	domain.ApplyDestinationDefaults(&d)
	return s.repo.Update(ctx, d)
}

// Delete removes a catalog entry. Admin-only.
func (s *DestinationService) Delete(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return fmt.Errorf("service.DestinationService.Delete: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

// validateDestination enforces the catalog entry rules.
func validateDestination(d domain.Destination) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if d.Coordinates.Lat < -90 || d.Coordinates.Lat > 90 ||
		d.Coordinates.Lng < -180 || d.Coordinates.Lng > 180 {
		return fmt.Errorf("%w: invalid coordinates", domain.ErrValidation)
	}
	if d.VisaRequirements != "" && !d.VisaRequirements.Valid() {
		return fmt.Errorf("%w: invalid visa requirement %q", domain.ErrValidation, d.VisaRequirements)
	}
	for _, a := range d.PopularActivities {
		if !a.Category.Valid() {
			return fmt.Errorf("%w: invalid activity category %q", domain.ErrValidation, a.Category)
		}
	}
	for _, w := range d.BestTimeToVisit {
		if !w.Month.Valid() {
			return fmt.Errorf("%w: invalid month %q", domain.ErrValidation, w.Month)
		}
		if w.Temperature.Unit != "" && !w.Temperature.Unit.Valid() {
			return fmt.Errorf("%w: invalid temperature unit %q", domain.ErrValidation, w.Temperature.Unit)
		}
	}
	return nil
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultDiscoveryLimit
	}
	if limit > maxDiscoveryLimit {
		return maxDiscoveryLimit
	}
	return limit
}
