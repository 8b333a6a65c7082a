package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripforge/backend/internal/domain"
)

// DestinationRepo defines the persistence operations for catalog destinations.
type DestinationRepo interface {
	// Create inserts a new destination. Returns domain.ErrAlreadyExists if a
	// destination with the same name exists.
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// GetByID retrieves a destination by primary key.
	// Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// List returns one page of destinations in catalog order (name ascending)
	// plus the total count.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error)

	// Search returns destinations whose name, description, or country
	// matches the query, name order.
	Search(ctx context.Context, query string, limit int) ([]domain.Destination, error)

	// Nearby returns destinations within radiusKm of the given point,
	// nearest first.
	Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Destination, error)

	// ListByRating returns destinations ordered by overall rating descending.
	ListByRating(ctx context.Context, limit int) ([]domain.Destination, error)

	// Update overwrites a destination. Returns domain.ErrNotFound if absent,
	// domain.ErrAlreadyExists if the new name collides.
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// Delete removes a destination. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// destinationDoc is the JSONB detail document stored per catalog row.
// Name, country, description, and coordinates are columns so they can be
// indexed for search; everything else lives here.
type destinationDoc struct {
	Images            []string                  `json:"images"`
	PopularActivities []domain.PopularActivity  `json:"popularActivities"`
	BestTimeToVisit   []domain.VisitWindow      `json:"bestTimeToVisit"`
	CostIndex         int                       `json:"costIndex"`
	SafetyIndex       int                       `json:"safetyIndex"`
	Languages         []string                  `json:"languages"`
	Currency          string                    `json:"currency,omitempty"`
	TimeZone          string                    `json:"timeZone,omitempty"`
	VisaRequirements  domain.VisaRequirement    `json:"visaRequirements"`
	Ratings           domain.DestinationRatings `json:"ratings"`
	TravelTips        []string                  `json:"travelTips"`
	AverageCosts      domain.AverageCosts       `json:"averageCosts"`
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

const destinationColumns = `id, name, country, description, lat, lng, doc, created_at, updated_at`

func (r *pgDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	doc, err := marshalDestinationDoc(d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO destinations (name, country, description, lat, lng, doc)
		VALUES (@name, @country, @description, @lat, @lng, @doc)
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"name":        d.Name,
		"country":     d.Country,
		"description": d.Description,
		"lat":         d.Coordinates.Lat,
		"lng":         d.Coordinates.Lng,
		"doc":         doc,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", domain.ErrAlreadyExists)
		}
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		ORDER BY name
		LIMIT @limit OFFSET @offset`

	dests, err := r.queryDestinations(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}

	var total int64
	row := r.db.QueryRow(ctx, `SELECT count(*) FROM destinations`)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.List: count: %w", err)
	}
	return dests, total, nil
}

// Search matches the query case-insensitively against name, description,
// and country, the same fields the catalog's text index covers.
func (r *pgDestinationRepo) Search(ctx context.Context, query string, limit int) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE name ILIKE '%' || @query || '%'
		   OR description ILIKE '%' || @query || '%'
		   OR country ILIKE '%' || @query || '%'
		ORDER BY name
		LIMIT @limit`

	dests, err := r.queryDestinations(ctx, q, pgx.NamedArgs{"query": query, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.Search: %w", err)
	}
	return dests, nil
}

// Nearby uses the haversine great-circle distance, computed in SQL over the
// lat/lng columns. 6371 is the Earth radius in kilometres.
func (r *pgDestinationRepo) Nearby(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM (
			SELECT *,
			       6371 * 2 * asin(sqrt(
			           pow(sin(radians(lat - @lat) / 2), 2) +
			           cos(radians(@lat)) * cos(radians(lat)) *
			           pow(sin(radians(lng - @lng) / 2), 2)
			       )) AS distance_km
			FROM destinations
		) d
		WHERE distance_km <= @radius_km
		ORDER BY distance_km
		LIMIT @limit`

	dests, err := r.queryDestinations(ctx, q, pgx.NamedArgs{
		"lat":       lat,
		"lng":       lng,
		"radius_km": radiusKm,
		"limit":     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.Nearby: %w", err)
	}
	return dests, nil
}

// ListByRating orders by the overall rating stored in the detail document.
func (r *pgDestinationRepo) ListByRating(ctx context.Context, limit int) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		ORDER BY (doc -> 'ratings' ->> 'overall')::numeric DESC NULLS LAST, name
		LIMIT @limit`

	dests, err := r.queryDestinations(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.DestinationRepo.ListByRating: %w", err)
	}
	return dests, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	doc, err := marshalDestinationDoc(d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}

	const q = `
		UPDATE destinations
		SET name        = @name,
		    country     = @country,
		    description = @description,
		    lat         = @lat,
		    lng         = @lng,
		    doc         = @doc,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":          d.ID,
		"name":        d.Name,
		"country":     d.Country,
		"description": d.Description,
		"lat":         d.Coordinates.Lat,
		"lng":         d.Coordinates.Lng,
		"doc":         doc,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", domain.ErrAlreadyExists)
		}
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// queryDestinations runs a multi-row destination query and scans all rows.
func (r *pgDestinationRepo) queryDestinations(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Destination, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dests := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return dests, nil
}

// marshalDestinationDoc encodes the detail portion of a destination.
// Nil slices are normalized to empty so documents round-trip as [].
func marshalDestinationDoc(d domain.Destination) ([]byte, error) {
	doc := destinationDoc{
		Images:            d.Images,
		PopularActivities: d.PopularActivities,
		BestTimeToVisit:   d.BestTimeToVisit,
		CostIndex:         d.CostIndex,
		SafetyIndex:       d.SafetyIndex,
		Languages:         d.Languages,
		Currency:          d.Currency,
		TimeZone:          d.TimeZone,
		VisaRequirements:  d.VisaRequirements,
		Ratings:           d.Ratings,
		TravelTips:        d.TravelTips,
		AverageCosts:      d.AverageCosts,
	}
	if doc.Images == nil {
		doc.Images = []string{}
	}
	if doc.PopularActivities == nil {
		doc.PopularActivities = []domain.PopularActivity{}
	}
	if doc.BestTimeToVisit == nil {
		doc.BestTimeToVisit = []domain.VisitWindow{}
	}
	if doc.Languages == nil {
		doc.Languages = []string{}
	}
	if doc.TravelTips == nil {
		doc.TravelTips = []string{}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal doc: %w", err)
	}
	return b, nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d   domain.Destination
		id  pgtype.UUID
		raw []byte
	)

	err := s.Scan(&id, &d.Name, &d.Country, &d.Description,
		&d.Coordinates.Lat, &d.Coordinates.Lng, &raw, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	var doc destinationDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Destination{}, fmt.Errorf("unmarshal doc: %w", err)
	}

	d.ID = uuid.UUID(id.Bytes)
	d.Images = doc.Images
	d.PopularActivities = doc.PopularActivities
	d.BestTimeToVisit = doc.BestTimeToVisit
	d.CostIndex = doc.CostIndex
	d.SafetyIndex = doc.SafetyIndex
	d.Languages = doc.Languages
	d.Currency = doc.Currency
	d.TimeZone = doc.TimeZone
	d.VisaRequirements = doc.VisaRequirements
	d.Ratings = doc.Ratings
	d.TravelTips = doc.TravelTips
	d.AverageCosts = doc.AverageCosts
	return d, nil
}
