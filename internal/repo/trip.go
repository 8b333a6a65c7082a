// Package repo contains all database access logic for the trip planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripforge/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// uniqueViolation is the Postgres error code for unique constraint failures.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// A trip row stores the whole itinerary as one JSONB document, so every
// Update is a single-row write: the nested-collection change and the
// recomputed budget are committed together or not at all.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns one page of a user's trips ordered by start date
	// descending, plus the total count for that user.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the trip document and returns the updated record.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and all embedded data.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// tripDoc is the JSONB document stored per trip row. Identity, ownership,
// visibility, and timestamps live in columns; everything else lives here.
type tripDoc struct {
	Title        string                    `json:"title"`
	Description  string                    `json:"description,omitempty"`
	StartDate    time.Time                 `json:"startDate"`
	EndDate      time.Time                 `json:"endDate"`
	Destinations []domain.DestinationVisit `json:"destinations"`
	Budget       domain.Budget             `json:"budget"`
	Notes        []domain.TripNote         `json:"notes"`
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	doc, err := marshalTripDoc(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO trips (user_id, is_public, doc)
		VALUES (@user_id, @is_public, @doc)
		RETURNING id, user_id, is_public, doc, created_at, updated_at`

	args := pgx.NamedArgs{
		"user_id":   trip.UserID,
		"is_public": trip.IsPublic,
		"doc":       doc,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, user_id, is_public, doc, created_at, updated_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns one page of a user's trips, most recent start date first.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT id, user_id, is_public, doc, created_at, updated_at
		FROM trips
		WHERE user_id = @user_id
		ORDER BY doc->>'startDate' DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	var total int64
	countRow := r.db.QueryRow(ctx, `SELECT count(*) FROM trips WHERE user_id = @user_id`,
		pgx.NamedArgs{"user_id": userID})
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: count: %w", err)
	}

	return trips, total, nil
}

// Update overwrites the trip document and visibility flag in one row write.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	doc, err := marshalTripDoc(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	const q = `
		UPDATE trips
		SET is_public  = @is_public,
		    doc        = @doc,
		    updated_at = now()
		WHERE id = @id
		RETURNING id, user_id, is_public, doc, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":        trip.ID,
		"is_public": trip.IsPublic,
		"doc":       doc,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by primary key.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// marshalTripDoc encodes the document portion of a trip as JSONB bytes.
// Nil nested slices are normalized to empty so documents round-trip as [].
func marshalTripDoc(trip domain.Trip) ([]byte, error) {
	if trip.Destinations == nil {
		trip.Destinations = []domain.DestinationVisit{}
	}
	if trip.Notes == nil {
		trip.Notes = []domain.TripNote{}
	}
	doc := tripDoc{
		Title:        trip.Title,
		Description:  trip.Description,
		StartDate:    trip.StartDate.UTC(),
		EndDate:      trip.EndDate.UTC(),
		Destinations: trip.Destinations,
		Budget:       trip.Budget,
		Notes:        trip.Notes,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal doc: %w", err)
	}
	return b, nil
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID conversions and the JSONB document decode.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t      domain.Trip
		id     pgtype.UUID
		userID pgtype.UUID
		raw    []byte
	)

	err := s.Scan(&id, &userID, &t.IsPublic, &raw, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	var doc tripDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Trip{}, fmt.Errorf("unmarshal doc: %w", err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.Title = doc.Title
	t.Description = doc.Description
	t.StartDate = doc.StartDate
	t.EndDate = doc.EndDate
	t.Destinations = doc.Destinations
	t.Budget = doc.Budget
	t.Notes = doc.Notes
	if t.Destinations == nil {
		t.Destinations = []domain.DestinationVisit{}
	}
	if t.Notes == nil {
		t.Notes = []domain.TripNote{}
	}
	return t, nil
}
