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

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a new user. Returns domain.ErrAlreadyExists if the
	// email is already registered.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns domain.ErrNotFound if absent.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// List returns one page of users ordered by creation time plus the
	// total count. Admin-only at the service layer.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error)

	// Update overwrites a user record. Returns domain.ErrNotFound if
	// absent, domain.ErrAlreadyExists if the new email collides.
	Update(ctx context.Context, u domain.User) (domain.User, error)

	// Delete removes a user and, via cascade, all their trips.
	// Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, name, email, password_hash, role, preferences, travel_history, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	prefs, history, err := marshalUserDocs(u)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}

	const q = `
		INSERT INTO users (name, email, password_hash, role, preferences, travel_history)
		VALUES (@name, @email, @password_hash, @role, @preferences, @travel_history)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"name":           u.Name,
		"email":          u.Email,
		"password_hash":  u.PasswordHash,
		"role":           u.Role,
		"preferences":    prefs,
		"travel_history": history,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrAlreadyExists)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.User, int64, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.UserRepo.List: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.List: rows: %w", err)
	}

	var total int64
	row := r.db.QueryRow(ctx, `SELECT count(*) FROM users`)
	if err := row.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.UserRepo.List: count: %w", err)
	}
	return users, total, nil
}

func (r *pgUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	prefs, history, err := marshalUserDocs(u)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}

	const q = `
		UPDATE users
		SET name           = @name,
		    email          = @email,
		    password_hash  = @password_hash,
		    role           = @role,
		    preferences    = @preferences,
		    travel_history = @travel_history,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"password_hash":  u.PasswordHash,
		"role":           u.Role,
		"preferences":    prefs,
		"travel_history": history,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", domain.ErrAlreadyExists)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// marshalUserDocs encodes the preferences and travel history JSONB columns.
func marshalUserDocs(u domain.User) (prefs, history []byte, err error) {
	if u.TravelHistory == nil {
		u.TravelHistory = []domain.TravelHistoryEntry{}
	}
	prefs, err = json.Marshal(u.Preferences)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal preferences: %w", err)
	}
	history, err = json.Marshal(u.TravelHistory)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal travel history: %w", err)
	}
	return prefs, history, nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u       domain.User
		id      pgtype.UUID
		prefs   []byte
		history []byte
	)

	err := s.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&prefs, &history, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	if err := json.Unmarshal(prefs, &u.Preferences); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal preferences: %w", err)
	}
	if err := json.Unmarshal(history, &u.TravelHistory); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal travel history: %w", err)
	}
	if u.TravelHistory == nil {
		u.TravelHistory = []domain.TravelHistoryEntry{}
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
