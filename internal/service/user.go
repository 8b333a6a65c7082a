package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/tripforge/backend/internal/auth"
	"github.com/tripforge/backend/internal/domain"
	"github.com/tripforge/backend/internal/repo"
)

// TokenIssuer mints access tokens for authenticated users.
// Implemented by auth.JWTManager.
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, role domain.Role) (string, error)
}

// UserService implements account management: signup, login, profile and
// preference updates, travel history, and the admin account surface.
type UserService struct {
	repo   repo.UserRepo
	tokens TokenIssuer
}

// NewUserService constructs a UserService.
func NewUserService(r repo.UserRepo, tokens TokenIssuer) *UserService {
	return &UserService{repo: r, tokens: tokens}
}

// minPasswordLength matches the account signup rule.
const minPasswordLength = 8

// Signup registers a new account and returns it with a fresh access token.
// New accounts always get the user role and default preferences; neither can
// be set at signup.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return domain.User{}, "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validateEmail(email); err != nil {
		return domain.User{}, "", err
	}
	if len(password) < minPasswordLength {
		return domain.User{}, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Signup: %w", err)
	}

	user, err := s.repo.Create(ctx, domain.User{
		Name:          name,
		Email:         email,
		PasswordHash:  hash,
		Role:          domain.RoleUser,
		Preferences:   domain.DefaultPreferences(),
		TravelHistory: []domain.TravelHistoryEntry{},
	})
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Signup: %w", err)
	}
	return user, token, nil
}

// Login authenticates by email and password and returns the account with a
// fresh access token. An unknown email and a wrong password are reported
// identically as domain.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.UserService.Login: %w", err)
	}
	return user, token, nil
}

// Me returns the principal's own account.
func (s *UserService) Me(ctx context.Context, p domain.Principal) (domain.User, error) {
	return s.repo.GetByID(ctx, p.UserID)
}

// UpdateProfile changes the principal's name and email.
func (s *UserService) UpdateProfile(ctx context.Context, p domain.Principal, name, email string) (domain.User, error) {
	user, err := s.repo.GetByID(ctx, p.UserID)
	if err != nil {
		return domain.User{}, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	if email != "" {
		email = normalizeEmail(email)
		if err := validateEmail(email); err != nil {
			return domain.User{}, err
		}
		user.Email = email
	}

	return s.repo.Update(ctx, user)
}

// UpdatePassword changes the principal's password after verifying the
// current one.
func (s *UserService) UpdatePassword(ctx context.Context, p domain.Principal, current, next string) error {
	user, err := s.repo.GetByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(current, user.PasswordHash) {
		return fmt.Errorf("service.UserService.UpdatePassword: %w", domain.ErrUnauthorized)
	}
	if len(next) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("service.UserService.UpdatePassword: %w", err)
	}
	user.PasswordHash = hash

	_, err = s.repo.Update(ctx, user)
	return err
}

// DeleteAccount removes the principal's own account and, via cascade, all
// their trips.
func (s *UserService) DeleteAccount(ctx context.Context, p domain.Principal) error {
	return s.repo.Delete(ctx, p.UserID)
}

// GetPreferences returns the principal's traveller preferences.
func (s *UserService) GetPreferences(ctx context.Context, p domain.Principal) (domain.Preferences, error) {
	user, err := s.repo.GetByID(ctx, p.UserID)
	if err != nil {
		return domain.Preferences{}, err
	}
	return user.Preferences, nil
}

// UpdatePreferences replaces the principal's traveller preferences after
// validating every enum value.
func (s *UserService) UpdatePreferences(ctx context.Context, p domain.Principal, prefs domain.Preferences) (domain.Preferences, error) {
	if err := validatePreferences(prefs); err != nil {
		return domain.Preferences{}, err
	}

	user, err := s.repo.GetByID(ctx, p.UserID)
	if err != nil {
		return domain.Preferences{}, err
	}
	user.Preferences = prefs

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.Preferences{}, err
	}
	return updated.Preferences, nil
}

// AddTravelHistory records a past visit on the principal's account.
func (s *UserService) AddTravelHistory(ctx context.Context, p domain.Principal, entry domain.TravelHistoryEntry) (domain.User, error) {
	if strings.TrimSpace(entry.Destination) == "" {
		return domain.User{}, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if entry.Rating != 0 && (entry.Rating < 1 || entry.Rating > 5) {
		return domain.User{}, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}

	user, err := s.repo.GetByID(ctx, p.UserID)
	if err != nil {
		return domain.User{}, err
	}
	entry.ID = uuid.New()
	user.TravelHistory = append(user.TravelHistory, entry)

	return s.repo.Update(ctx, user)
}

// RemoveTravelHistory deletes a past-visit entry by ID.
func (s *UserService) RemoveTravelHistory(ctx context.Context, p domain.Principal, entryID uuid.UUID) (domain.User, error) {
	user, err := s.repo.GetByID(ctx, p.UserID)
	if err != nil {
		return domain.User{}, err
	}

	found := false
	for i := range user.TravelHistory {
		if user.TravelHistory[i].ID == entryID {
			user.TravelHistory = append(user.TravelHistory[:i], user.TravelHistory[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return domain.User{}, fmt.Errorf("service.UserService.RemoveTravelHistory: %w", domain.ErrNotFound)
	}

	return s.repo.Update(ctx, user)
}

// ListUsers returns one page of all accounts. Admin-only.
func (s *UserService) ListUsers(ctx context.Context, p domain.Principal, page domain.PaginationParams) ([]domain.User, int64, error) {
	if !p.IsAdmin() {
		return nil, 0, fmt.Errorf("service.UserService.ListUsers: %w", domain.ErrForbidden)
	}
	return s.repo.List(ctx, page)
}

// GetUser returns any account by ID. Admin-only.
func (s *UserService) GetUser(ctx context.Context, p domain.Principal, id uuid.UUID) (domain.User, error) {
	if !p.IsAdmin() {
		return domain.User{}, fmt.Errorf("service.UserService.GetUser: %w", domain.ErrForbidden)
	}
	return s.repo.GetByID(ctx, id)
}

// SetUserRole changes an account's role. Admin-only.
func (s *UserService) SetUserRole(ctx context.Context, p domain.Principal, id uuid.UUID, role domain.Role) (domain.User, error) {
	if !p.IsAdmin() {
		return domain.User{}, fmt.Errorf("service.UserService.SetUserRole: %w", domain.ErrForbidden)
	}
	if !role.Valid() {
		return domain.User{}, fmt.Errorf("%w: invalid role %q", domain.ErrValidation, role)
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = role
	return s.repo.Update(ctx, user)
}

// DeleteUser removes any account by ID. Admin-only.
func (s *UserService) DeleteUser(ctx context.Context, p domain.Principal, id uuid.UUID) error {
	if !p.IsAdmin() {
		return fmt.Errorf("service.UserService.DeleteUser: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	return nil
}

func validatePreferences(p domain.Preferences) error {
	for _, s := range p.TravelStyles {
		if !s.Valid() {
			return fmt.Errorf("%w: invalid travel style %q", domain.ErrValidation, s)
		}
	}
	for _, a := range p.AccommodationTypes {
		if !a.Valid() {
			return fmt.Errorf("%w: invalid accommodation type %q", domain.ErrValidation, a)
		}
	}
	for _, se := range p.SeasonalPreferences {
		if !se.Valid() {
			return fmt.Errorf("%w: invalid seasonal preference %q", domain.ErrValidation, se)
		}
	}
	if p.BudgetRange.Min < 0 || p.BudgetRange.Max < p.BudgetRange.Min {
		return fmt.Errorf("%w: invalid budget range", domain.ErrValidation)
	}
	return nil
}
