package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role distinguishes ordinary users from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a defined role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	PasswordHash  string               `json:"-"`
	Role          Role                 `json:"role"`
	Preferences   Preferences          `json:"preferences"`
	TravelHistory []TravelHistoryEntry `json:"travelHistory"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// TravelStyle is the closed set of travel style preferences.
type TravelStyle string

const (
	StyleAdventure   TravelStyle = "adventure"
	StyleBeach       TravelStyle = "beach"
	StyleCultural    TravelStyle = "cultural"
	StyleEcoFriendly TravelStyle = "eco-friendly"
	StyleFamily      TravelStyle = "family"
	StyleLuxury      TravelStyle = "luxury"
	StyleBudget      TravelStyle = "budget"
)

// Valid reports whether s is a defined travel style.
func (s TravelStyle) Valid() bool {
	switch s {
	case StyleAdventure, StyleBeach, StyleCultural, StyleEcoFriendly,
		StyleFamily, StyleLuxury, StyleBudget:
		return true
	}
	return false
}

// AccommodationType is the closed set of lodging preferences.
type AccommodationType string

const (
	StayHotel     AccommodationType = "hotel"
	StayHostel    AccommodationType = "hostel"
	StayApartment AccommodationType = "apartment"
	StayResort    AccommodationType = "resort"
	StayCamping   AccommodationType = "camping"
	StayVilla     AccommodationType = "villa"
)

// Valid reports whether a is a defined accommodation type.
func (a AccommodationType) Valid() bool {
	switch a {
	case StayHotel, StayHostel, StayApartment, StayResort, StayCamping, StayVilla:
		return true
	}
	return false
}

// Season is the closed set of seasonal preferences.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// Valid reports whether s is a defined season.
func (s Season) Valid() bool {
	switch s {
	case Spring, Summer, Fall, Winter:
		return true
	}
	return false
}

// BudgetRange is the user's per-trip spending band. Defaults 0 to 10000.
type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Preferences captures what kind of traveller the user is.
// Every enum slice is constrained; Activities is free-form.
type Preferences struct {
	TravelStyles        []TravelStyle       `json:"travelStyles"`
	Activities          []string            `json:"activities"`
	AccommodationTypes  []AccommodationType `json:"accommodationTypes"`
	BudgetRange         BudgetRange         `json:"budgetRange"`
	SeasonalPreferences []Season            `json:"seasonalPreferences"`
}

// DefaultPreferences returns the preferences a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		TravelStyles:        []TravelStyle{},
		Activities:          []string{},
		AccommodationTypes:  []AccommodationType{},
		BudgetRange:         BudgetRange{Min: 0, Max: 10000},
		SeasonalPreferences: []Season{},
	}
}

// TravelHistoryEntry records a past visit. Destination is the place name,
// not a catalog ID. Rating runs 1 to 5.
type TravelHistoryEntry struct {
	ID          uuid.UUID  `json:"id"`
	Destination string     `json:"destination"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Rating      int        `json:"rating,omitempty"`
}

// Principal is the authenticated actor behind a request.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin reports whether the principal holds the administrative role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the principal may read or mutate a resource
// owned by ownerID.
func (p Principal) CanAccess(ownerID uuid.UUID) bool {
	return p.IsAdmin() || p.UserID == ownerID
}
