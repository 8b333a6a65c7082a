// Package domain contains the core data types for the trip planner API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the root itinerary aggregate, owned by exactly one user.
// Destination visits, their nested items, and notes share the trip's
// lifecycle; they are created, mutated, and deleted only through it.
type Trip struct {
	ID           uuid.UUID          `json:"id"`
	UserID       uuid.UUID          `json:"user"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	StartDate    time.Time          `json:"startDate"`
	EndDate      time.Time          `json:"endDate"`
	Destinations []DestinationVisit `json:"destinations"`
	Budget       Budget             `json:"budget"`
	Notes        []TripNote         `json:"notes"`
	IsPublic     bool               `json:"isPublic"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// TripPatch is a partial update of a trip's top-level fields. Nil fields
// keep their stored values. Nested collections and the budget are managed
// through their own operations and are never touched by a patch.
type TripPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsPublic    *bool      `json:"isPublic"`
}

// Duration returns the trip length in whole days, rounding partial days up.
// Derived on read; never persisted.
func (t Trip) Duration() int {
	d := t.EndDate.Sub(t.StartDate)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// DestinationVisit is a single stop on the itinerary. It is embedded in its
// trip and addressed by a stable ID, not by slice index. Distinct from the
// standalone catalog Destination entity.
type DestinationVisit struct {
	ID             uuid.UUID        `json:"id"`
	Location       string           `json:"location"`
	Coordinates    Coordinates      `json:"coordinates"`
	StartDate      *time.Time       `json:"startDate,omitempty"`
	EndDate        *time.Time       `json:"endDate,omitempty"`
	Accommodations []Accommodation  `json:"accommodations"`
	Activities     []Activity       `json:"activities"`
	Transportation []Transportation `json:"transportation"`
}

// Coordinates is a lat/lng pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Accommodation is a lodging line item within a destination visit.
// Price is nil when the client did not supply one; the budget derivation
// treats nil as zero.
type Accommodation struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address,omitempty"`
	Price      *float64   `json:"price,omitempty"`
	BookingURL string     `json:"bookingUrl,omitempty"`
	CheckIn    *time.Time `json:"checkIn,omitempty"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
}

// Activity is a bookable activity within a destination visit.
// Duration is in minutes.
type Activity struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Date        *time.Time  `json:"date,omitempty"`
	Duration    int         `json:"duration,omitempty"`
	Price       *float64    `json:"price,omitempty"`
	Location    string      `json:"location,omitempty"`
	Coordinates Coordinates `json:"coordinates"`
	BookingURL  string      `json:"bookingUrl,omitempty"`
}

// TransportMode is the closed set of transportation types.
type TransportMode string

const (
	TransportFlight TransportMode = "flight"
	TransportTrain  TransportMode = "train"
	TransportBus    TransportMode = "bus"
	TransportCar    TransportMode = "car"
	TransportFerry  TransportMode = "ferry"
	TransportOther  TransportMode = "other"
)

// Valid reports whether m is one of the defined transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case TransportFlight, TransportTrain, TransportBus, TransportCar, TransportFerry, TransportOther:
		return true
	}
	return false
}

// Transportation is a travel leg within a destination visit.
type Transportation struct {
	ID                uuid.UUID     `json:"id"`
	Mode              TransportMode `json:"type"`
	DepartureTime     *time.Time    `json:"departureTime,omitempty"`
	ArrivalTime       *time.Time    `json:"arrivalTime,omitempty"`
	DepartureLocation string        `json:"departureLocation,omitempty"`
	ArrivalLocation   string        `json:"arrivalLocation,omitempty"`
	Provider          string        `json:"provider,omitempty"`
	Price             *float64      `json:"price,omitempty"`
	BookingReference  string        `json:"bookingReference,omitempty"`
	BookingURL        string        `json:"bookingUrl,omitempty"`
}

// TripNote is a free-form note attached to a trip.
// Date defaults to the time the note was added.
type TripNote struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
	Date    time.Time `json:"date"`
}
