package domain

import "time"

// ExportRow is a single line in the flat itinerary export: one row per
// nested item (accommodation, activity, or travel leg), with trip and visit
// fields repeated on every row. A visit with no items yields one row with
// empty item fields; a trip with no visits yields a single trip-only row.
type ExportRow struct {
	// Trip fields, repeated on every row.
	TripID        string `json:"tripId"`
	TripTitle     string `json:"tripTitle"`
	TripStartDate string `json:"tripStartDate"` // "2006-01-02"
	TripEndDate   string `json:"tripEndDate"`
	Currency      string `json:"currency"`

	// Visit fields, empty on the trip-only row.
	Location string `json:"location,omitempty"`

	// Item fields, empty when the visit has no items.
	Kind     string     `json:"kind,omitempty"` // accommodation | activity | transportation
	Name     string     `json:"name,omitempty"`
	Price    *float64   `json:"price,omitempty"`
	StartsAt *time.Time `json:"startsAt,omitempty"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}
