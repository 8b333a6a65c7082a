package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tripforge/backend/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func tripWithItems() domain.Trip {
	return domain.Trip{
		Budget: domain.Budget{Currency: "USD", Total: 1000},
		Destinations: []domain.DestinationVisit{
			{
				ID:       uuid.New(),
				Location: "Lisbon",
				Accommodations: []domain.Accommodation{
					{ID: uuid.New(), Name: "Guesthouse", Price: ptr(100)},
				},
				Transportation: []domain.Transportation{
					{ID: uuid.New(), Mode: domain.TransportTrain, Price: ptr(50)},
				},
				Activities: []domain.Activity{
					{ID: uuid.New(), Name: "Tour", Price: ptr(20)},
				},
			},
		},
	}
}

func TestRecomputeBudget_SumsDerivedCategories(t *testing.T) {
	trip := tripWithItems()
	trip.Budget.Categories.Food = 10
	trip.Budget.Categories.Shopping = 5

	domain.RecomputeBudget(&trip)

	assert.Equal(t, 100.0, trip.Budget.Categories.Accommodation)
	assert.Equal(t, 50.0, trip.Budget.Categories.Transportation)
	assert.Equal(t, 20.0, trip.Budget.Categories.Activities)
	assert.Equal(t, 185.0, trip.Budget.Spent, "spent is the sum of all six categories")
	assert.Equal(t, 1000.0, trip.Budget.Total, "total is user-set and untouched")
	assert.Equal(t, "USD", trip.Budget.Currency)
}

func TestRecomputeBudget_Idempotent(t *testing.T) {
	trip := tripWithItems()

	domain.RecomputeBudget(&trip)
	first := trip.Budget
	domain.RecomputeBudget(&trip)

	assert.Equal(t, first, trip.Budget)
}

func TestRecomputeBudget_NilPriceCountsAsZero(t *testing.T) {
	trip := tripWithItems()
	trip.Destinations[0].Accommodations[0].Price = nil

	domain.RecomputeBudget(&trip)

	assert.Equal(t, 0.0, trip.Budget.Categories.Accommodation)
	assert.Equal(t, 70.0, trip.Budget.Spent)
}

func TestRecomputeBudget_NonFinitePriceIgnored(t *testing.T) {
	trip := tripWithItems()
	trip.Destinations[0].Activities[0].Price = ptr(math.Inf(1))

	domain.RecomputeBudget(&trip)

	assert.Equal(t, 0.0, trip.Budget.Categories.Activities)
	assert.False(t, math.IsNaN(trip.Budget.Spent))
	assert.False(t, math.IsInf(trip.Budget.Spent, 0))
}

func TestRecomputeBudget_EmptyTrip(t *testing.T) {
	trip := domain.Trip{}

	domain.RecomputeBudget(&trip)

	assert.Equal(t, 0.0, trip.Budget.Spent)
}

func TestTripDuration_RoundsPartialDaysUp(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"whole days", start.AddDate(0, 0, 14), 14},
		{"partial day rounds up", start.Add(14*24*time.Hour + time.Hour), 15},
		{"same instant", start, 0},
		{"under one day", start.Add(6 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trip := domain.Trip{StartDate: start, EndDate: tt.end}
			assert.Equal(t, tt.want, trip.Duration())
		})
	}
}
