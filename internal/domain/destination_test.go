package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tripforge/backend/internal/domain"
)

func TestApplyDestinationDefaults(t *testing.T) {
	d := domain.Destination{
		Name:    "Kyoto",
		Country: "Japan",
		PopularActivities: []domain.PopularActivity{
			{Name: "Temple walk", Category: domain.CategorySightseeing},
		},
		BestTimeToVisit: []domain.VisitWindow{
			{Month: domain.April},
		},
	}

	domain.ApplyDestinationDefaults(&d)

	assert.Equal(t, 5, d.CostIndex)
	assert.Equal(t, 5, d.SafetyIndex)
	assert.Equal(t, domain.VisaRequired, d.VisaRequirements)
	assert.Equal(t, 4.0, d.Ratings.Overall)
	assert.Equal(t, 4.0, d.Ratings.Safety)
	assert.Equal(t, 5, d.PopularActivities[0].Popularity)
	assert.Equal(t, domain.Celsius, d.BestTimeToVisit[0].Temperature.Unit)
}

func TestApplyDestinationDefaults_KeepsExplicitValues(t *testing.T) {
	d := domain.Destination{
		Name:             "Zurich",
		Country:          "Switzerland",
		CostIndex:        9,
		VisaRequirements: domain.VisaNotRequired,
		Ratings:          domain.DestinationRatings{Overall: 4.7},
	}

	domain.ApplyDestinationDefaults(&d)

	assert.Equal(t, 9, d.CostIndex)
	assert.Equal(t, domain.VisaNotRequired, d.VisaRequirements)
	assert.Equal(t, 4.7, d.Ratings.Overall)
	assert.Equal(t, 4.0, d.Ratings.Food, "unset sub-scores still default")
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, domain.TransportFerry.Valid())
	assert.False(t, domain.TransportMode("teleport").Valid())

	assert.True(t, domain.CategoryNightlife.Valid())
	assert.False(t, domain.ActivityCategory("loitering").Valid())

	assert.True(t, domain.September.Valid())
	assert.False(t, domain.Month("Octember").Valid())

	assert.True(t, domain.StyleEcoFriendly.Valid())
	assert.False(t, domain.TravelStyle("extreme").Valid())
}
