package domain

import (
	"time"

	"github.com/google/uuid"
)

// Destination is a catalog entry describing a place. It has its own
// lifecycle, independent of any trip; itineraries reference places by
// location string, never by catalog ID.
type Destination struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Country           string             `json:"country"`
	Description       string             `json:"description,omitempty"`
	Coordinates       Coordinates        `json:"coordinates"`
	Images            []string           `json:"images"`
	PopularActivities []PopularActivity  `json:"popularActivities"`
	BestTimeToVisit   []VisitWindow      `json:"bestTimeToVisit"`
	CostIndex         int                `json:"costIndex"`   // 1 very cheap .. 10 very expensive
	SafetyIndex       int                `json:"safetyIndex"` // 1 very unsafe .. 10 very safe
	Languages         []string           `json:"languages"`
	Currency          string             `json:"currency,omitempty"`
	TimeZone          string             `json:"timeZone,omitempty"`
	VisaRequirements  VisaRequirement    `json:"visaRequirements"`
	Ratings           DestinationRatings `json:"ratings"`
	TravelTips        []string           `json:"travelTips"`
	AverageCosts      AverageCosts       `json:"averageCosts"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// ActivityCategory is the closed set of catalog activity categories.
type ActivityCategory string

const (
	CategorySightseeing ActivityCategory = "sightseeing"
	CategoryAdventure   ActivityCategory = "adventure"
	CategoryCultural    ActivityCategory = "cultural"
	CategoryFood        ActivityCategory = "food"
	CategoryNightlife   ActivityCategory = "nightlife"
	CategoryShopping    ActivityCategory = "shopping"
	CategoryRelaxation  ActivityCategory = "relaxation"
	CategoryNature      ActivityCategory = "nature"
	CategorySport       ActivityCategory = "sport"
	CategoryFamily      ActivityCategory = "family"
)

// Valid reports whether c is one of the defined categories.
func (c ActivityCategory) Valid() bool {
	switch c {
	case CategorySightseeing, CategoryAdventure, CategoryCultural, CategoryFood,
		CategoryNightlife, CategoryShopping, CategoryRelaxation, CategoryNature,
		CategorySport, CategoryFamily:
		return true
	}
	return false
}

// PopularActivity is a well-known activity at a catalog destination.
// Popularity runs 1 to 10 and defaults to 5.
type PopularActivity struct {
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Category     ActivityCategory `json:"category"`
	AveragePrice float64          `json:"averagePrice,omitempty"`
	Popularity   int              `json:"popularity"`
}

// Month is a calendar month name as it appears in the catalog.
type Month string

const (
	January   Month = "January"
	February  Month = "February"
	March     Month = "March"
	April     Month = "April"
	May       Month = "May"
	June      Month = "June"
	July      Month = "July"
	August    Month = "August"
	September Month = "September"
	October   Month = "October"
	November  Month = "November"
	December  Month = "December"
)

// Valid reports whether m is one of the twelve month names.
func (m Month) Valid() bool {
	switch m {
	case January, February, March, April, May, June,
		July, August, September, October, November, December:
		return true
	}
	return false
}

// TemperatureUnit is Celsius or Fahrenheit.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "C"
	Fahrenheit TemperatureUnit = "F"
)

// Valid reports whether u is a defined temperature unit.
func (u TemperatureUnit) Valid() bool {
	return u == Celsius || u == Fahrenheit
}

// TemperatureRange is the expected min/max temperature for a visit window.
type TemperatureRange struct {
	Min  float64         `json:"min"`
	Max  float64         `json:"max"`
	Unit TemperatureUnit `json:"unit"`
}

// VisitWindow describes what a month at the destination is like.
// Precipitation is in millimetres and defaults to 0.
type VisitWindow struct {
	Month          Month            `json:"month"`
	Reason         string           `json:"reason,omitempty"`
	WeatherSummary string           `json:"weatherSummary,omitempty"`
	Temperature    TemperatureRange `json:"temperature"`
	Precipitation  float64          `json:"precipitation"`
}

// VisaRequirement is the closed set of visa statuses for a destination.
type VisaRequirement string

const (
	VisaNotRequired VisaRequirement = "not_required"
	VisaOnArrival   VisaRequirement = "on_arrival"
	VisaRequired    VisaRequirement = "required"
	VisaElectronic  VisaRequirement = "electronic"
)

// Valid reports whether v is a defined visa requirement.
func (v VisaRequirement) Valid() bool {
	switch v {
	case VisaNotRequired, VisaOnArrival, VisaRequired, VisaElectronic:
		return true
	}
	return false
}

// DestinationRatings holds the six 1 to 5 sub-scores, each defaulting to 4.
type DestinationRatings struct {
	Overall        float64 `json:"overall"`
	Food           float64 `json:"food"`
	Accommodation  float64 `json:"accommodation"`
	Transportation float64 `json:"transportation"`
	Activities     float64 `json:"activities"`
	Safety         float64 `json:"safety"`
}

// MealCosts is the typical price of a meal at three tiers.
type MealCosts struct {
	Budget   float64 `json:"budget,omitempty"`
	MidRange float64 `json:"midRange,omitempty"`
	Luxury   float64 `json:"luxury,omitempty"`
}

// TransportCosts holds per-unit local transport prices.
type TransportCosts struct {
	PublicTransport float64 `json:"publicTransport,omitempty"` // per trip
	Taxi            float64 `json:"taxi,omitempty"`            // per km
	RentalCar       float64 `json:"rentalCar,omitempty"`       // per day
}

// AverageCosts summarizes typical traveller spend at a destination.
// Hotel and hostel are per night.
type AverageCosts struct {
	Hotel          float64        `json:"hotel,omitempty"`
	Hostel         float64        `json:"hostel,omitempty"`
	Meal           MealCosts      `json:"meal"`
	Transportation TransportCosts `json:"transportation"`
}

// ApplyDestinationDefaults fills the catalog defaults on a new destination:
// indexes and popularity at 5, ratings at 4, visa status "required",
// temperature unit Celsius.
func ApplyDestinationDefaults(d *Destination) {
	if d.CostIndex == 0 {
		d.CostIndex = 5
	}
	if d.SafetyIndex == 0 {
		d.SafetyIndex = 5
	}
	if d.VisaRequirements == "" {
		d.VisaRequirements = VisaRequired
	}
	applyRatingDefault(&d.Ratings.Overall)
	applyRatingDefault(&d.Ratings.Food)
	applyRatingDefault(&d.Ratings.Accommodation)
	applyRatingDefault(&d.Ratings.Transportation)
	applyRatingDefault(&d.Ratings.Activities)
	applyRatingDefault(&d.Ratings.Safety)
	for i := range d.PopularActivities {
		if d.PopularActivities[i].Popularity == 0 {
			d.PopularActivities[i].Popularity = 5
		}
	}
	for i := range d.BestTimeToVisit {
		if d.BestTimeToVisit[i].Temperature.Unit == "" {
			d.BestTimeToVisit[i].Temperature.Unit = Celsius
		}
	}
}

func applyRatingDefault(r *float64) {
	if *r == 0 {
		*r = 4
	}
}
