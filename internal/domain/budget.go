package domain

// BudgetCategories holds the six per-trip cost buckets.
// Accommodation, Transportation, and Activities are derived from the trip's
// nested line items by RecomputeBudget. Food, Shopping, and Other are
// user-entered inputs to the derivation.
type BudgetCategories struct {
	Accommodation  float64 `json:"accommodation"`
	Transportation float64 `json:"transportation"`
	Food           float64 `json:"food"`
	Activities     float64 `json:"activities"`
	Shopping       float64 `json:"shopping"`
	Other          float64 `json:"other"`
}

// Budget is the derived cost aggregate embedded in a trip.
// Total is a user-set target; Spent is fully derived and never trusted from
// client input.
type Budget struct {
	Currency   string           `json:"currency"`
	Total      float64          `json:"total"`
	Spent      float64          `json:"spent"`
	Categories BudgetCategories `json:"categories"`
}

// BudgetCategoriesPatch carries the user-entered category buckets of a
// budget patch. Nil fields keep their stored values.
type BudgetCategoriesPatch struct {
	Food     *float64 `json:"food"`
	Shopping *float64 `json:"shopping"`
	Other    *float64 `json:"other"`
}

// BudgetPatch is a partial update of the user-settable budget fields.
// The derived categories and Spent have no patch fields at all; they are
// recomputed from the trip's line items on every write.
type BudgetPatch struct {
	Currency   *string               `json:"currency"`
	Total      *float64              `json:"total"`
	Categories BudgetCategoriesPatch `json:"categories"`
}

// DefaultCurrency is applied when a trip is created without one.
const DefaultCurrency = "USD"

// RecomputeBudget re-derives the trip's budget from its current nested
// collections, in place. It sums item prices (nil price counts as zero)
// across every destination visit into the accommodation, transportation,
// and activities categories, then recomputes spent as the sum of all six
// categories. Currency, total, and the user-entered categories are left
// untouched.
//
// The function is total: it never fails, and calling it twice without an
// intervening mutation yields identical values. The write path must call it
// immediately before every persisted create or update so stored figures are
// never observed stale.
func RecomputeBudget(t *Trip) {
	var accommodation, transportation, activities float64

	for _, visit := range t.Destinations {
		for _, a := range visit.Accommodations {
			accommodation += priceOrZero(a.Price)
		}
		for _, tr := range visit.Transportation {
			transportation += priceOrZero(tr.Price)
		}
		for _, act := range visit.Activities {
			activities += priceOrZero(act.Price)
		}
	}

	t.Budget.Categories.Accommodation = accommodation
	t.Budget.Categories.Transportation = transportation
	t.Budget.Categories.Activities = activities

	t.Budget.Spent = accommodation + transportation + activities +
		t.Budget.Categories.Food +
		t.Budget.Categories.Shopping +
		t.Budget.Categories.Other
}

// priceOrZero treats absent and non-finite prices as zero so the derivation
// can never fail or poison the totals.
func priceOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	v := *p
	if v != v || v > maxPrice || v < -maxPrice { // NaN or infinity guard
		return 0
	}
	return v
}

// maxPrice bounds a single line item; anything beyond it is treated as
// malformed input rather than money.
const maxPrice = 1e15
