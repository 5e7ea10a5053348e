package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartparking/internal/entities"
)

func spotWithPrice(id string, hourly float64) entities.ParkingSpot {
	return entities.ParkingSpot{ID: id, Pricing: entities.Pricing{Hourly: hourly, Currency: "USD"}}
}

func spotIDs(spots []entities.ParkingSpot) []string {
	ids := make([]string, len(spots))
	for i, s := range spots {
		ids[i] = s.ID
	}
	return ids
}

func TestApplyFiltersPriceBrackets(t *testing.T) {
	spots := []entities.ParkingSpot{
		spotWithPrice("a", 2.00),
		spotWithPrice("b", 3.00),
		spotWithPrice("c", 4.00),
		spotWithPrice("d", 6.00),
		spotWithPrice("e", 6.50),
	}

	cheap := ApplyFilters(spots, ParsedQuery{PricePreference: PriceCheap})
	assert.Equal(t, []string{"a", "b"}, spotIDs(cheap), "3.00 exactly is cheap")

	moderate := ApplyFilters(spots, ParsedQuery{PricePreference: PriceModerate})
	assert.Equal(t, []string{"c", "d"}, spotIDs(moderate), "6.00 exactly is moderate")

	expensive := ApplyFilters(spots, ParsedQuery{PricePreference: PriceExpensive})
	assert.Equal(t, []string{"e"}, spotIDs(expensive))

	any := ApplyFilters(spots, ParsedQuery{PricePreference: PriceAny})
	assert.Len(t, any, 5)
}

func TestApplyFiltersFeaturesAreConjunctive(t *testing.T) {
	spots := []entities.ParkingSpot{
		{ID: "both", Features: entities.SpotFeatures{Covered: true, EVCharging: true}},
		{ID: "covered-only", Features: entities.SpotFeatures{Covered: true}},
		{ID: "neither"},
	}

	got := ApplyFilters(spots, ParsedQuery{Features: []FeatureKey{FeatureCovered, FeatureEVCharging}})
	assert.Equal(t, []string{"both"}, spotIDs(got))
}

func TestApplyFiltersUnknownFeatureIgnored(t *testing.T) {
	spots := []entities.ParkingSpot{{ID: "a"}, {ID: "b"}}

	got := ApplyFilters(spots, ParsedQuery{Features: []FeatureKey{"helipad"}})
	assert.Len(t, got, 2)
}

func TestApplyFiltersSafetyAndOvernight(t *testing.T) {
	spots := []entities.ParkingSpot{
		{ID: "safe-public", Access: "public", SafetyRating: entities.SafetyRating{Score: 4.0}},
		{ID: "unsafe-private", Access: "private", SafetyRating: entities.SafetyRating{Score: 3.9}},
		{ID: "safe-permissive", Access: "permissive", SafetyRating: entities.SafetyRating{Score: 4.5}},
	}

	safe := ApplyFilters(spots, ParsedQuery{Features: []FeatureKey{FeatureSafe}})
	assert.Equal(t, []string{"safe-public", "safe-permissive"}, spotIDs(safe), "4.0 exactly counts as safe")

	overnight := ApplyFilters(spots, ParsedQuery{Features: []FeatureKey{FeatureOvernight}})
	assert.Equal(t, []string{"safe-public", "safe-permissive"}, spotIDs(overnight))
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	spots := []entities.ParkingSpot{
		spotWithPrice("a", 8.00),
		spotWithPrice("b", 1.00),
	}

	first := ApplyFilters(spots, ParsedQuery{PricePreference: PriceCheap})
	second := ApplyFilters(spots, ParsedQuery{PricePreference: PriceCheap})

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b"}, spotIDs(spots))
}

func TestSortSpotsReturnsNewSlice(t *testing.T) {
	spots := []entities.ParkingSpot{
		spotWithPrice("expensive", 9.00),
		spotWithPrice("cheap", 1.00),
	}

	sorted := SortSpots(spots, SortPrice)

	assert.Equal(t, []string{"cheap", "expensive"}, spotIDs(sorted))
	assert.Equal(t, []string{"expensive", "cheap"}, spotIDs(spots), "input order untouched")
}

func TestSortSpotsDirections(t *testing.T) {
	d1, d2 := 200.0, 50.0
	spots := []entities.ParkingSpot{
		{ID: "a", Availability: 20, SafetyRating: entities.SafetyRating{Score: 4.8}, Distance: &d1},
		{ID: "b", Availability: 90, SafetyRating: entities.SafetyRating{Score: 3.2}, Distance: &d2},
		{ID: "c", Availability: 55, SafetyRating: entities.SafetyRating{Score: 4.1}},
	}

	assert.Equal(t, []string{"b", "c", "a"}, spotIDs(SortSpots(spots, SortAvailability)))
	assert.Equal(t, []string{"a", "c", "b"}, spotIDs(SortSpots(spots, SortSafety)))
	// missing distance sorts as zero
	assert.Equal(t, []string{"c", "b", "a"}, spotIDs(SortSpots(spots, SortDistance)))
}

func TestSortSpotsUnknownKeyLeavesOrder(t *testing.T) {
	spots := []entities.ParkingSpot{spotWithPrice("x", 5), spotWithPrice("y", 1)}

	assert.Equal(t, []string{"x", "y"}, spotIDs(SortSpots(spots, SortKey("rating"))))
}
