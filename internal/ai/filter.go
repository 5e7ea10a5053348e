package ai

import (
	"sort"

	"smartparking/internal/entities"
)

// ApplyFilters returns the spots matching the parsed query's price
// preference and feature criteria. Pure: the input slice is never mutated
// and identical input yields identical output.
func ApplyFilters(spots []entities.ParkingSpot, parsed ParsedQuery) []entities.ParkingSpot {
	filtered := make([]entities.ParkingSpot, 0, len(spots))
	for _, spot := range spots {
		if !matchesPrice(spot, parsed.PricePreference) {
			continue
		}
		if !matchesFeatures(spot, parsed.Features) {
			continue
		}
		filtered = append(filtered, spot)
	}
	return filtered
}

// matchesPrice applies the hourly-rate brackets. Boundary values belong to
// the lower bracket: exactly 3.00 is cheap, exactly 6.00 is moderate.
func matchesPrice(spot entities.ParkingSpot, pref PricePreference) bool {
	hourly := spot.Pricing.Hourly
	switch pref {
	case PriceCheap:
		return hourly <= 3
	case PriceModerate:
		return hourly > 3 && hourly <= 6
	case PriceExpensive:
		return hourly > 6
	default:
		return true
	}
}

// matchesFeatures requires every requested feature to hold. Keys outside
// the known set are ignored rather than silently excluding the spot.
func matchesFeatures(spot entities.ParkingSpot, features []FeatureKey) bool {
	for _, feature := range features {
		holds, known := SpotHasFeature(spot, feature)
		if known && !holds {
			return false
		}
	}
	return true
}

// SpotHasFeature reports whether the spot satisfies a feature criterion and
// whether the key is one the engine knows about.
func SpotHasFeature(spot entities.ParkingSpot, feature FeatureKey) (holds, known bool) {
	switch feature {
	case FeatureSafe, FeatureSecure:
		return spot.SafetyRating.Score >= 4.0, true
	case FeatureOvernight:
		return spot.Access == "public" || spot.Access == "permissive", true
	case FeatureCovered:
		return spot.Features.Covered, true
	case FeatureSecurity:
		return spot.Features.Security, true
	case FeatureEVCharging:
		return spot.Features.EVCharging, true
	case FeatureDisabledAccess:
		return spot.Features.DisabledAccess, true
	case FeatureBikeParking:
		return spot.Features.BikeParking, true
	default:
		return false, false
	}
}

// SortSpots orders spots by the given key, returning a new slice. Price and
// distance sort ascending, availability and safety descending. A missing
// distance counts as zero. An unrecognized key leaves the order unchanged.
func SortSpots(spots []entities.ParkingSpot, sortBy SortKey) []entities.ParkingSpot {
	sorted := make([]entities.ParkingSpot, len(spots))
	copy(sorted, spots)

	switch sortBy {
	case SortPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Pricing.Hourly < sorted[j].Pricing.Hourly
		})
	case SortAvailability:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Availability > sorted[j].Availability
		})
	case SortSafety:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].SafetyRating.Score > sorted[j].SafetyRating.Score
		})
	case SortDistance:
		sort.SliceStable(sorted, func(i, j int) bool {
			return distanceOrZero(sorted[i]) < distanceOrZero(sorted[j])
		})
	}
	return sorted
}

func distanceOrZero(spot entities.ParkingSpot) float64 {
	if spot.Distance == nil {
		return 0
	}
	return *spot.Distance
}
