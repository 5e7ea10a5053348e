package service

import (
	"context"

	"smartparking/internal/ai"
	"smartparking/internal/entities"
	"smartparking/internal/geoapify"
)

// ParkingService wraps the places provider and the manual filter panel.
type ParkingService struct {
	Places *geoapify.Client
}

func NewParkingService(places *geoapify.Client) *ParkingService {
	return &ParkingService{Places: places}
}

func (s *ParkingService) SearchByCoordinates(ctx context.Context, lat, lon float64, radius, limit int) []entities.ParkingSpot {
	return s.Places.SearchParking(ctx, lat, lon, radius, limit)
}

func (s *ParkingService) SearchByBbox(ctx context.Context, bbox [4]float64, limit int) []entities.ParkingSpot {
	return s.Places.SearchParkingByBbox(ctx, bbox, limit)
}

func (s *ParkingService) SearchByAddress(ctx context.Context, address string, limit int) (*entities.Coordinates, []entities.ParkingSpot) {
	return s.Places.SearchByAddress(ctx, address, limit)
}

// Filter applies the manual filter-panel criteria to a result set the
// client already holds. Like the assistant's engine it never mutates its
// input.
func (s *ParkingService) Filter(results []entities.ParkingSpot, filters entities.SpotFilters) []entities.ParkingSpot {
	filtered := make([]entities.ParkingSpot, 0, len(results))
	for _, spot := range results {
		if filters.PriceMax > 0 && spot.Pricing.Hourly > filters.PriceMax {
			continue
		}
		if filters.MinAvailability > 0 && spot.Availability < filters.MinAvailability {
			continue
		}
		if filters.Access != "" && spot.Access != filters.Access {
			continue
		}
		if !hasAllFeatures(spot, filters.Features) {
			continue
		}
		filtered = append(filtered, spot)
	}

	if filters.SortBy != "" {
		filtered = ai.SortSpots(filtered, ai.SortKey(filters.SortBy))
	}
	return filtered
}

func hasAllFeatures(spot entities.ParkingSpot, features []string) bool {
	for _, feature := range features {
		holds, known := ai.SpotHasFeature(spot, ai.FeatureKey(feature))
		if known && !holds {
			return false
		}
	}
	return true
}
