package geoapify

import (
	"fmt"
	"math"
	"math/rand"

	"smartparking/internal/entities"
)

// formatSpots maps provider features to ParkingSpots, filling the gaps the
// places API leaves: pricing, live availability and safety ratings are not
// part of the feed, so plausible values are generated the way the mobile
// app expects them.
func formatSpots(features []placeFeature) []entities.ParkingSpot {
	spots := make([]entities.ParkingSpot, 0, len(features))
	for i, feature := range features {
		props := feature.Properties

		parking := parkingProperties{}
		if props.Parking != nil {
			parking = *props.Parking
		}

		id := props.PlaceID
		if id == "" {
			id = fmt.Sprintf("parking_%d", i)
		}
		name := props.Name
		if name == "" {
			name = "Parking Area"
		}
		address := props.Formatted
		if address == "" {
			address = props.AddrLine1
		}
		if address == "" {
			address = "Address not available"
		}

		lat := props.Lat
		lon := props.Lon
		if lat == 0 && lon == 0 && len(feature.Geometry.Coordinates) >= 2 {
			lon = feature.Geometry.Coordinates[0]
			lat = feature.Geometry.Coordinates[1]
		}

		spotType := parking.Type
		if spotType == "" {
			spotType = "surface"
		}
		capacity := parking.Capacity
		if capacity <= 0 {
			capacity = 50
		}
		access := parking.Access
		if access == "" {
			access = "public"
		}

		available, percentage := generateAvailability(capacity)

		spots = append(spots, entities.ParkingSpot{
			ID:             id,
			Name:           name,
			Address:        address,
			Coordinates:    entities.Coordinates{Latitude: lat, Longitude: lon},
			Type:           spotType,
			Capacity:       capacity,
			AvailableSpots: available,
			Availability:   percentage,
			Pricing:        generatePricing(parking),
			Features: entities.SpotFeatures{
				Covered:        spotType == "multi-storey" || spotType == "underground",
				Security:       spotType == "multi-storey",
				EVCharging:     rand.Float64() > 0.7,
				DisabledAccess: parking.CapacityDetails.Disabled > 0 || rand.Float64() > 0.5,
				BikeParking:    parking.CapacityDetails.BikeRack > 0 || rand.Float64() > 0.6,
			},
			Access:       access,
			Fee:          parking.Fee == nil || *parking.Fee,
			SafetyRating: generateSafetyRating(),
			Distance:     nil, // computed client-side
		})
	}
	return spots
}

func generatePricing(parking parkingProperties) entities.Pricing {
	if parking.Fee != nil && !*parking.Fee {
		return entities.Pricing{Currency: "USD"}
	}

	basePrice := 2.0
	switch parking.Type {
	case "multi-storey":
		basePrice = 3.0
	case "underground":
		basePrice = 4.0
	}

	return entities.Pricing{
		Hourly:   round2(basePrice + rand.Float64()*2),
		Daily:    round2((basePrice + rand.Float64()*2) * 8),
		Monthly:  round2((basePrice + rand.Float64()*2) * 160),
		Currency: "USD",
	}
}

func generateSafetyRating() entities.SafetyRating {
	return entities.SafetyRating{
		Score:           round2(3.5 + rand.Float64()*1.5),
		Lighting:        rand.Float64() > 0.3,
		SecurityCameras: rand.Float64() > 0.4,
		SecurityPatrol:  rand.Float64() > 0.6,
	}
}

func generateAvailability(capacity int) (available, percentage int) {
	occupied := rand.Intn(capacity)
	available = capacity - occupied
	percentage = int(math.Round(float64(available) / float64(capacity) * 100))
	return available, percentage
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
