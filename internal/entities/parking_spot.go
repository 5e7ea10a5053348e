package entities

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Pricing holds the rates for a spot. Zero rates mean free parking.
type Pricing struct {
	Hourly   float64 `json:"hourly"`
	Daily    float64 `json:"daily"`
	Monthly  float64 `json:"monthly"`
	Currency string  `json:"currency"`
}

// SpotFeatures are the boolean amenities of a parking spot.
type SpotFeatures struct {
	Covered        bool `json:"covered"`
	Security       bool `json:"security"`
	EVCharging     bool `json:"ev_charging"`
	DisabledAccess bool `json:"disabled_access"`
	BikeParking    bool `json:"bike_parking"`
}

// SafetyRating scores a spot from 0 to 5 with contributing sub-flags.
type SafetyRating struct {
	Score           float64 `json:"score"`
	Lighting        bool    `json:"lighting"`
	SecurityCameras bool    `json:"security_cameras"`
	SecurityPatrol  bool    `json:"security_patrol"`
}

// ParkingSpot is one result from the places provider, enriched with pricing,
// availability and safety data. Immutable once fetched for a given request;
// never persisted server-side.
type ParkingSpot struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	Coordinates    Coordinates  `json:"coordinates"`
	Type           string       `json:"type"`
	Capacity       int          `json:"capacity"`
	AvailableSpots int          `json:"availableSpots"`
	Availability   int          `json:"availability"`
	Pricing        Pricing      `json:"pricing"`
	Features       SpotFeatures `json:"features"`
	Access         string       `json:"access"`
	Fee            bool         `json:"fee"`
	SafetyRating   SafetyRating `json:"safetyRating"`
	// Distance in meters from the client's position; computed client-side,
	// so it stays nil on results we produce ourselves.
	Distance *float64 `json:"distance"`
}
