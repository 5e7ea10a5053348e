package entities

type AssistantQueryRequest struct {
	Query     string `json:"query"`
	SessionID string `json:"sessionId"`
}

type AssistantQueryResponse struct {
	Success    bool          `json:"success"`
	Type       string        `json:"type"`
	Query      string        `json:"query"`
	AIResponse string        `json:"aiResponse"`
	Count      int           `json:"count"`
	Data       []ParkingSpot `json:"data"`
}

type SuggestionsResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
}

// SpotListResponse is the common envelope for parking search and filter
// endpoints. Coordinates is only set by the address search, which geocodes
// the query before searching.
type SpotListResponse struct {
	Success     bool          `json:"success"`
	Count       int           `json:"count"`
	Data        []ParkingSpot `json:"data"`
	Coordinates *Coordinates  `json:"coordinates,omitempty"`
}

type FilterRequest struct {
	Results []ParkingSpot `json:"results"`
	Filters SpotFilters   `json:"filters"`
}

// SpotFilters are the manual filter-panel criteria, distinct from the
// AI-parsed query preferences.
type SpotFilters struct {
	PriceMax        float64  `json:"priceMax"`
	Features        []string `json:"features"`
	MinAvailability int      `json:"minAvailability"`
	Access          string   `json:"access"`
	SortBy          string   `json:"sortBy"`
}
