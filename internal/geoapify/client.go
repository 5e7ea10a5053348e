package geoapify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"smartparking/internal/entities"
)

const (
	placesBaseURL  = "https://api.geoapify.com/v2/places"
	geocodeBaseURL = "https://api.geoapify.com/v1/geocode/search"

	// 1 degree of latitude is roughly 111,320 meters.
	metersPerDegree = 111320

	defaultRadius = 5000
	defaultLimit  = 20
)

// Client talks to the Geoapify places and geocoding APIs. Any provider
// error degrades to the mock dataset rather than surfacing upstream.
type Client struct {
	apiKey     string
	httpClient *http.Client
	placesURL  string
	geocodeURL string
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		placesURL:  placesBaseURL,
		geocodeURL: geocodeBaseURL,
	}
}

type placeFeature struct {
	Properties placeProperties `json:"properties"`
	Geometry   struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
}

type placeProperties struct {
	PlaceID   string             `json:"place_id"`
	Name      string             `json:"name"`
	Formatted string             `json:"formatted"`
	AddrLine1 string             `json:"address_line1"`
	Lat       float64            `json:"lat"`
	Lon       float64            `json:"lon"`
	Parking   *parkingProperties `json:"parking"`
}

type parkingProperties struct {
	Type            string `json:"type"`
	Access          string `json:"access"`
	Capacity        int    `json:"capacity"`
	Fee             *bool  `json:"fee"`
	CapacityDetails struct {
		Disabled int `json:"disabled"`
		BikeRack int `json:"bike_rack"`
	} `json:"capacity_details"`
}

type placesResponse struct {
	Features []placeFeature `json:"features"`
}

type geocodeResponse struct {
	Features []struct {
		Properties struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"properties"`
	} `json:"features"`
}

// SearchParking searches for parking around a center point by computing a
// bounding box from the radius.
func (c *Client) SearchParking(ctx context.Context, lat, lon float64, radius, limit int) []entities.ParkingSpot {
	if radius <= 0 {
		radius = defaultRadius
	}
	radiusInDegrees := float64(radius) / metersPerDegree

	bbox := [4]float64{
		lon - radiusInDegrees, // west
		lat - radiusInDegrees, // south
		lon + radiusInDegrees, // east
		lat + radiusInDegrees, // north
	}
	return c.SearchParkingByBbox(ctx, bbox, limit)
}

// SearchParkingByBbox searches for parking within a [west, south, east,
// north] bounding box.
func (c *Client) SearchParkingByBbox(ctx context.Context, bbox [4]float64, limit int) []entities.ParkingSpot {
	if limit <= 0 {
		limit = defaultLimit
	}
	if c.apiKey == "" {
		return formatSpots(mockFeatures)
	}

	rectFilter := fmt.Sprintf("rect:%g,%g,%g,%g", bbox[0], bbox[1], bbox[2], bbox[3])

	params := url.Values{}
	params.Set("categories", "parking.cars")
	params.Set("filter", rectFilter)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("apiKey", c.apiKey)

	var resp placesResponse
	if err := c.getJSON(ctx, c.placesURL+"?"+params.Encode(), &resp); err != nil {
		log.Printf("Geoapify places error, using mock data: %v", err)
		return formatSpots(mockFeatures)
	}
	return formatSpots(resp.Features)
}

// SearchByAddress geocodes a free-text address and searches for parking
// around it. The resolved coordinates come back alongside the results so
// the client can recenter its map; they are nil when geocoding failed and
// mock data was substituted.
func (c *Client) SearchByAddress(ctx context.Context, address string, limit int) (*entities.Coordinates, []entities.ParkingSpot) {
	if c.apiKey == "" {
		return nil, formatSpots(mockFeatures)
	}

	params := url.Values{}
	params.Set("text", address)
	params.Set("apiKey", c.apiKey)

	var resp geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL+"?"+params.Encode(), &resp); err != nil {
		log.Printf("Geoapify geocode error, using mock data: %v", err)
		return nil, formatSpots(mockFeatures)
	}
	if len(resp.Features) == 0 {
		log.Printf("Geoapify geocode found nothing for %q, using mock data", address)
		return nil, formatSpots(mockFeatures)
	}

	lat := resp.Features[0].Properties.Lat
	lon := resp.Features[0].Properties.Lon
	spots := c.SearchParking(ctx, lat, lon, defaultRadius, limit)
	return &entities.Coordinates{Latitude: lat, Longitude: lon}, spots
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
