package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/entities"
	"smartparking/internal/geoapify"
	"smartparking/internal/service"
)

func newParkingHandler() *ParkingHandler {
	return NewParkingHandler(service.NewParkingService(geoapify.NewClient("")))
}

func decodeSpotList(t *testing.T, rec *httptest.ResponseRecorder) entities.SpotListResponse {
	t.Helper()
	var resp entities.SpotListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestSearchMissingCoordinates(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/search", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchInvalidCoordinates(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/search?lat=abc&lon=-121.88", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchByCoordinates(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/search?lat=37.33&lon=-121.88&radius=2000", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSpotList(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 5, resp.Count)
	assert.Nil(t, resp.Coordinates)
}

func TestSearchByBbox(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/search?bbox=-121.9,37.3,-121.8,37.4", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeSpotList(t, rec).Count)
}

func TestSearchMalformedBbox(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/search?bbox=-121.9,37.3", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchByAddressMissingAddress(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/search-by-address", nil)
	rec := httptest.NewRecorder()
	handler.SearchByAddress(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchByAddressReturnsSpots(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/search-by-address?address=San+Jose", nil)
	rec := httptest.NewRecorder()
	handler.SearchByAddress(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSpotList(t, rec)
	assert.Equal(t, 5, resp.Count)
	assert.Nil(t, resp.Coordinates, "mock fallback carries no geocoded center")
}

func TestGetByID(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/parking/mock_city_hall", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "mock_city_hall"})
	rec := httptest.NewRecorder()
	handler.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "mock_city_hall", resp.Data["id"])
}

func TestFilterRejectsMissingResults(t *testing.T) {
	handler := newParkingHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/parking/filter", bytes.NewReader([]byte(`{"filters": {}}`)))
	rec := httptest.NewRecorder()
	handler.Filter(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterAppliesCriteria(t *testing.T) {
	handler := newParkingHandler()

	payload := entities.FilterRequest{
		Results: []entities.ParkingSpot{
			{ID: "a", Availability: 90, Access: "public", Pricing: entities.Pricing{Hourly: 2.5}},
			{ID: "b", Availability: 40, Access: "public", Pricing: entities.Pricing{Hourly: 2.0}},
			{ID: "c", Availability: 95, Access: "private", Pricing: entities.Pricing{Hourly: 1.0}},
			{ID: "d", Availability: 80, Access: "public", Pricing: entities.Pricing{Hourly: 7.0}},
		},
		Filters: entities.SpotFilters{
			PriceMax:        5,
			MinAvailability: 50,
			Access:          "public",
			SortBy:          "price",
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/parking/filter", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Filter(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeSpotList(t, rec)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "a", resp.Data[0].ID)
}
