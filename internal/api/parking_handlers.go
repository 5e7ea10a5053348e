package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"smartparking/internal/entities"
	"smartparking/internal/service"
)

type ParkingHandler struct {
	Service *service.ParkingService
}

func NewParkingHandler(svc *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{Service: svc}
}

// Search handles GET /api/parking/search. Either lat/lon (+optional
// radius) or a bbox parameter selects the search mode.
func (h *ParkingHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := intParam(q.Get("limit"), 20)

	if bboxParam := q.Get("bbox"); bboxParam != "" {
		bbox, err := parseBbox(bboxParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Malformed bbox, expected west,south,east,north")
			return
		}
		results := h.Service.SearchByBbox(r.Context(), bbox, limit)
		writeJSON(w, http.StatusOK, entities.SpotListResponse{Success: true, Count: len(results), Data: results})
		return
	}

	latParam := q.Get("lat")
	lonParam := q.Get("lon")
	if latParam == "" || lonParam == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameters: lat and lon")
		return
	}
	lat, errLat := strconv.ParseFloat(latParam, 64)
	lon, errLon := strconv.ParseFloat(lonParam, 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "Invalid lat or lon")
		return
	}
	radius := intParam(q.Get("radius"), 5000)

	results := h.Service.SearchByCoordinates(r.Context(), lat, lon, radius, limit)
	writeJSON(w, http.StatusOK, entities.SpotListResponse{Success: true, Count: len(results), Data: results})
}

// SearchByAddress handles GET /api/parking/search-by-address.
func (h *ParkingHandler) SearchByAddress(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameter: address")
		return
	}
	limit := intParam(r.URL.Query().Get("limit"), 20)

	coords, results := h.Service.SearchByAddress(r.Context(), address, limit)
	writeJSON(w, http.StatusOK, entities.SpotListResponse{
		Success:     true,
		Count:       len(results),
		Data:        results,
		Coordinates: coords,
	})
}

// GetByID handles GET /api/parking/{id}. Detail lookups are not backed by
// the provider, so this echoes the identifier with placeholder data.
func (h *ParkingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]string{
			"id":      id,
			"name":    "Parking Location",
			"address": "123 Example St, San Jose, CA",
		},
	})
}

// Filter handles POST /api/parking/filter.
func (h *ParkingHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var req entities.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Results == nil {
		writeError(w, http.StatusBadRequest, "Invalid results array")
		return
	}

	filtered := h.Service.Filter(req.Results, req.Filters)
	writeJSON(w, http.StatusOK, entities.SpotListResponse{Success: true, Count: len(filtered), Data: filtered})
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBbox(raw string) ([4]float64, error) {
	var bbox [4]float64
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return bbox, strconv.ErrSyntax
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return bbox, err
		}
		bbox[i] = v
	}
	return bbox, nil
}
