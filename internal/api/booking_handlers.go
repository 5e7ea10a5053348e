package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"smartparking/internal/entities"
	"smartparking/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// Create handles POST /api/bookings/create.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.APIParkingID == "" || req.CheckInTime == "" || req.CheckOutTime == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	booking, err := h.Service.CreateBooking(req)
	if err != nil {
		writeServerError(w, "Failed to create booking", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "booking": booking})
}

// ListByUser handles GET /api/bookings/user/{userId}.
func (h *BookingHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID required")
		return
	}

	bookings, err := h.Service.GetUserBookings(userID)
	if err != nil {
		writeServerError(w, "Failed to fetch user bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "bookings": bookings})
}

// Cancel handles PUT /api/bookings/{id}/cancel.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.CancelBooking)
}

// Complete handles PUT /api/bookings/{id}/complete.
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.CompleteBooking)
}

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, apply func(string) (*entities.BookingResponse, error)) {
	bookingID := mux.Vars(r)["id"]
	if bookingID == "" {
		writeError(w, http.StatusBadRequest, "Booking ID required")
		return
	}

	booking, err := apply(bookingID)
	if err != nil {
		writeServerError(w, "Failed to update booking", err)
		return
	}
	if booking == nil {
		writeError(w, http.StatusNotFound, "Booking not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "booking": booking})
}
