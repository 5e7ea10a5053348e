package entities

import "time"

type CreateBookingRequest struct {
	UserID         string   `json:"user_id"`
	APIParkingID   string   `json:"api_parking_id"`
	APIProvider    string   `json:"api_provider"`
	ParkingName    string   `json:"parking_name"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Address        string   `json:"address"`
	CheckInTime    string   `json:"check_in_time"`
	CheckOutTime   string   `json:"check_out_time"`
	VehicleNumber  string   `json:"vehicle_number"`
	EstimatedPrice *float64 `json:"estimated_price"`
}

type BookingResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	APIParkingID   string    `json:"api_parking_id"`
	APIProvider    string    `json:"api_provider"`
	ParkingName    string    `json:"parking_name,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Address        string    `json:"address,omitempty"`
	CheckInTime    time.Time `json:"check_in_time"`
	CheckOutTime   time.Time `json:"check_out_time"`
	VehicleNumber  string    `json:"vehicle_number,omitempty"`
	EstimatedPrice *float64  `json:"estimated_price,omitempty"`
	Status         string    `json:"status"`
	PaymentURL     string    `json:"payment_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserBookings splits a user's bookings the way the app's bookings tab
// renders them.
type UserBookings struct {
	Upcoming []BookingResponse `json:"upcoming"`
	History  []BookingResponse `json:"history"`
	All      []BookingResponse `json:"all"`
}
