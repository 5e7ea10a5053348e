package service

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"smartparking/internal/db"
	"smartparking/internal/entities"
	"smartparking/internal/repository"
)

const (
	statusConfirmed = "confirmed"
	statusCancelled = "cancelled"
	statusCompleted = "completed"
)

type BookingService struct {
	Bookings *repository.BookingRepository
	Profiles *repository.ProfileRepository

	stripeService *StripeService
	sender        *SenderService
}

func NewBookingService(bookings *repository.BookingRepository, profiles *repository.ProfileRepository, stripeService *StripeService, sender *SenderService) *BookingService {
	return &BookingService{
		Bookings:      bookings,
		Profiles:      profiles,
		stripeService: stripeService,
		sender:        sender,
	}
}

// CreateBooking inserts a confirmed booking. The referenced profile must
// exist; when it doesn't, a minimal placeholder row is created first so the
// foreign key holds.
func (s *BookingService) CreateBooking(req entities.CreateBookingRequest) (*entities.BookingResponse, error) {
	checkIn, err := time.Parse(time.RFC3339, req.CheckInTime)
	if err != nil {
		return nil, fmt.Errorf("invalid check_in_time: %w", err)
	}
	checkOut, err := time.Parse(time.RFC3339, req.CheckOutTime)
	if err != nil {
		return nil, fmt.Errorf("invalid check_out_time: %w", err)
	}

	profile, err := s.ensureProfileRow(req.UserID)
	if err != nil {
		return nil, err
	}

	provider := req.APIProvider
	if provider == "" {
		provider = "geoapify"
	}

	now := time.Now().UTC()
	booking := &db.Booking{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		APIParkingID:   req.APIParkingID,
		APIProvider:    provider,
		ParkingName:    nullString(req.ParkingName),
		Latitude:       nullFloat(req.Latitude),
		Longitude:      nullFloat(req.Longitude),
		Address:        nullString(req.Address),
		CheckInTime:    checkIn,
		CheckOutTime:   checkOut,
		VehicleNumber:  nullString(req.VehicleNumber),
		EstimatedPrice: nullFloat(req.EstimatedPrice),
		Status:         statusConfirmed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Bookings.Create(booking); err != nil {
		return nil, err
	}

	resp := toBookingResponse(booking)

	if s.stripeService != nil && req.EstimatedPrice != nil && *req.EstimatedPrice > 0 {
		description := fmt.Sprintf("Parking at %s", req.ParkingName)
		paymentURL, err := s.stripeService.CreateCheckoutLink(*req.EstimatedPrice, "usd", description, booking.ID)
		if err != nil {
			log.Printf("Stripe checkout link failed for booking %s: %v", booking.ID, err)
		} else {
			resp.PaymentURL = paymentURL
		}
	}

	if s.sender != nil {
		go s.sender.SendBookingConfirmation(profile, resp)
	}

	return &resp, nil
}

// GetUserBookings splits a user's bookings into upcoming and history the
// way the app's bookings tab renders them.
func (s *BookingService) GetUserBookings(userID string) (*entities.UserBookings, error) {
	rows, err := s.Bookings.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	out := &entities.UserBookings{
		Upcoming: []entities.BookingResponse{},
		History:  []entities.BookingResponse{},
		All:      []entities.BookingResponse{},
	}

	now := time.Now().UTC()
	for i := range rows {
		resp := toBookingResponse(&rows[i])
		out.All = append(out.All, resp)
		if rows[i].CheckInTime.After(now) && rows[i].Status != statusCancelled {
			out.Upcoming = append(out.Upcoming, resp)
		} else {
			out.History = append(out.History, resp)
		}
	}
	return out, nil
}

// CancelBooking transitions a booking to cancelled. Returns nil when the
// booking does not exist.
func (s *BookingService) CancelBooking(bookingID string) (*entities.BookingResponse, error) {
	return s.transition(bookingID, statusCancelled)
}

// CompleteBooking transitions a booking to completed. Returns nil when the
// booking does not exist.
func (s *BookingService) CompleteBooking(bookingID string) (*entities.BookingResponse, error) {
	return s.transition(bookingID, statusCompleted)
}

func (s *BookingService) transition(bookingID, status string) (*entities.BookingResponse, error) {
	booking, err := s.Bookings.UpdateStatus(bookingID, status)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, nil
	}
	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *BookingService) ensureProfileRow(userID string) (*db.Profile, error) {
	profile, err := s.Profiles.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	log.Printf("Profile not found for user %s, creating placeholder", userID)
	placeholder := &db.Profile{
		ID:       userID,
		Email:    fmt.Sprintf("user-%s@app.local", userID),
		Provider: "supabase",
	}
	if err := s.Profiles.Create(placeholder); err != nil {
		return nil, fmt.Errorf("user profile does not exist and could not be created: %w", err)
	}
	return placeholder, nil
}

func toBookingResponse(b *db.Booking) entities.BookingResponse {
	return entities.BookingResponse{
		ID:             b.ID,
		UserID:         b.UserID,
		APIParkingID:   b.APIParkingID,
		APIProvider:    b.APIProvider,
		ParkingName:    b.ParkingName.String,
		Latitude:       floatPtr(b.Latitude),
		Longitude:      floatPtr(b.Longitude),
		Address:        b.Address.String,
		CheckInTime:    b.CheckInTime,
		CheckOutTime:   b.CheckOutTime,
		VehicleNumber:  b.VehicleNumber.String,
		EstimatedPrice: floatPtr(b.EstimatedPrice),
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
