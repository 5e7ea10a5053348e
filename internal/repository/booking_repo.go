package repository

import (
	"database/sql"
	"fmt"

	"smartparking/internal/db"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func (r *BookingRepository) Create(b *db.Booking) error {
	query := `
	INSERT INTO bookings (id, user_id, api_parking_id, api_provider, parking_name,
		latitude, longitude, address, check_in_time, check_out_time,
		vehicle_number, estimated_price, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.DB.Exec(query,
		b.ID, b.UserID, b.APIParkingID, b.APIProvider, b.ParkingName,
		b.Latitude, b.Longitude, b.Address, b.CheckInTime, b.CheckOutTime,
		b.VehicleNumber, b.EstimatedPrice, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting booking: %w", err)
	}
	return nil
}

// ListByUser returns all of a user's bookings, newest check-in first.
func (r *BookingRepository) ListByUser(userID string) ([]db.Booking, error) {
	query := bookingSelect + ` WHERE user_id = $1 ORDER BY check_in_time DESC`

	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying user bookings: %w", err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := rows.Scan(bookingScanDest(&b)...); err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus transitions a booking and returns the updated row, or nil
// when the booking does not exist.
func (r *BookingRepository) UpdateStatus(bookingID, status string) (*db.Booking, error) {
	query := `
	UPDATE bookings SET status = $1, updated_at = NOW()
	WHERE id = $2
	RETURNING id, user_id, api_parking_id, api_provider, parking_name,
		latitude, longitude, address, check_in_time, check_out_time,
		vehicle_number, estimated_price, status, created_at, updated_at`

	var b db.Booking
	err := r.DB.QueryRow(query, status, bookingID).Scan(bookingScanDest(&b)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating booking status: %w", err)
	}
	return &b, nil
}

const bookingSelect = `
	SELECT id, user_id, api_parking_id, api_provider, parking_name,
		latitude, longitude, address, check_in_time, check_out_time,
		vehicle_number, estimated_price, status, created_at, updated_at
	FROM bookings`

func bookingScanDest(b *db.Booking) []interface{} {
	return []interface{}{
		&b.ID, &b.UserID, &b.APIParkingID, &b.APIProvider, &b.ParkingName,
		&b.Latitude, &b.Longitude, &b.Address, &b.CheckInTime, &b.CheckOutTime,
		&b.VehicleNumber, &b.EstimatedPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
}
