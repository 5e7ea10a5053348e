package db

import (
	"database/sql"
	"time"
)

type Profile struct {
	ID         string
	Email      string
	FullName   sql.NullString
	GivenName  sql.NullString
	FamilyName sql.NullString
	Phone      sql.NullString
	AvatarURL  sql.NullString
	Provider   string
	UpdatedAt  time.Time
}

type Booking struct {
	ID             string
	UserID         string
	APIParkingID   string
	APIProvider    string
	ParkingName    sql.NullString
	Latitude       sql.NullFloat64
	Longitude      sql.NullFloat64
	Address        sql.NullString
	CheckInTime    time.Time
	CheckOutTime   time.Time
	VehicleNumber  sql.NullString
	EstimatedPrice sql.NullFloat64
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
