package repository

import (
	"database/sql"
	"fmt"

	"smartparking/internal/db"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(database *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: database}
}

// GetByID returns the profile row, or nil when no row exists.
func (r *ProfileRepository) GetByID(userID string) (*db.Profile, error) {
	query := `
	SELECT id, email, full_name, given_name, family_name, phone, avatar_url, provider, updated_at
	FROM profiles
	WHERE id = $1`

	var p db.Profile
	err := r.DB.QueryRow(query, userID).Scan(
		&p.ID, &p.Email, &p.FullName, &p.GivenName, &p.FamilyName,
		&p.Phone, &p.AvatarURL, &p.Provider, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying profile: %w", err)
	}
	return &p, nil
}

// Create inserts a profile row. Callers decide whether a failure is fatal;
// for sign-in flows it is not.
func (r *ProfileRepository) Create(p *db.Profile) error {
	query := `
	INSERT INTO profiles (id, email, full_name, given_name, family_name, phone, avatar_url, provider, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`

	_, err := r.DB.Exec(query,
		p.ID, p.Email, p.FullName, p.GivenName, p.FamilyName,
		p.Phone, p.AvatarURL, p.Provider,
	)
	if err != nil {
		return fmt.Errorf("error inserting profile: %w", err)
	}
	return nil
}
