package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"smartparking/internal/db"
	"smartparking/internal/entities"
	apperrors "smartparking/internal/errors"
	"smartparking/internal/repository"
)

const googleTokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// AuthService verifies identities against Google and Supabase and keeps the
// profiles table in sync. Profile row creation is deliberately non-fatal:
// a storage hiccup must never block a sign-in.
type AuthService struct {
	Profiles *repository.ProfileRepository

	GoogleClientID    string
	SupabaseJWTSecret string

	httpClient   *http.Client
	tokeninfoURL string
}

func NewAuthService(profiles *repository.ProfileRepository, googleClientID, supabaseJWTSecret string) *AuthService {
	return &AuthService{
		Profiles:          profiles,
		GoogleClientID:    googleClientID,
		SupabaseJWTSecret: supabaseJWTSecret,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		tokeninfoURL: googleTokeninfoURL,
	}
}

type googleTokenInfo struct {
	Aud           string `json:"aud"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// VerifyGoogleIDToken validates a Google ID token via the tokeninfo
// endpoint, checks the audience, and ensures a profile row exists.
func (s *AuthService) VerifyGoogleIDToken(ctx context.Context, idToken string) (*entities.UserProfile, error) {
	endpoint := s.tokeninfoURL + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrUnauthorized(fmt.Sprintf("ID token rejected by tokeninfo: status %d", resp.StatusCode))
	}

	var info googleTokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if s.GoogleClientID != "" && info.Aud != "" && info.Aud != s.GoogleClientID {
		return nil, apperrors.ErrUnauthorized("ID token audience does not match configured client ID")
	}

	profile := &entities.UserProfile{
		ID:            info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
		Name:          info.Name,
		GivenName:     info.GivenName,
		FamilyName:    info.FamilyName,
		Picture:       info.Picture,
		Provider:      "google",
	}

	s.ensureProfile(profile)
	return profile, nil
}

type supabaseClaims struct {
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	AppMetadata  map[string]interface{} `json:"app_metadata"`
	jwt.RegisteredClaims
}

// SyncProfile verifies a Supabase access token and ensures a profile row
// exists for the user.
func (s *AuthService) SyncProfile(accessToken string) (*entities.UserProfile, error) {
	claims, err := s.parseSupabaseToken(accessToken)
	if err != nil {
		return nil, err
	}

	profile := &entities.UserProfile{
		ID:            claims.Subject,
		Email:         claims.Email,
		EmailVerified: true,
		Name:          metaString(claims.UserMetadata, "full_name", "name"),
		GivenName:     metaString(claims.UserMetadata, "given_name"),
		FamilyName:    metaString(claims.UserMetadata, "family_name"),
		Picture:       metaString(claims.UserMetadata, "avatar_url", "picture"),
		Provider:      providerFrom(claims.AppMetadata),
	}
	if profile.ID == "" || profile.Email == "" {
		return nil, apperrors.ErrUnauthorized("access token carries no usable identity")
	}

	s.ensureProfile(profile)
	return profile, nil
}

// RegisterProfile creates a profile with the extended signup fields. Unlike
// the sign-in paths, a storage failure here is surfaced: the caller asked
// for the row explicitly.
func (s *AuthService) RegisterProfile(req entities.RegisterProfileRequest) (*entities.UserProfile, error) {
	claims, err := s.parseSupabaseToken(req.AccessToken)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, apperrors.ErrUnauthorized("access token carries no usable identity")
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = metaString(claims.UserMetadata, "full_name")
	}

	row := &db.Profile{
		ID:         claims.Subject,
		Email:      claims.Email,
		FullName:   nullString(fullName),
		GivenName:  nullString(req.FirstName),
		FamilyName: nullString(req.FamilyName),
		Phone:      nullString(req.Phone),
		Provider:   "supabase",
	}
	if err := s.Profiles.Create(row); err != nil {
		return nil, fmt.Errorf("failed to register profile: %w", err)
	}

	return &entities.UserProfile{
		ID:         claims.Subject,
		Email:      claims.Email,
		Name:       fullName,
		GivenName:  req.FirstName,
		FamilyName: req.FamilyName,
		Phone:      req.Phone,
		Provider:   "supabase",
	}, nil
}

// CheckProfileExists reports whether a profile row exists for the user.
func (s *AuthService) CheckProfileExists(userID string) (bool, error) {
	profile, err := s.Profiles.GetByID(userID)
	if err != nil {
		return false, err
	}
	return profile != nil, nil
}

func (s *AuthService) parseSupabaseToken(accessToken string) (*supabaseClaims, error) {
	if s.SupabaseJWTSecret == "" {
		return nil, errors.New("SUPABASE_JWT_SECRET not set")
	}

	claims := &supabaseClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.SupabaseJWTSecret), nil
	})
	if err != nil {
		return nil, apperrors.ErrUnauthorized("invalid access token: " + err.Error())
	}
	return claims, nil
}

// ensureProfile creates the profile row if it is missing. Failures are
// logged and swallowed so sign-in proceeds regardless.
func (s *AuthService) ensureProfile(profile *entities.UserProfile) {
	existing, err := s.Profiles.GetByID(profile.ID)
	if err != nil {
		log.Printf("Profile check failed for %s: %v", profile.ID, err)
		return
	}
	if existing != nil {
		return
	}

	row := &db.Profile{
		ID:        profile.ID,
		Email:     profile.Email,
		FullName:  nullString(profile.Name),
		AvatarURL: nullString(profile.Picture),
		Provider:  profile.Provider,
	}
	if err := s.Profiles.Create(row); err != nil {
		log.Printf("Failed to create profile for %s: %v", profile.ID, err)
	}
}

func metaString(meta map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := meta[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func providerFrom(appMeta map[string]interface{}) string {
	if v, ok := appMeta["provider"].(string); ok && v != "" {
		return v
	}
	return "supabase"
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
