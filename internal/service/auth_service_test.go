package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartparking/internal/repository"
)

const testJWTSecret = "test-secret"

// deadDB opens a lazy connection that fails on first use. Profile row
// creation is best-effort on the sign-in paths, so the failures are
// swallowed and the flows under test still complete.
func deadDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := sql.Open("postgres", "postgres://127.0.0.1:1/void?sslmode=disable&connect_timeout=1")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewProfileRepository(deadDB(t)), "test-client-id", testJWTSecret)
}

func signSupabaseToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestSyncProfileValidToken(t *testing.T) {
	svc := newTestAuthService(t)
	token := signSupabaseToken(t, testJWTSecret, jwt.MapClaims{
		"sub":   "user-123",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"full_name":  "Ana Torres",
			"avatar_url": "https://example.com/ana.png",
		},
		"app_metadata": map[string]interface{}{"provider": "google"},
	})

	profile, err := svc.SyncProfile(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", profile.ID)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, "Ana Torres", profile.Name)
	assert.Equal(t, "https://example.com/ana.png", profile.Picture)
	assert.Equal(t, "google", profile.Provider)
}

func TestSyncProfileWrongSecret(t *testing.T) {
	svc := newTestAuthService(t)
	token := signSupabaseToken(t, "other-secret", jwt.MapClaims{
		"sub":   "user-123",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.SyncProfile(token)
	assert.Error(t, err)
}

func TestSyncProfileExpiredToken(t *testing.T) {
	svc := newTestAuthService(t)
	token := signSupabaseToken(t, testJWTSecret, jwt.MapClaims{
		"sub":   "user-123",
		"email": "ana@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	_, err := svc.SyncProfile(token)
	assert.Error(t, err)
}

func TestSyncProfileMissingIdentity(t *testing.T) {
	svc := newTestAuthService(t)
	token := signSupabaseToken(t, testJWTSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := svc.SyncProfile(token)
	assert.Error(t, err)
}

func TestSyncProfileNoSecretConfigured(t *testing.T) {
	svc := NewAuthService(repository.NewProfileRepository(deadDB(t)), "", "")

	_, err := svc.SyncProfile("whatever")
	assert.Error(t, err)
}

func TestVerifyGoogleIDToken(t *testing.T) {
	tokeninfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "valid-token", r.URL.Query().Get("id_token"))
		json.NewEncoder(w).Encode(map[string]string{
			"aud":            "test-client-id",
			"sub":            "google-user-9",
			"email":          "leo@example.com",
			"email_verified": "true",
			"name":           "Leo Park",
			"picture":        "https://example.com/leo.png",
		})
	}))
	defer tokeninfo.Close()

	svc := newTestAuthService(t)
	svc.tokeninfoURL = tokeninfo.URL

	profile, err := svc.VerifyGoogleIDToken(context.Background(), "valid-token")

	require.NoError(t, err)
	assert.Equal(t, "google-user-9", profile.ID)
	assert.Equal(t, "leo@example.com", profile.Email)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, "google", profile.Provider)
}

func TestVerifyGoogleIDTokenAudienceMismatch(t *testing.T) {
	tokeninfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"aud": "someone-else",
			"sub": "google-user-9",
		})
	}))
	defer tokeninfo.Close()

	svc := newTestAuthService(t)
	svc.tokeninfoURL = tokeninfo.URL

	_, err := svc.VerifyGoogleIDToken(context.Background(), "valid-token")
	assert.Error(t, err)
}

func TestVerifyGoogleIDTokenRejected(t *testing.T) {
	tokeninfo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer tokeninfo.Close()

	svc := newTestAuthService(t)
	svc.tokeninfoURL = tokeninfo.URL

	_, err := svc.VerifyGoogleIDToken(context.Background(), "bad-token")
	assert.Error(t, err)
}
