package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation happens before the service is touched, so a nil service is
// fine for these.

func TestCreateBookingInvalidBody(t *testing.T) {
	handler := NewBookingHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings/create", strings.NewReader("{oops"))
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingMissingFields(t *testing.T) {
	handler := NewBookingHandler(nil)

	cases := []string{
		`{}`,
		`{"user_id": "u1"}`,
		`{"user_id": "u1", "api_parking_id": "p1"}`,
		`{"user_id": "u1", "api_parking_id": "p1", "check_in_time": "2026-09-01T10:00:00Z"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings/create", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestTransitionMissingBookingID(t *testing.T) {
	handler := NewBookingHandler(nil)

	req := httptest.NewRequest(http.MethodPut, "/api/bookings//cancel", nil)
	rec := httptest.NewRecorder()
	handler.Cancel(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleSignInMissingToken(t *testing.T) {
	handler := NewAuthHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/google", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.GoogleSignIn(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncProfileMissingToken(t *testing.T) {
	handler := NewAuthHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/sync", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.SyncProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterProfileMissingToken(t *testing.T) {
	handler := NewAuthHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{"firstName": "Ana"}`))
	rec := httptest.NewRecorder()
	handler.RegisterProfile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
