package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"smartparking/internal/entities"
	"smartparking/internal/service"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// GoogleSignIn handles POST /api/auth/google.
func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req entities.GoogleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "Missing idToken in request body")
		return
	}

	profile, err := h.Service.VerifyGoogleIDToken(r.Context(), req.IDToken)
	if err != nil {
		writeServiceError(w, http.StatusUnauthorized, "Invalid ID token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": profile})
}

// SyncProfile handles POST /api/auth/sync.
func (h *AuthHandler) SyncProfile(w http.ResponseWriter, r *http.Request) {
	var req entities.SyncProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccessToken == "" {
		writeError(w, http.StatusBadRequest, "Missing accessToken in request body")
		return
	}

	profile, err := h.Service.SyncProfile(req.AccessToken)
	if err != nil {
		writeServiceError(w, http.StatusUnauthorized, "Invalid Supabase access token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": profile})
}

// RegisterProfile handles POST /api/auth/register.
func (h *AuthHandler) RegisterProfile(w http.ResponseWriter, r *http.Request) {
	var req entities.RegisterProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AccessToken == "" {
		writeError(w, http.StatusBadRequest, "Missing accessToken in request body")
		return
	}

	profile, err := h.Service.RegisterProfile(req)
	if err != nil {
		writeServiceError(w, http.StatusBadRequest, "Failed to register profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": profile})
}

// CheckProfile handles GET /api/auth/profile/{userId}.
func (h *AuthHandler) CheckProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		writeError(w, http.StatusBadRequest, "Missing userId")
		return
	}

	exists, err := h.Service.CheckProfileExists(userID)
	if err != nil {
		writeServerError(w, "Failed to check profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"exists": exists, "userId": userID})
}
