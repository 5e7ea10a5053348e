package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "smartparking/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeServerError(w http.ResponseWriter, message string, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   message,
		"message": err.Error(),
	})
}

// writeServiceError surfaces the status carried by a coded service error,
// falling back to the given status for plain errors.
func writeServiceError(w http.ResponseWriter, fallbackStatus int, fallbackMessage string, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeError(w, httpErr.Code, httpErr.Message)
		return
	}
	writeError(w, fallbackStatus, fallbackMessage)
}
