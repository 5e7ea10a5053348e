package api

import (
	"encoding/json"
	"net/http"

	"smartparking/internal/entities"
	"smartparking/internal/service"
)

type AIHandler struct {
	Service *service.AssistantService
}

func NewAIHandler(svc *service.AssistantService) *AIHandler {
	return &AIHandler{Service: svc}
}

// ProcessQuery handles POST /api/ai/query.
func (h *AIHandler) ProcessQuery(w http.ResponseWriter, r *http.Request) {
	var req entities.AssistantQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameter: query")
		return
	}

	resp := h.Service.ProcessQuery(r.Context(), req.Query, req.SessionID)
	writeJSON(w, http.StatusOK, resp)
}

// GetSuggestions handles GET /api/ai/suggestions.
func (h *AIHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entities.SuggestionsResponse{
		Success:     true,
		Suggestions: h.Service.Suggestions(),
	})
}
