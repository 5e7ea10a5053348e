package service

import (
	"context"
	"log"

	"smartparking/internal/ai"
	"smartparking/internal/entities"
	"smartparking/internal/geoapify"
	"smartparking/internal/llm"
	"smartparking/internal/session"
)

// Default search center (downtown San Jose) used when a query names no
// location.
const (
	defaultSearchLat = 37.3352
	defaultSearchLon = -121.8811
)

// AssistantService drives the conversational pipeline: classify the
// utterance, then search, refine the cached results, or answer a follow-up
// question about them.
type AssistantService struct {
	Provider llm.Provider
	Sessions *session.Store
	Places   *geoapify.Client
}

func NewAssistantService(provider llm.Provider, sessions *session.Store, places *geoapify.Client) *AssistantService {
	return &AssistantService{
		Provider: provider,
		Sessions: sessions,
		Places:   places,
	}
}

// ProcessQuery handles one assistant turn. An empty sessionID makes the
// turn stateless: no context is read or written and the query is always a
// new search.
func (s *AssistantService) ProcessQuery(ctx context.Context, query, sessionID string) *entities.AssistantQueryResponse {
	conv := s.Sessions.Get(sessionID)
	classification := ai.Classify(ctx, s.Provider, query, conv)

	var (
		results    []entities.ParkingSpot
		aiResponse string
		coords     *entities.Coordinates
	)

	switch classification.Type {
	case ai.TypeFollowUp:
		followUp := ai.AnswerFollowUp(ctx, s.Provider, query, conv.LastResults)
		if followUp.NeedsNewSearch {
			// Nothing cached to discuss; a full search is the safe answer.
			classification.Type = ai.TypeNewSearch
			results, aiResponse, coords = s.newSearch(ctx, query)
			break
		}
		results = followUp.Results
		aiResponse = followUp.Answer

	case ai.TypeRefine:
		parsed := ai.Parse(ctx, s.Provider, query)
		refined := ai.ApplyFilters(conv.LastResults, parsed)
		refined = ai.SortSpots(refined, parsed.SortBy)
		if len(refined) > parsed.Limit {
			refined = refined[:parsed.Limit]
		}
		results = refined
		aiResponse = ai.GenerateResponse(ctx, s.Provider, query, results)

	default:
		results, aiResponse, coords = s.newSearch(ctx, query)
	}

	log.Printf("Assistant query classified as %s (%s): %d results", classification.Type, classification.Reason, len(results))

	if sessionID != "" {
		s.Sessions.Set(sessionID, session.Update{
			Query:       &query,
			Results:     results,
			Response:    &aiResponse,
			Coordinates: coords,
		})
	}

	return &entities.AssistantQueryResponse{
		Success:    true,
		Type:       string(classification.Type),
		Query:      query,
		AIResponse: aiResponse,
		Count:      len(results),
		Data:       results,
	}
}

func (s *AssistantService) newSearch(ctx context.Context, query string) ([]entities.ParkingSpot, string, *entities.Coordinates) {
	parsed := ai.Parse(ctx, s.Provider, query)

	var (
		results []entities.ParkingSpot
		coords  *entities.Coordinates
	)
	if parsed.Location != "" {
		coords, results = s.Places.SearchByAddress(ctx, parsed.Location, parsed.Limit)
	} else {
		results = s.Places.SearchParking(ctx, defaultSearchLat, defaultSearchLon, parsed.MaxDistance, parsed.Limit)
	}

	results = ai.ApplyFilters(results, parsed)
	results = ai.SortSpots(results, parsed.SortBy)

	return results, ai.GenerateResponse(ctx, s.Provider, query, results), coords
}

// Suggestions are the canned prompts shown on the assistant's empty state.
func (s *AssistantService) Suggestions() []string {
	return []string{
		"Find me the cheapest parking near SJSU",
		"Where can I park overnight near the library?",
		"Find the safest parking near me",
		"Show me covered parking with EV charging",
		"Find parking with disabled access near downtown",
		"Give me the top 5 parking spots around San Jose",
	}
}
