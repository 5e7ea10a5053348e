package ai

import (
	"context"
	"fmt"
	"log"

	"smartparking/internal/entities"
	"smartparking/internal/llm"
)

const respondPromptFormat = `You are a helpful parking assistant. Provide brief, friendly summaries of parking search results.

User asked: %q
Found %d parking spots. Summarize the top options briefly.`

// GenerateResponse produces the natural-language summary shown above the
// result list. Provider failures fall back to the deterministic summary.
func GenerateResponse(ctx context.Context, provider llm.Provider, query string, results []entities.ParkingSpot) string {
	if provider == nil || len(results) == 0 {
		return fallbackResponse(results)
	}

	prompt := fmt.Sprintf(respondPromptFormat, query, len(results))
	response, err := provider.GenerateCompletion(ctx, prompt)
	if err != nil {
		log.Printf("Response generation error, using fallback: %v", err)
		return fallbackResponse(results)
	}
	return response
}

func fallbackResponse(results []entities.ParkingSpot) string {
	if len(results) == 0 {
		return "I couldn't find any parking spots matching your criteria. Try adjusting your search."
	}
	plural := ""
	if len(results) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("I found %d parking spot%s for you. Check the map to see locations and details.", len(results), plural)
}
