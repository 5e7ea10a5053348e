package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"smartparking/internal/entities"
	"smartparking/internal/llm"
)

const (
	noResultsMessage = "I don't have any results to look at yet. Ask me to find parking somewhere and I can answer questions about what I find."
	apologyMessage   = "Sorry, I couldn't work out an answer to that just now. Here are the results from your last search."

	followUpTopN = 5
	digestSpots  = 10
)

// FollowUpAnswer is the outcome of answering a question about previously
// shown results.
type FollowUpAnswer struct {
	Answer         string
	Results        []entities.ParkingSpot
	NeedsNewSearch bool
}

// AnswerFollowUp answers a question about the cached result set. With
// nothing to discuss it bails out without touching the network. The
// keyword refinement always runs, whether or not the language model
// produced an answer.
func AnswerFollowUp(ctx context.Context, provider llm.Provider, query string, results []entities.ParkingSpot) FollowUpAnswer {
	if len(results) == 0 {
		return FollowUpAnswer{
			Answer:         noResultsMessage,
			Results:        results,
			NeedsNewSearch: true,
		}
	}

	answer := apologyMessage
	if provider != nil {
		prompt := followUpPrompt(query, results)
		response, err := provider.GenerateCompletion(ctx, prompt)
		if err != nil {
			log.Printf("Follow-up answer error, using apology: %v", err)
		} else {
			answer = response
		}
	}

	return FollowUpAnswer{
		Answer:  answer,
		Results: refineByKeyword(query, results),
	}
}

func followUpPrompt(query string, results []entities.ParkingSpot) string {
	var b strings.Builder
	b.WriteString("You are a helpful parking assistant. The user is asking about parking spots you already showed them.\n\n")
	b.WriteString("Current results:\n")
	for i, spot := range results {
		if i >= digestSpots {
			break
		}
		fmt.Fprintf(&b, "%d. %s, %s - $%.2f/hr, %d%% available, safety %.1f/5",
			i+1, spot.Name, spot.Address, spot.Pricing.Hourly, spot.Availability, spot.SafetyRating.Score)
		if features := featureList(spot); features != "" {
			fmt.Fprintf(&b, ", features: %s", features)
		}
		if spot.Distance != nil {
			fmt.Fprintf(&b, ", %.0fm away", *spot.Distance)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nUser question: %q\nAnswer conversationally and briefly.", query)
	return b.String()
}

func featureList(spot entities.ParkingSpot) string {
	var features []string
	if spot.Features.Covered {
		features = append(features, "covered")
	}
	if spot.Features.Security {
		features = append(features, "security")
	}
	if spot.Features.EVCharging {
		features = append(features, "EV charging")
	}
	if spot.Features.DisabledAccess {
		features = append(features, "disabled access")
	}
	if spot.Features.BikeParking {
		features = append(features, "bike parking")
	}
	return strings.Join(features, ", ")
}

// refineByKeyword re-filters the cached results using fixed keyword rules,
// first match wins. Superlative rules take the top results by the relevant
// sort; attribute rules keep every matching spot. No match returns the full
// set unchanged.
func refineByKeyword(query string, results []entities.ParkingSpot) []entities.ParkingSpot {
	lower := strings.ToLower(query)

	switch {
	case strings.Contains(lower, "cheapest") || strings.Contains(lower, "lowest price"):
		return topN(SortSpots(results, SortPrice), followUpTopN)
	case strings.Contains(lower, "most available"):
		return topN(SortSpots(results, SortAvailability), followUpTopN)
	case strings.Contains(lower, "safest"):
		return topN(SortSpots(results, SortSafety), followUpTopN)
	case strings.Contains(lower, "closest") || strings.Contains(lower, "nearest"):
		return topN(SortSpots(results, SortDistance), followUpTopN)
	case strings.Contains(lower, "covered") || strings.Contains(lower, "garage"):
		return keep(results, func(s entities.ParkingSpot) bool { return s.Features.Covered })
	case strings.Contains(lower, "ev") || strings.Contains(lower, "electric") || strings.Contains(lower, "charging"):
		return keep(results, func(s entities.ParkingSpot) bool { return s.Features.EVCharging })
	case strings.Contains(lower, "free"):
		return keep(results, func(s entities.ParkingSpot) bool { return s.Pricing.Hourly == 0 })
	default:
		return results
	}
}

func topN(spots []entities.ParkingSpot, n int) []entities.ParkingSpot {
	if len(spots) > n {
		return spots[:n]
	}
	return spots
}

func keep(spots []entities.ParkingSpot, pred func(entities.ParkingSpot) bool) []entities.ParkingSpot {
	kept := make([]entities.ParkingSpot, 0, len(spots))
	for _, s := range spots {
		if pred(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
