package ai

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"strings"

	"smartparking/internal/llm"
)

type PricePreference string

const (
	PriceCheap     PricePreference = "cheap"
	PriceModerate  PricePreference = "moderate"
	PriceExpensive PricePreference = "expensive"
	PriceAny       PricePreference = "any"
)

type SortKey string

const (
	SortPrice        SortKey = "price"
	SortDistance     SortKey = "distance"
	SortAvailability SortKey = "availability"
	SortSafety       SortKey = "safety"
)

// FeatureKey is the closed set of feature criteria a query can ask for.
// Anything outside this set is ignored by the filter engine.
type FeatureKey string

const (
	FeatureOvernight      FeatureKey = "overnight"
	FeatureSafe           FeatureKey = "safe"
	FeatureSecure         FeatureKey = "secure"
	FeatureCovered        FeatureKey = "covered"
	FeatureSecurity       FeatureKey = "security"
	FeatureEVCharging     FeatureKey = "ev_charging"
	FeatureDisabledAccess FeatureKey = "disabled_access"
	FeatureBikeParking    FeatureKey = "bike_parking"
)

const (
	defaultMaxDistance = 5000
	defaultLimit       = 20
	maxLimit           = 50
)

// ParsedQuery is the structured form of a user's natural-language query.
type ParsedQuery struct {
	Location        string          `json:"location"`
	PricePreference PricePreference `json:"pricePreference"`
	Features        []FeatureKey    `json:"features"`
	MaxDistance     int             `json:"maxDistance"`
	SortBy          SortKey         `json:"sortBy"`
	Limit           int             `json:"limit"`
}

const parsePrompt = `You are a parking search assistant. Parse the user query into structured JSON.
Extract: location (address/place), price preference (cheap/moderate/expensive),
features (overnight, safe/secure, covered, ev_charging, disabled_access),
distance preference, and any other constraints.

Return ONLY valid JSON in this format:
{
  "location": "string or null",
  "pricePreference": "cheap|moderate|expensive|any",
  "features": ["feature1", "feature2"],
  "maxDistance": number in meters or null,
  "sortBy": "price|distance|availability|safety",
  "limit": number (default 20)
}

User query: `

// rawParsedQuery is the loose shape accepted from the language model before
// validation.
type rawParsedQuery struct {
	Location        *string  `json:"location"`
	PricePreference string   `json:"pricePreference"`
	Features        []string `json:"features"`
	MaxDistance     *int     `json:"maxDistance"`
	SortBy          string   `json:"sortBy"`
	Limit           *int     `json:"limit"`
}

// Parse turns a natural-language query into a ParsedQuery. The language
// model is the primary path; any provider or parse error switches to the
// deterministic fallback and is never surfaced to the caller.
func Parse(ctx context.Context, provider llm.Provider, query string) ParsedQuery {
	if provider == nil {
		return FallbackParse(query)
	}

	response, err := provider.GenerateCompletion(ctx, parsePrompt+query)
	if err != nil {
		log.Printf("AI parsing error, using fallback parser: %v", err)
		return FallbackParse(query)
	}

	payload, ok := extractJSON(response)
	if !ok {
		log.Printf("AI parsing error, no JSON object in response, using fallback parser")
		return FallbackParse(query)
	}

	var raw rawParsedQuery
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		log.Printf("AI parsing error, malformed JSON, using fallback parser: %v", err)
		return FallbackParse(query)
	}
	return validate(raw)
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)near\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)around\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)at\s+(.+?)(?:\s|$)`),
	regexp.MustCompile(`(?i)in\s+(.+?)(?:\s|$)`),
}

var limitPattern = regexp.MustCompile(`(?i)top\s+(\d+)`)

// FallbackParse is the deterministic parser used when no language model is
// configured or the model's answer is unusable.
func FallbackParse(query string) ParsedQuery {
	lower := strings.ToLower(query)

	parsed := ParsedQuery{
		PricePreference: PriceAny,
		Features:        []FeatureKey{},
		MaxDistance:     defaultMaxDistance,
		SortBy:          SortDistance,
		Limit:           defaultLimit,
	}

	for _, pattern := range locationPatterns {
		if match := pattern.FindStringSubmatch(query); match != nil {
			parsed.Location = strings.TrimSpace(match[1])
			break
		}
	}

	if strings.Contains(lower, "cheap") || strings.Contains(lower, "affordable") {
		parsed.PricePreference = PriceCheap
		parsed.SortBy = SortPrice
	} else if strings.Contains(lower, "expensive") || strings.Contains(lower, "premium") {
		parsed.PricePreference = PriceExpensive
	}

	if strings.Contains(lower, "overnight") || strings.Contains(lower, "24 hour") {
		parsed.Features = append(parsed.Features, FeatureOvernight)
	}
	if strings.Contains(lower, "safe") || strings.Contains(lower, "secure") {
		parsed.Features = append(parsed.Features, FeatureSafe)
		parsed.SortBy = SortSafety
	}
	if strings.Contains(lower, "covered") || strings.Contains(lower, "garage") {
		parsed.Features = append(parsed.Features, FeatureCovered)
	}
	if strings.Contains(lower, "ev") || strings.Contains(lower, "electric") {
		parsed.Features = append(parsed.Features, FeatureEVCharging)
	}
	if strings.Contains(lower, "disabled") || strings.Contains(lower, "accessible") {
		parsed.Features = append(parsed.Features, FeatureDisabledAccess)
	}

	if match := limitPattern.FindStringSubmatch(query); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			parsed.Limit = n
		}
	}

	return normalize(parsed)
}

func validate(raw rawParsedQuery) ParsedQuery {
	parsed := ParsedQuery{
		PricePreference: PricePreference(raw.PricePreference),
		MaxDistance:     defaultMaxDistance,
		SortBy:          SortKey(raw.SortBy),
		Limit:           defaultLimit,
	}
	if raw.Location != nil {
		parsed.Location = strings.TrimSpace(*raw.Location)
	}
	for _, f := range raw.Features {
		parsed.Features = append(parsed.Features, FeatureKey(strings.ToLower(strings.TrimSpace(f))))
	}
	if raw.MaxDistance != nil && *raw.MaxDistance > 0 {
		parsed.MaxDistance = *raw.MaxDistance
	}
	if raw.Limit != nil {
		parsed.Limit = *raw.Limit
	}
	return normalize(parsed)
}

// normalize clamps the limit to (0, 50] and restricts the enums to their
// known values, substituting defaults for anything unrecognized.
func normalize(parsed ParsedQuery) ParsedQuery {
	switch parsed.PricePreference {
	case PriceCheap, PriceModerate, PriceExpensive, PriceAny:
	default:
		parsed.PricePreference = PriceAny
	}
	switch parsed.SortBy {
	case SortPrice, SortDistance, SortAvailability, SortSafety:
	default:
		parsed.SortBy = SortDistance
	}
	if parsed.Limit <= 0 {
		parsed.Limit = defaultLimit
	} else if parsed.Limit > maxLimit {
		parsed.Limit = maxLimit
	}
	if parsed.MaxDistance <= 0 {
		parsed.MaxDistance = defaultMaxDistance
	}
	if parsed.Features == nil {
		parsed.Features = []FeatureKey{}
	}
	return parsed
}

// extractJSON pulls the outermost JSON object out of a model response,
// tolerating prose or code fences around it.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
