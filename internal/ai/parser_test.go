package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a canned llm.Provider for tests.
type stubProvider struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (p *stubProvider) GenerateCompletion(_ context.Context, prompt string) (string, error) {
	p.calls++
	p.lastPrompt = prompt
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func TestFallbackParseCheapestNearLocation(t *testing.T) {
	parsed := FallbackParse("Find me the cheapest parking near SJSU")

	assert.Equal(t, "SJSU", parsed.Location)
	assert.Equal(t, PriceCheap, parsed.PricePreference)
	assert.Equal(t, SortPrice, parsed.SortBy)
	assert.Equal(t, 5000, parsed.MaxDistance)
	assert.Equal(t, 20, parsed.Limit)
}

func TestFallbackParseDefaults(t *testing.T) {
	parsed := FallbackParse("parking please")

	assert.Empty(t, parsed.Location)
	assert.Equal(t, PriceAny, parsed.PricePreference)
	assert.Empty(t, parsed.Features)
	assert.Equal(t, SortDistance, parsed.SortBy)
	assert.Equal(t, 5000, parsed.MaxDistance)
	assert.Equal(t, 20, parsed.Limit)
}

func TestFallbackParseFeatureKeywords(t *testing.T) {
	parsed := FallbackParse("safe covered overnight parking with ev charging and disabled access")

	assert.Contains(t, parsed.Features, FeatureOvernight)
	assert.Contains(t, parsed.Features, FeatureSafe)
	assert.Contains(t, parsed.Features, FeatureCovered)
	assert.Contains(t, parsed.Features, FeatureEVCharging)
	assert.Contains(t, parsed.Features, FeatureDisabledAccess)
	assert.Equal(t, SortSafety, parsed.SortBy)
}

func TestFallbackParseTopNLimit(t *testing.T) {
	parsed := FallbackParse("Give me the top 5 parking spots around San Jose")

	assert.Equal(t, 5, parsed.Limit)
	assert.Equal(t, "San", parsed.Location) // lazy match stops at the first word
}

func TestFallbackParseLimitClamped(t *testing.T) {
	parsed := FallbackParse("top 500 spots")
	assert.Equal(t, 50, parsed.Limit)

	parsed = FallbackParse("top 0 spots")
	assert.Equal(t, 20, parsed.Limit)
}

func TestParseNilProviderUsesFallback(t *testing.T) {
	parsed := Parse(context.Background(), nil, "cheap parking near downtown")

	assert.Equal(t, "downtown", parsed.Location)
	assert.Equal(t, PriceCheap, parsed.PricePreference)
}

func TestParseProviderErrorUsesFallback(t *testing.T) {
	provider := &stubProvider{err: errors.New("boom")}

	parsed := Parse(context.Background(), provider, "expensive parking near airport")

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "airport", parsed.Location)
	assert.Equal(t, PriceExpensive, parsed.PricePreference)
}

func TestParseValidResponse(t *testing.T) {
	provider := &stubProvider{response: `Here you go:
{"location": "Santana Row", "pricePreference": "moderate", "features": ["Covered"], "maxDistance": 1200, "sortBy": "availability", "limit": 10}`}

	parsed := Parse(context.Background(), provider, "whatever")

	require.Equal(t, 1, provider.calls)
	assert.Equal(t, "Santana Row", parsed.Location)
	assert.Equal(t, PriceModerate, parsed.PricePreference)
	assert.Equal(t, []FeatureKey{FeatureCovered}, parsed.Features)
	assert.Equal(t, 1200, parsed.MaxDistance)
	assert.Equal(t, SortAvailability, parsed.SortBy)
	assert.Equal(t, 10, parsed.Limit)
}

func TestParseUnknownEnumsNormalized(t *testing.T) {
	provider := &stubProvider{response: `{"pricePreference": "bargain", "sortBy": "vibes", "limit": 9000}`}

	parsed := Parse(context.Background(), provider, "whatever")

	assert.Equal(t, PriceAny, parsed.PricePreference)
	assert.Equal(t, SortDistance, parsed.SortBy)
	assert.Equal(t, 50, parsed.Limit)
}

func TestParseMalformedJSONUsesFallback(t *testing.T) {
	provider := &stubProvider{response: `{"location": `}

	parsed := Parse(context.Background(), provider, "parking near campus")

	assert.Equal(t, "campus", parsed.Location)
}

func TestParseNoJSONUsesFallback(t *testing.T) {
	provider := &stubProvider{response: "I cannot help with that."}

	parsed := Parse(context.Background(), provider, "parking around midtown")

	assert.Equal(t, "midtown", parsed.Location)
}
