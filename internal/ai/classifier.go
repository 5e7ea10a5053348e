package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"smartparking/internal/llm"
	"smartparking/internal/session"
)

type QueryType string

const (
	TypeNewSearch QueryType = "new_search"
	TypeFollowUp  QueryType = "follow_up"
	TypeRefine    QueryType = "refine"
)

// Classification is the classifier's verdict on a user utterance.
type Classification struct {
	Type   QueryType `json:"type"`
	Reason string    `json:"reason"`
}

const classifyPromptFormat = `You are classifying a user's message in a parking search conversation.

Previous query: %q
Previous result count: %d
Current message: %q

Classify the current message as exactly one of:
- "new_search": the user wants to search for parking somewhere new
- "follow_up": the user is asking a question about the previous results
- "refine": the user wants the previous results filtered or re-sorted

Return ONLY valid JSON: {"type": "new_search|follow_up|refine", "reason": "short explanation"}`

// Classify decides how to handle a query given the conversation so far.
// With no context or no prior results there is nothing to refine or follow
// up on, so the answer is always new_search. Classification failure is
// never an error: the fallback re-runs a full search, which is always
// functionally correct. One attempt only; the user's next message is the
// retry mechanism.
func Classify(ctx context.Context, provider llm.Provider, query string, conv *session.Context) Classification {
	if conv == nil || len(conv.LastResults) == 0 {
		return Classification{Type: TypeNewSearch, Reason: "no previous search context"}
	}
	if provider == nil {
		return Classification{Type: TypeNewSearch, Reason: "no language model configured"}
	}

	prompt := fmt.Sprintf(classifyPromptFormat, conv.LastQuery, len(conv.LastResults), query)
	response, err := provider.GenerateCompletion(ctx, prompt)
	if err != nil {
		log.Printf("Classification error, defaulting to new_search: %v", err)
		return Classification{Type: TypeNewSearch, Reason: "classification unavailable"}
	}

	payload, ok := extractJSON(response)
	if !ok {
		log.Printf("Classification returned no JSON, defaulting to new_search")
		return Classification{Type: TypeNewSearch, Reason: "classification unavailable"}
	}

	var c Classification
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		log.Printf("Classification JSON malformed, defaulting to new_search: %v", err)
		return Classification{Type: TypeNewSearch, Reason: "classification unavailable"}
	}

	switch c.Type {
	case TypeNewSearch, TypeFollowUp, TypeRefine:
	default:
		return Classification{Type: TypeNewSearch, Reason: "unrecognized classification"}
	}
	if c.Reason == "" {
		return Classification{Type: TypeNewSearch, Reason: "classification unavailable"}
	}
	return c
}
