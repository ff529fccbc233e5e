// internal/chatbot/extractor.go
package chatbot

import (
	"context"
	"strings"

	"storebot/internal/common/logger"
)

// IntentExtractor classifies free text into an Intent. Implementations
// never fail: any internal error degrades to a fallback-search intent.
type IntentExtractor interface {
	Extract(ctx context.Context, message string) Intent
}

// NewExtractor selects the extraction strategy from configuration. Without
// a GenAI endpoint the heuristic strategy is used; a missing model key must
// never fail chat requests.
func NewExtractor(cfg *Config, log logger.Logger) IntentExtractor {
	heuristic := NewHeuristicExtractor()
	if cfg.GenAIBaseURL == "" || cfg.GenAIAPIKey == "" {
		return heuristic
	}
	return NewModelExtractor(cfg, heuristic, log)
}

// HeuristicExtractor classifies by trigger-word containment, checked in a
// fixed priority order so text containing several trigger words resolves
// deterministically. It needs no external service.
type HeuristicExtractor struct {
	triggers []trigger
}

type trigger struct {
	word  string
	build func(remainder string) Intent
}

// fillerWords are dropped from the parameter text so phrasings like
// "what is the price of X" tokenize to X alone. Conjunctive title matching
// would otherwise require the filler to appear in the product title.
var fillerWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "for": true,
	"is": true, "are": true, "what": true, "whats": true, "what's": true,
	"how": true, "much": true, "me": true, "please": true,
	"show": true, "tell": true, "do": true, "does": true, "you": true,
	"have": true, "in": true,
}

func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{
		triggers: []trigger{
			{word: "price", build: func(remainder string) Intent {
				return Intent{
					Kind:             IntentProductInfo,
					ProductNameQuery: remainder,
					RequestedFields:  []Field{FieldPrice},
				}
			}},
			{word: "description", build: func(remainder string) Intent {
				return Intent{
					Kind:             IntentProductInfo,
					ProductNameQuery: remainder,
					RequestedFields:  []Field{FieldDescription},
				}
			}},
			{word: "category", build: func(remainder string) Intent {
				return Intent{
					Kind:     IntentCategoryList,
					Category: remainder,
				}
			}},
			{word: "trending", build: func(string) Intent {
				return Intent{Kind: IntentSectionList, Section: "trending"}
			}},
			{word: "spotlight", build: func(string) Intent {
				return Intent{Kind: IntentSectionList, Section: "spotlight"}
			}},
		},
	}
}

func (e *HeuristicExtractor) Extract(_ context.Context, message string) Intent {
	lowered := strings.ToLower(strings.TrimSpace(message))

	for _, t := range e.triggers {
		if strings.Contains(lowered, t.word) {
			return t.build(remainderText(lowered, t.word))
		}
	}

	return Intent{Kind: IntentFallbackSearch, RawText: lowered}
}

// remainderText extracts the parameter text around the trigger word: the
// part after the trigger when present ("price of blue shirt"), otherwise
// the part before it ("blue shirt price"), with filler words dropped.
func remainderText(lowered, word string) string {
	idx := strings.Index(lowered, word)
	after := strings.TrimSpace(lowered[idx+len(word):])
	if after == "" {
		after = strings.TrimSpace(lowered[:idx])
	}

	kept := []string{}
	for _, tok := range strings.Fields(after) {
		if !fillerWords[tok] {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
