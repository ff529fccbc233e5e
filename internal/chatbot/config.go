// internal/chatbot/config.go
package chatbot

import (
	"time"

	"storebot/internal/common/config"
)

type Config struct {
	// ListLimit caps listing replies (category/section/fallback search).
	ListLimit int
	// QueryTimeout bounds each catalog read.
	QueryTimeout time.Duration
	// HistoryEnabled toggles the conversation log side effect.
	HistoryEnabled bool
	// HistoryTimeout bounds the fire-and-forget history append.
	HistoryTimeout time.Duration

	GenAIBaseURL string
	GenAIAPIKey  string
	GenAITimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ListLimit:      6,
		QueryTimeout:   5 * time.Second,
		HistoryTimeout: 5 * time.Second,
		GenAITimeout:   10 * time.Second,
	}
}

// FromApp maps the application configuration onto the chatbot component.
func FromApp(app *config.Config) *Config {
	cfg := LoadConfig()
	if app == nil {
		return cfg
	}

	if app.Chat.ListLimit > 0 {
		cfg.ListLimit = app.Chat.ListLimit
	}
	if app.Catalog.QueryTimeout > 0 {
		cfg.QueryTimeout = time.Duration(app.Catalog.QueryTimeout) * time.Millisecond
	}
	cfg.HistoryEnabled = app.Chat.HistoryEnabled
	cfg.GenAIBaseURL = app.APIs.GenAI.BaseURL
	cfg.GenAIAPIKey = app.APIs.GenAI.APIKey
	if app.APIs.GenAI.Timeout > 0 {
		cfg.GenAITimeout = time.Duration(app.APIs.GenAI.Timeout) * time.Millisecond
	}
	return cfg
}
