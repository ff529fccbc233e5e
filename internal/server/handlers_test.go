// internal/server/handlers_test.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storebot/internal/catalog"
	"storebot/internal/chatbot"
	"storebot/internal/common/logger"
	"storebot/internal/models"
)

type stubHistoryReader struct {
	turns []models.ConversationTurn
	err   error
}

func (s *stubHistoryReader) Replay(context.Context, string) ([]models.ConversationTurn, error) {
	return s.turns, s.err
}

type erroringStore struct{}

func (erroringStore) FindByTitleTokensAll(context.Context, []string) (*models.ProductSummary, error) {
	return nil, catalog.ErrStoreUnavailable
}

func (erroringStore) FindByCategorySubstring(context.Context, string, int) ([]models.ProductSummary, error) {
	return nil, catalog.ErrStoreUnavailable
}

func (erroringStore) FindBySectionSubstring(context.Context, string, int) ([]models.ProductSummary, error) {
	return nil, catalog.ErrStoreUnavailable
}

func (erroringStore) SearchAnyField(context.Context, string, int) ([]models.ProductSummary, error) {
	return nil, catalog.ErrStoreUnavailable
}

func newTestServer(t *testing.T, store catalog.Store, history HistoryReader) *httptest.Server {
	log := logger.NewTestLogger(t)
	cfg := chatbot.LoadConfig()
	resolver := chatbot.NewResolver(cfg, store, chatbot.NewHeuristicExtractor(), nil, log)
	handlers := NewHandlers(resolver, history, log, 5*time.Second)

	server := httptest.NewServer(NewRouter(handlers))
	t.Cleanup(server.Close)
	return server
}

func postChat(t *testing.T, server *httptest.Server, body string) *http.Response {
	resp, err := http.Post(server.URL+"/api/chat", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestChatEndpoint_Success(t *testing.T) {
	store := catalog.NewMemoryStore([]models.ProductSummary{
		{ID: "p1", Title: "Blue Cotton Shirt", Price: 799, Category: "fashion", Section: models.SectionTrending},
	})
	server := newTestServer(t, store, nil)

	resp := postChat(t, server, `{"userId":"u1","message":"what is the price of blue cotton shirt"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var chat ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chat))
	assert.Contains(t, chat.Reply, "799")
	require.Len(t, chat.Products, 1)
	assert.Equal(t, "Blue Cotton Shirt", chat.Products[0].Title)
}

func TestChatEndpoint_EmptyMessage(t *testing.T) {
	server := newTestServer(t, catalog.NewMemoryStore(nil), nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing message field", `{"userId":"u1"}`},
		{"empty message", `{"userId":"u1","message":""}`},
		{"whitespace message", `{"userId":"u1","message":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postChat(t, server, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "EMPTY_MESSAGE", body["code"])
		})
	}
}

func TestChatEndpoint_MalformedBody(t *testing.T) {
	server := newTestServer(t, catalog.NewMemoryStore(nil), nil)

	resp := postChat(t, server, `{"userId":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INVALID_CHAT_REQUEST", body["code"])
}

func TestChatEndpoint_CatalogFailureIsGeneric(t *testing.T) {
	server := newTestServer(t, erroringStore{}, nil)

	resp := postChat(t, server, `{"userId":"u1","message":"price of blue cotton shirt"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	// Internal detail never leaks; the UI sees only the generic failure.
	assert.Equal(t, "AI failed, please try again", body["error"])
	assert.NotContains(t, body, "code")
}

func TestHistoryEndpoint(t *testing.T) {
	history := &stubHistoryReader{turns: []models.ConversationTurn{
		{ID: "t1", UserID: "u1", Role: models.RoleUser, Message: "hello"},
		{ID: "t2", UserID: "u1", Role: models.RoleBot, Message: "hi"},
	}}
	server := newTestServer(t, catalog.NewMemoryStore(nil), history)

	resp, err := http.Get(server.URL + "/api/chat/history/u1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var turns []models.ConversationTurn
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&turns))
	require.Len(t, turns, 2)
	assert.Equal(t, models.RoleUser, turns[0].Role)
	assert.Equal(t, models.RoleBot, turns[1].Role)
}

func TestHistoryEndpoint_ReadFailureIsGeneric(t *testing.T) {
	history := &stubHistoryReader{err: assert.AnError}
	server := newTestServer(t, catalog.NewMemoryStore(nil), history)

	resp, err := http.Get(server.URL + "/api/chat/history/u1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "AI failed, please try again", body["error"])
}

func TestHistoryEndpoint_NoBackendConfigured(t *testing.T) {
	server := newTestServer(t, catalog.NewMemoryStore(nil), nil)

	resp, err := http.Get(server.URL + "/api/chat/history/u1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var turns []models.ConversationTurn
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&turns))
	assert.Empty(t, turns)
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t, catalog.NewMemoryStore(nil), nil)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t, catalog.NewMemoryStore(nil), nil)

	// Drive one chat request so the counters have been registered and used.
	resp := postChat(t, server, `{"userId":"u1","message":"blue shirt"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	metricsResp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
}
