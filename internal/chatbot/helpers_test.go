// internal/chatbot/helpers_test.go
package chatbot

import (
	"context"
	"sync"
	"testing"

	"storebot/internal/catalog"
	"storebot/internal/common/logger"
	"storebot/internal/models"
)

func testLogger(t testing.TB) logger.Logger {
	return logger.NewTestLogger(t)
}

// testCatalog mirrors the fixture used across the resolver scenarios.
func testCatalog() *catalog.MemoryStore {
	return catalog.NewMemoryStore([]models.ProductSummary{
		{ID: "p1", Title: "Blue Cotton Shirt", Price: 799, Category: "fashion", Section: models.SectionTrending, Description: "A soft cotton shirt in blue."},
		{ID: "p2", Title: "Red Jacket", Price: 2499, Category: "fashion", Section: models.SectionSpotlight, Description: "Warm red winter jacket."},
		{ID: "p3", Title: "Wireless Mouse", Price: 599, Category: "electronics", Section: models.SectionInDemand, Description: "Ergonomic wireless mouse."},
		{ID: "p4", Title: "Gaming Keyboard", Price: 1899, Category: "electronics", Section: models.SectionTrending, Description: "Mechanical gaming keyboard."},
		{ID: "p5", Title: "USB-C Cable", Price: 199, Category: "electronics", Section: models.SectionEverybody, Description: "1m braided USB-C cable."},
	})
}

// countingStore wraps a Store and counts how many queries reach it.
type countingStore struct {
	inner catalog.Store

	mu    sync.Mutex
	calls int
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *countingStore) bump() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

func (s *countingStore) FindByTitleTokensAll(ctx context.Context, tokens []string) (*models.ProductSummary, error) {
	s.bump()
	return s.inner.FindByTitleTokensAll(ctx, tokens)
}

func (s *countingStore) FindByCategorySubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	s.bump()
	return s.inner.FindByCategorySubstring(ctx, text, limit)
}

func (s *countingStore) FindBySectionSubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	s.bump()
	return s.inner.FindBySectionSubstring(ctx, text, limit)
}

func (s *countingStore) SearchAnyField(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	s.bump()
	return s.inner.SearchAnyField(ctx, text, limit)
}

// failingStore returns err from every query.
type failingStore struct {
	err error
}

func (s *failingStore) FindByTitleTokensAll(context.Context, []string) (*models.ProductSummary, error) {
	return nil, s.err
}

func (s *failingStore) FindByCategorySubstring(context.Context, string, int) ([]models.ProductSummary, error) {
	return nil, s.err
}

func (s *failingStore) FindBySectionSubstring(context.Context, string, int) ([]models.ProductSummary, error) {
	return nil, s.err
}

func (s *failingStore) SearchAnyField(context.Context, string, int) ([]models.ProductSummary, error) {
	return nil, s.err
}

// stallingStore blocks every query until its context is cancelled, the
// way a hung backend would.
type stallingStore struct{}

func (stallingStore) FindByTitleTokensAll(ctx context.Context, _ []string) (*models.ProductSummary, error) {
	<-ctx.Done()
	return nil, catalog.ErrStoreUnavailable
}

func (stallingStore) FindByCategorySubstring(ctx context.Context, _ string, _ int) ([]models.ProductSummary, error) {
	<-ctx.Done()
	return nil, catalog.ErrStoreUnavailable
}

func (stallingStore) FindBySectionSubstring(ctx context.Context, _ string, _ int) ([]models.ProductSummary, error) {
	<-ctx.Done()
	return nil, catalog.ErrStoreUnavailable
}

func (stallingStore) SearchAnyField(ctx context.Context, _ string, _ int) ([]models.ProductSummary, error) {
	<-ctx.Done()
	return nil, catalog.ErrStoreUnavailable
}

type recordedTurn struct {
	userID  string
	role    models.TurnRole
	message string
}

// recordingHistory captures Append calls and signals done once two turns
// have been written, so tests can wait on the fire-and-forget goroutine.
type recordingHistory struct {
	mu    sync.Mutex
	turns []recordedTurn
	err   error
	done  chan struct{}
}

func newRecordingHistory() *recordingHistory {
	return &recordingHistory{done: make(chan struct{})}
}

func (h *recordingHistory) Append(_ context.Context, userID string, role models.TurnRole, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, recordedTurn{userID: userID, role: role, message: message})
	if len(h.turns) == 2 {
		close(h.done)
	}
	return h.err
}

func (h *recordingHistory) recorded() []recordedTurn {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]recordedTurn, len(h.turns))
	copy(out, h.turns)
	return out
}
