// internal/catalog/memory.go
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"storebot/internal/models"
)

// MemoryStore is a slice-backed Store for development and tests. Listing
// queries return products in title order so replies are deterministic; the
// store interface itself makes no ordering promise.
type MemoryStore struct {
	mu       sync.RWMutex
	products []models.ProductSummary
}

func NewMemoryStore(products []models.ProductSummary) *MemoryStore {
	s := &MemoryStore{}
	s.Load(products)
	return s
}

// Load replaces the store contents.
func (s *MemoryStore) Load(products []models.ProductSummary) {
	sorted := make([]models.ProductSummary, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Title < sorted[j].Title
	})

	s.mu.Lock()
	s.products = sorted
	s.mu.Unlock()
}

// Len returns the number of loaded products.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *MemoryStore) FindByTitleTokensAll(ctx context.Context, tokens []string) (*models.ProductSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrStoreUnavailable
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		title := strings.ToLower(p.Title)
		matched := true
		for _, tok := range tokens {
			if !strings.Contains(title, strings.ToLower(tok)) {
				matched = false
				break
			}
		}
		if matched {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindByCategorySubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	return s.filter(ctx, limit, func(p models.ProductSummary) bool {
		return strings.Contains(strings.ToLower(p.Category), strings.ToLower(text))
	})
}

func (s *MemoryStore) FindBySectionSubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	return s.filter(ctx, limit, func(p models.ProductSummary) bool {
		return strings.Contains(strings.ToLower(string(p.Section)), strings.ToLower(text))
	})
}

func (s *MemoryStore) SearchAnyField(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	needle := strings.ToLower(text)
	return s.filter(ctx, limit, func(p models.ProductSummary) bool {
		return strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	})
}

func (s *MemoryStore) filter(ctx context.Context, limit int, keep func(models.ProductSummary) bool) ([]models.ProductSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, ErrStoreUnavailable
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.ProductSummary{}
	for _, p := range s.products {
		if limit > 0 && len(results) >= limit {
			break
		}
		if keep(p) {
			results = append(results, p)
		}
	}
	return results, nil
}
