// internal/catalog/store.go
package catalog

import (
	"context"
	"errors"

	"storebot/internal/models"
)

var (
	ErrStoreUnavailable = errors.New("CATALOG_UNAVAILABLE")
	ErrQueryFailed      = errors.New("CATALOG_QUERY_FAILED")
)

// Store is the read interface the chatbot resolver queries. All text
// matching is case-insensitive substring semantics; result limits are
// enforced by the caller, not assumed by the store.
type Store interface {
	// FindByTitleTokensAll returns the first product whose title contains
	// every token, or nil when nothing matches.
	FindByTitleTokensAll(ctx context.Context, tokens []string) (*models.ProductSummary, error)

	// FindByCategorySubstring returns up to limit products whose category
	// contains text.
	FindByCategorySubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error)

	// FindBySectionSubstring returns up to limit products whose section
	// contains text.
	FindBySectionSubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error)

	// SearchAnyField returns up to limit products where text appears in
	// the title, category, or description.
	SearchAnyField(ctx context.Context, text string, limit int) ([]models.ProductSummary, error)
}
