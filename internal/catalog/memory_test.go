// internal/catalog/memory_test.go
package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storebot/internal/models"
)

func seededStore() *MemoryStore {
	return NewMemoryStore([]models.ProductSummary{
		{ID: "p1", Title: "Blue Cotton Shirt", Price: 799, Category: "fashion", Section: models.SectionTrending, Description: "A soft cotton shirt in blue."},
		{ID: "p2", Title: "Red Jacket", Price: 2499, Category: "fashion", Section: models.SectionSpotlight, Description: "Warm red winter jacket."},
		{ID: "p3", Title: "Wireless Mouse", Price: 599, Category: "electronics", Section: models.SectionInDemand, Description: "Ergonomic wireless mouse."},
		{ID: "p4", Title: "Gaming Keyboard", Price: 1899, Category: "electronics", Section: models.SectionTrending, Description: "Mechanical gaming keyboard."},
	})
}

func TestMemoryStore_FindByTitleTokensAll(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	tests := []struct {
		name     string
		tokens   []string
		expected string // expected title, "" for no match
	}{
		{"all tokens present", []string{"blue", "cotton", "shirt"}, "Blue Cotton Shirt"},
		{"case insensitive", []string{"BLUE", "Shirt"}, "Blue Cotton Shirt"},
		{"partial token as substring", []string{"cott"}, "Blue Cotton Shirt"},
		{"one token missing rejects", []string{"red", "shoes"}, ""},
		{"no tokens matches nothing", nil, ""},
		{"unknown product", []string{"telescope"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product, err := store.FindByTitleTokensAll(ctx, tt.tokens)
			require.NoError(t, err)
			if tt.expected == "" {
				assert.Nil(t, product)
			} else {
				require.NotNil(t, product)
				assert.Equal(t, tt.expected, product.Title)
			}
		})
	}
}

func TestMemoryStore_FindByCategorySubstring(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	products, err := store.FindByCategorySubstring(ctx, "electronics", 6)
	require.NoError(t, err)
	require.Len(t, products, 2)
	// Listings come back in title order.
	assert.Equal(t, "Gaming Keyboard", products[0].Title)
	assert.Equal(t, "Wireless Mouse", products[1].Title)

	products, err = store.FindByCategorySubstring(ctx, "ELECTRON", 6)
	require.NoError(t, err)
	assert.Len(t, products, 2, "substring match is case-insensitive")

	products, err = store.FindByCategorySubstring(ctx, "toys", 6)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NotNil(t, products)
}

func TestMemoryStore_FindBySectionSubstring(t *testing.T) {
	store := seededStore()

	products, err := store.FindBySectionSubstring(context.Background(), "trending", 6)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, models.SectionTrending, p.Section)
	}
}

func TestMemoryStore_SearchAnyField(t *testing.T) {
	store := seededStore()
	ctx := context.Background()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"matches title", "mouse", []string{"Wireless Mouse"}},
		{"matches category", "fashion", []string{"Blue Cotton Shirt", "Red Jacket"}},
		{"matches description", "mechanical", []string{"Gaming Keyboard"}},
		{"no match", "submarine", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := store.SearchAnyField(ctx, tt.text, 6)
			require.NoError(t, err)
			titles := make([]string, 0, len(products))
			for _, p := range products {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.expected, titles)
		})
	}
}

func TestMemoryStore_Limit(t *testing.T) {
	products := make([]models.ProductSummary, 0, 10)
	for _, title := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"} {
		products = append(products, models.ProductSummary{ID: title, Title: title, Category: "bulk"})
	}
	store := NewMemoryStore(products)

	results, err := store.FindByCategorySubstring(context.Background(), "bulk", 6)
	require.NoError(t, err)
	assert.Len(t, results, 6)

	results, err = store.FindByCategorySubstring(context.Background(), "bulk", 0)
	require.NoError(t, err)
	assert.Len(t, results, 10, "zero limit means unbounded at the store level")
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := seededStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.FindByTitleTokensAll(ctx, []string{"blue"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = store.SearchAnyField(ctx, "blue", 6)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestMemoryStore_Load(t *testing.T) {
	store := NewMemoryStore(nil)
	assert.Equal(t, 0, store.Len())

	store.Load([]models.ProductSummary{{ID: "p1", Title: "Desk Lamp"}})
	assert.Equal(t, 1, store.Len())
}
