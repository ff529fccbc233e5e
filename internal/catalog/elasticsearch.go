// internal/catalog/elasticsearch.go
package catalog

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"storebot/internal/catalog/queries"
	"storebot/internal/models"
)

// ElasticsearchStore backs the catalog with a product index.
type ElasticsearchStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchStore(client *elasticsearch.Client, index string) *ElasticsearchStore {
	if index == "" {
		index = "products"
	}
	return &ElasticsearchStore{client: client, index: index}
}

func (s *ElasticsearchStore) FindByTitleTokensAll(ctx context.Context, tokens []string) (*models.ProductSummary, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	result, err := queries.Execute(ctx, s.client, queries.ProductQuery{
		Index:  s.index,
		Kind:   queries.KindTitleAll,
		Tokens: tokens,
		Limit:  1,
	})
	if err != nil {
		return nil, mapElasticsearchError(ctx, err)
	}
	if len(result.Products) == 0 {
		return nil, nil
	}
	found := result.Products[0]
	return &found, nil
}

func (s *ElasticsearchStore) FindByCategorySubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	return s.search(ctx, queries.KindCategory, text, limit)
}

func (s *ElasticsearchStore) FindBySectionSubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	return s.search(ctx, queries.KindSection, text, limit)
}

func (s *ElasticsearchStore) SearchAnyField(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	return s.search(ctx, queries.KindAnyField, text, limit)
}

func (s *ElasticsearchStore) search(ctx context.Context, kind, text string, limit int) ([]models.ProductSummary, error) {
	result, err := queries.Execute(ctx, s.client, queries.ProductQuery{
		Index: s.index,
		Kind:  kind,
		Text:  text,
		Limit: limit,
	})
	if err != nil {
		return nil, mapElasticsearchError(ctx, err)
	}
	return result.Products, nil
}

func mapElasticsearchError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, ctx.Err())
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
