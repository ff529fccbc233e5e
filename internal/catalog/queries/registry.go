// internal/catalog/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"storebot/internal/models"
)

// QueryResult holds decoded product hits plus search metadata.
type QueryResult struct {
	Products  []models.ProductSummary
	TotalHits int64
}

// Execute runs a ProductQuery against the cluster and decodes product
// documents out of the hits.
func Execute(ctx context.Context, esClient *elasticsearch.Client, pq ProductQuery) (*QueryResult, error) {
	req, err := BuildQuery(pq)
	if err != nil {
		return nil, err
	}

	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.ProductSummary `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	products := make([]models.ProductSummary, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		products = append(products, hit.Source)
	}

	return &QueryResult{
		Products:  products,
		TotalHits: r.Hits.Total.Value,
	}, nil
}
