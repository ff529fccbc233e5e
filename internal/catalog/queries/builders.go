// internal/catalog/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownQueryKind = errors.New("unknown query kind")
	ErrMissingIndex     = errors.New("index name is required")
)

// Query kinds understood by the catalog index.
const (
	KindTitleAll = "title_all"
	KindCategory = "category"
	KindSection  = "section"
	KindAnyField = "any_field"
)

// ProductQuery describes one catalog search request.
type ProductQuery struct {
	Index  string
	Kind   string
	Tokens []string
	Text   string
	Limit  int
}

// BuildQuery builds an Elasticsearch search request for the given query kind.
func BuildQuery(pq ProductQuery) (*esapi.SearchRequest, error) {
	if pq.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch pq.Kind {
	case KindTitleAll:
		queryBody = buildTitleAllQuery(pq)
	case KindCategory:
		queryBody = buildFieldSubstringQuery("category", pq)
	case KindSection:
		queryBody = buildFieldSubstringQuery("section", pq)
	case KindAnyField:
		queryBody = buildAnyFieldQuery(pq)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownQueryKind, pq.Kind)
	}

	body, _ := json.Marshal(queryBody)

	size := pq.Limit
	if size < 1 {
		size = 1
	}

	req := esapi.SearchRequest{
		Index: []string{pq.Index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	return &req, nil
}

// buildTitleAllQuery ANDs one wildcard clause per token so multi-word
// queries narrow rather than broaden results.
func buildTitleAllQuery(pq ProductQuery) map[string]interface{} {
	mustClauses := make([]interface{}, 0, len(pq.Tokens))
	for _, tok := range pq.Tokens {
		mustClauses = append(mustClauses, wildcardClause("title", tok))
	}
	if len(mustClauses) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_none": map[string]interface{}{}},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": mustClauses},
		},
		"sort": []map[string]interface{}{{"title.keyword": "asc"}},
	}
}

func buildFieldSubstringQuery(field string, pq ProductQuery) map[string]interface{} {
	return map[string]interface{}{
		"query": wildcardClause(field, pq.Text),
		"sort":  []map[string]interface{}{{"title.keyword": "asc"}},
	}
}

// buildAnyFieldQuery ORs the substring across title, category and
// description for the keyword fallback search.
func buildAnyFieldQuery(pq ProductQuery) map[string]interface{} {
	shouldClauses := []interface{}{
		wildcardClause("title", pq.Text),
		wildcardClause("category", pq.Text),
		wildcardClause("description", pq.Text),
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should":               shouldClauses,
				"minimum_should_match": 1,
			},
		},
		"sort": []map[string]interface{}{{"title.keyword": "asc"}},
	}
}

func wildcardClause(field, text string) map[string]interface{} {
	return map[string]interface{}{
		"wildcard": map[string]interface{}{
			field: map[string]interface{}{
				"value":            "*" + escapeWildcard(text) + "*",
				"case_insensitive": true,
			},
		},
	}
}

// escapeWildcard neutralizes user-supplied wildcard metacharacters so the
// substring contract holds literally.
func escapeWildcard(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "*", "\\*")
	text = strings.ReplaceAll(text, "?", "\\?")
	return text
}
