// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storebot/internal/models"
)

// PostgresStore backs the catalog with a products table queried through
// ILIKE predicates. The table name comes from configuration, never from
// request input.
type PostgresStore struct {
	db    *sql.DB
	table string
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	if table == "" {
		table = "products"
	}
	return &PostgresStore{db: db, table: table}
}

const productColumns = "id, title, price, category, section, description"

func (s *PostgresStore) FindByTitleTokensAll(ctx context.Context, tokens []string) (*models.ProductSummary, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens))
	for i, tok := range tokens {
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", i+1))
		args = append(args, "%"+tok+"%")
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY title LIMIT 1",
		productColumns, s.table, strings.Join(conds, " AND "),
	)

	row := s.db.QueryRowContext(ctx, query, args...)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPostgresError(ctx, err)
	}
	return p, nil
}

func (s *PostgresStore) FindByCategorySubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE category ILIKE $1 ORDER BY title LIMIT $2",
		productColumns, s.table,
	)
	return s.queryMany(ctx, query, "%"+text+"%", limit)
}

func (s *PostgresStore) FindBySectionSubstring(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE section ILIKE $1 ORDER BY title LIMIT $2",
		productColumns, s.table,
	)
	return s.queryMany(ctx, query, "%"+text+"%", limit)
}

func (s *PostgresStore) SearchAnyField(ctx context.Context, text string, limit int) ([]models.ProductSummary, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE title ILIKE $1 OR category ILIKE $1 OR description ILIKE $1 ORDER BY title LIMIT $2",
		productColumns, s.table,
	)
	return s.queryMany(ctx, query, "%"+text+"%", limit)
}

func (s *PostgresStore) queryMany(ctx context.Context, query, pattern string, limit int) ([]models.ProductSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, pattern, limit)
	if err != nil {
		return nil, mapPostgresError(ctx, err)
	}
	defer rows.Close()

	results := []models.ProductSummary{}
	for rows.Next() {
		var p models.ProductSummary
		var section string
		if err := rows.Scan(&p.ID, &p.Title, &p.Price, &p.Category, &section, &p.Description); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrQueryFailed, err)
		}
		p.Section = models.Section(section)
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPostgresError(ctx, err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.ProductSummary, error) {
	var p models.ProductSummary
	var section string
	if err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Category, &section, &p.Description); err != nil {
		return nil, err
	}
	p.Section = models.Section(section)
	return &p, nil
}

func mapPostgresError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, ctx.Err())
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
