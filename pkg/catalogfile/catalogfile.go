// pkg/catalogfile/catalogfile.go
package catalogfile

import (
	"encoding/json"
	"fmt"
	"os"

	"storebot/internal/models"
)

// CatalogFile is a product export: the JSON document format used to seed
// catalog backends.
type CatalogFile struct {
	Version  string                  `json:"version"`
	Products []models.ProductSummary `json:"products"`
}

// Load reads and validates a catalog file from disk.
func Load(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateJSON(data); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}

	var cf CatalogFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return &cf, nil
}
