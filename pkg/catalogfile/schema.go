// pkg/catalogfile/schema.go
package catalogfile

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const catalogSchemaJSON = `{
  "type": "object",
  "properties": {
    "version": {"type": "string"},
    "products": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "price": {"type": "number", "minimum": 0},
          "category": {"type": "string"},
          "section": {
            "type": "string",
            "enum": ["spotlight", "trending", "indemand", "everybody"]
          },
          "description": {"type": "string"}
        },
        "required": ["id", "title", "price", "category", "section"]
      }
    }
  },
  "required": ["products"]
}`

// ValidateJSON checks a raw catalog document against the product schema.
func ValidateJSON(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(catalogSchemaJSON)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid catalog document: %v", msgs)
	}
	return nil
}
