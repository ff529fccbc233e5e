// internal/models/product.go
package models

// Section is a fixed merchandising bucket assigned to a product,
// distinct from its category.
type Section string

const (
	SectionSpotlight Section = "spotlight"
	SectionTrending  Section = "trending"
	SectionInDemand  Section = "indemand"
	SectionEverybody Section = "everybody"
)

// ValidSections lists every known merchandising section.
var ValidSections = []Section{
	SectionSpotlight,
	SectionTrending,
	SectionInDemand,
	SectionEverybody,
}

// IsValidSection reports whether s names a known merchandising section.
func IsValidSection(s string) bool {
	for _, sec := range ValidSections {
		if string(sec) == s {
			return true
		}
	}
	return false
}

// ProductSummary is the read-only catalog projection consumed by the
// chatbot resolver. The resolver never mutates it.
type ProductSummary struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Section     Section `json:"section"`
	Description string  `json:"description"`
}
