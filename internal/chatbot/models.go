// internal/chatbot/models.go
package chatbot

import "storebot/internal/models"

// IntentKind tags the classified shape of a user's question.
type IntentKind string

const (
	IntentProductInfo    IntentKind = "product_info"
	IntentCategoryList   IntentKind = "category_list"
	IntentSectionList    IntentKind = "section_list"
	IntentFallbackSearch IntentKind = "fallback_search"
)

// Field names a product attribute the user asked about.
type Field string

const (
	FieldPrice       Field = "price"
	FieldDescription Field = "description"
)

// Intent is the resolver's structured query. Exactly one kind is active
// per resolution call; the parameter fields of the other kinds are empty.
type Intent struct {
	Kind             IntentKind `json:"kind"`
	ProductNameQuery string     `json:"productNameQuery,omitempty"`
	RequestedFields  []Field    `json:"requestedFields,omitempty"`
	Category         string     `json:"category,omitempty"`
	Section          string     `json:"section,omitempty"`
	RawText          string     `json:"rawText,omitempty"`
}

// WantsField reports whether f was requested. An empty RequestedFields set
// on a ProductInfo intent means "show the default price line", so price is
// implied when nothing was named.
func (i Intent) WantsField(f Field) bool {
	if len(i.RequestedFields) == 0 {
		return f == FieldPrice
	}
	for _, rf := range i.RequestedFields {
		if rf == f {
			return true
		}
	}
	return false
}

// ResolutionResult is the resolver's answer: display text plus the bounded
// product list backing it. Produced fresh per request, never persisted by
// the resolver itself.
type ResolutionResult struct {
	ReplyText string                  `json:"reply"`
	Products  []models.ProductSummary `json:"products"`
}
