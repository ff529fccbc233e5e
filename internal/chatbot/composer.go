// internal/chatbot/composer.go
package chatbot

import (
	"fmt"
	"strconv"
	"strings"

	"storebot/internal/models"
)

// The composer is pure formatting: it never re-queries the store and is
// deterministic for identical inputs.

func composeProductInfo(intent Intent, product *models.ProductSummary) string {
	if product == nil {
		return fmt.Sprintf("Sorry, I couldn't find a product matching %q.", intent.ProductNameQuery)
	}

	lines := []string{}
	if intent.WantsField(FieldPrice) {
		lines = append(lines, fmt.Sprintf("%s costs %s.", product.Title, formatPrice(product.Price)))
	}
	if intent.WantsField(FieldDescription) {
		lines = append(lines, fmt.Sprintf("%s: %s", product.Title, product.Description))
	}
	return strings.Join(lines, "\n")
}

func composeCategoryList(category string, products []models.ProductSummary) string {
	if len(products) == 0 {
		return fmt.Sprintf("No products found in the %q category.", category)
	}
	return fmt.Sprintf("Here are some products in the %q category:\n%s", category, bulletList(products))
}

func composeSectionList(section string, products []models.ProductSummary) string {
	if len(products) == 0 {
		return fmt.Sprintf("No products found in the %q section.", section)
	}
	return fmt.Sprintf("Here are our %s picks:\n%s", section, bulletList(products))
}

func composeFallback(rawText string, products []models.ProductSummary) string {
	if len(products) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find anything matching %q.", rawText)
	}
	return fmt.Sprintf("Here's what I found for %q:\n%s", rawText, bulletList(products))
}

func bulletList(products []models.ProductSummary) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s - %s", p.Title, formatPrice(p.Price)))
	}
	return strings.Join(lines, "\n")
}

// formatPrice renders a currency-agnostic price without trailing zeros,
// so 799 prints as "799" and 12.50 as "12.5".
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
