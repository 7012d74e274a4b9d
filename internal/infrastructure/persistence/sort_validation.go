package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// DirectMappingSortFields contains allowed sort fields for direct mappings
var DirectMappingSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"store_id":        true,
	"code":            true,
	"ingredient_name": true,
	"volume":          true,
	"active":          true,
}

// RecipeMappingSortFields contains allowed sort fields for recipe lines
var RecipeMappingSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"store_id":        true,
	"machine_name":    true,
	"ingredient_name": true,
	"volume":          true,
	"active":          true,
}

// CompositeRecipeSortFields contains allowed sort fields for composite recipe lines
var CompositeRecipeSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"store_id":        true,
	"code":            true,
	"ingredient_name": true,
	"volume":          true,
	"active":          true,
}

// VendingMappingSortFields contains allowed sort fields for vending slot mappings
var VendingMappingSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"device_id":    true,
	"slot":         true,
	"code":         true,
	"product_name": true,
	"store_id":     true,
	"multiplier":   true,
	"is_main":      true,
	"active":       true,
}
