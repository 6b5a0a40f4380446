package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns DESC when the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Returns defaultField when the input is empty or not whitelisted.
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

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"hsn_code":   true,
}

// VariantSortFields contains allowed sort fields for variants
var VariantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"barcode":    true,
}

// PartySortFields contains allowed sort fields for suppliers and customers
var PartySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"gstin":      true,
	"state_code": true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"order_date":     true,
	"status":         true,
	"total_amount":   true,
}

// SalesOrderSortFields contains allowed sort fields for sales orders
var SalesOrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_date":   true,
	"status":       true,
	"total_amount": true,
}

// MovementSortFields contains allowed sort fields for stock movements
var MovementSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"size":       true,
}
