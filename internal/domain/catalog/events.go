package catalog

import (
	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventTypeVariantStockChanged = "catalog.variant.stock_changed"
)

// VariantStockChangedEvent is raised whenever a size counter moves
type VariantStockChangedEvent struct {
	shared.BaseDomainEvent
	Size     string `json:"size"`
	Delta    int64  `json:"delta"`
	NewStock int64  `json:"new_stock"`
}

// NewVariantStockChangedEvent creates a stock changed event
func NewVariantStockChangedEvent(variantID uuid.UUID, size string, delta, newStock int64) *VariantStockChangedEvent {
	return &VariantStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVariantStockChanged, "Variant", variantID),
		Size:            size,
		Delta:           delta,
		NewStock:        newStock,
	}
}
