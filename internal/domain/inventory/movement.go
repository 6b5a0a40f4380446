package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	// MovementPurchaseReceipt records stock entering through a purchase
	MovementPurchaseReceipt MovementType = "purchase_receipt"
	// MovementOrderFulfillment records stock leaving through a sales order
	MovementOrderFulfillment MovementType = "order_fulfillment"
	// MovementAdjustment records a manual correction
	MovementAdjustment MovementType = "adjustment"
)

// IsValid checks if the movement type is a known value
func (t MovementType) IsValid() bool {
	switch t {
	case MovementPurchaseReceipt, MovementOrderFulfillment, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement is one append-only ledger row keyed by variant and size.
// The per-size counter on the variant is a materialized projection of
// this ledger; each movement carries the counter snapshot around it so
// stock can be recomputed and audited.
type StockMovement struct {
	shared.BaseEntity
	VariantID     uuid.UUID    `gorm:"type:uuid;not null;index:idx_movements_variant_size"`
	Size          string       `gorm:"type:varchar(32);not null;index:idx_movements_variant_size"`
	MovementType  MovementType `gorm:"type:varchar(32);not null;index"`
	Quantity      int64        `gorm:"not null"`
	StockBefore   int64        `gorm:"not null"`
	StockAfter    int64        `gorm:"not null"`
	ReferenceType string       `gorm:"type:varchar(32)"`
	ReferenceID   *uuid.UUID   `gorm:"type:uuid;index"`
	Note          string       `gorm:"type:text"`
}

// TableName returns the database table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a ledger row with validation. Quantity is a
// signed delta and must reconcile the before/after snapshots.
func NewStockMovement(variantID uuid.UUID, size string, movementType MovementType, quantity, stockBefore, stockAfter int64) (*StockMovement, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT_REFERENCE", "Stock movement requires a variant reference")
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, shared.NewDomainError("INVALID_SIZE_LABEL", "Stock movement requires a size label")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Unknown stock movement type")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity cannot be zero")
	}
	if stockBefore < 0 || stockAfter < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock snapshots cannot be negative")
	}
	if stockBefore+quantity != stockAfter {
		return nil, shared.NewDomainError("INCONSISTENT_MOVEMENT", "Stock snapshots do not reconcile with the movement quantity")
	}
	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		VariantID:    variantID,
		Size:         size,
		MovementType: movementType,
		Quantity:     quantity,
		StockBefore:  stockBefore,
		StockAfter:   stockAfter,
	}, nil
}

// WithReference attaches the originating document
func (m *StockMovement) WithReference(refType string, refID uuid.UUID) *StockMovement {
	m.ReferenceType = refType
	m.ReferenceID = &refID
	return m
}

// WithNote attaches a free-form note
func (m *StockMovement) WithNote(note string) *StockMovement {
	m.Note = note
	return m
}
