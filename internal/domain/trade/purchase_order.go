package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchasePending   PurchaseOrderStatus = "PENDING"
	PurchaseOrdered   PurchaseOrderStatus = "ORDERED"
	PurchaseApproved  PurchaseOrderStatus = "APPROVED"
	PurchaseReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a known value
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchasePending, PurchaseOrdered, PurchaseApproved, PurchaseReceived, PurchaseCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// purchaseTransitions is the complete closed transition table.
// RECEIVED and CANCELLED are terminal.
var purchaseTransitions = map[PurchaseOrderStatus][]PurchaseOrderStatus{
	PurchasePending:   {PurchaseOrdered, PurchaseApproved, PurchaseReceived, PurchaseCancelled},
	PurchaseOrdered:   {PurchaseApproved, PurchaseReceived, PurchaseCancelled},
	PurchaseApproved:  {PurchaseReceived, PurchaseCancelled},
	PurchaseReceived:  {},
	PurchaseCancelled: {},
}

// CanTransitionTo checks if the status can move to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	for _, allowed := range purchaseTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PurchaseMoney carries the caller-computed bill money fields.
// They are persisted as supplied, never re-derived lazily.
type PurchaseMoney struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	CGST           decimal.Decimal
	SGST           decimal.Decimal
	IGST           decimal.Decimal
	TotalAmount    decimal.Decimal
}

// PurchaseItem is a line on a purchase order, referencing a variant and
// a specific size label. Immutable once created.
type PurchaseItem struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Size            string          `gorm:"type:varchar(32);not null"`
	Quantity        int64           `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Discount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the database table name
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a purchase item with validation
func NewPurchaseItem(variantID uuid.UUID, size string, quantity int64, unitPrice, discount, totalPrice decimal.Decimal) (*PurchaseItem, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT_REFERENCE", "Purchase item requires a variant reference")
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, shared.NewDomainError("INVALID_SIZE_LABEL", "Purchase item requires a size label")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() || discount.IsNegative() || totalPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Money fields cannot be negative")
	}
	return &PurchaseItem{
		BaseEntity: shared.NewBaseEntity(),
		VariantID:  variantID,
		Size:       size,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Discount:   discount,
		TotalPrice: totalPrice,
	}, nil
}

// PurchaseOrder records goods bought from a supplier. Stock counters are
// incremented when the order is recorded, in the same transaction; the
// later receipt approval is a status-only move.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	InvoiceNumber  string              `gorm:"type:varchar(64);not null;uniqueIndex"`
	SupplierID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	OrderDate      time.Time           `gorm:"not null"`
	Status         PurchaseOrderStatus `gorm:"type:varchar(16);not null;index"`
	Subtotal       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TaxableAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	CGST           decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0;column:cgst"`
	SGST           decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0;column:sgst"`
	IGST           decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0;column:igst"`
	TotalAmount    decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Items          []PurchaseItem      `gorm:"foreignKey:PurchaseOrderID"`
}

// TableName returns the database table name
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a purchase order in the supplied status.
// An empty status defaults to PENDING; terminal statuses are rejected.
func NewPurchaseOrder(supplierID uuid.UUID, invoiceNumber string, orderDate time.Time, status PurchaseOrderStatus, money PurchaseMoney) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_REFERENCE", "Purchase order requires a supplier reference")
	}
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if status == "" {
		status = PurchasePending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
	}
	if status == PurchaseReceived || status == PurchaseCancelled {
		return nil, shared.NewDomainError("INVALID_STATUS", "Purchase order cannot be created in a terminal status")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		SupplierID:        supplierID,
		OrderDate:         orderDate,
		Status:            status,
		Subtotal:          money.Subtotal,
		DiscountAmount:    money.DiscountAmount,
		TaxableAmount:     money.TaxableAmount,
		CGST:              money.CGST,
		SGST:              money.SGST,
		IGST:              money.IGST,
		TotalAmount:       money.TotalAmount,
		Items:             make([]PurchaseItem, 0),
	}, nil
}

// AddItem appends a line item
func (po *PurchaseOrder) AddItem(item *PurchaseItem) {
	item.PurchaseOrderID = po.ID
	po.Items = append(po.Items, *item)
	po.Touch()
}

// Receive marks the goods as received. Works exactly once: a second
// call is a conflict, and stock is never touched here.
func (po *PurchaseOrder) Receive() error {
	if po.Status == PurchaseReceived {
		return shared.NewDomainError("ALREADY_RECEIVED", "Purchase order has already been received")
	}
	if !po.Status.CanTransitionTo(PurchaseReceived) {
		return shared.NewDomainError("INVALID_STATE", "Purchase order cannot be received from status "+po.Status.String())
	}
	po.Status = PurchaseReceived
	po.Touch()
	po.IncrementVersion()
	po.AddDomainEvent(NewPurchaseOrderReceivedEvent(po.ID, po.InvoiceNumber))
	return nil
}

// Cancel cancels the purchase order from a non-terminal state
func (po *PurchaseOrder) Cancel() error {
	if !po.Status.CanTransitionTo(PurchaseCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Purchase order cannot be cancelled from status "+po.Status.String())
	}
	po.Status = PurchaseCancelled
	po.Touch()
	po.IncrementVersion()
	return nil
}

// TransitionTo moves the order along the transition table
func (po *PurchaseOrder) TransitionTo(target PurchaseOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status")
	}
	if !po.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Transition from "+po.Status.String()+" to "+target.String()+" is not allowed")
	}
	po.Status = target
	po.Touch()
	po.IncrementVersion()
	return nil
}
