package trade

import (
	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/shared"
)

// Event types for the trade domain
const (
	EventTypePurchaseOrderReceived = "trade.purchase_order.received"
	EventTypeOrderStatusChanged    = "trade.sales_order.status_changed"
)

// PurchaseOrderReceivedEvent is raised when goods are marked received
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	InvoiceNumber string `json:"invoice_number"`
}

// NewPurchaseOrderReceivedEvent creates a received event
func NewPurchaseOrderReceivedEvent(orderID uuid.UUID, invoiceNumber string) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, "PurchaseOrder", orderID),
		InvoiceNumber:   invoiceNumber,
	}
}

// OrderStatusChangedEvent is raised on every sales order transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	From OrderStatus `json:"from"`
	To   OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates a status changed event
func NewOrderStatusChangedEvent(orderID uuid.UUID, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "SalesOrder", orderID),
		From:            from,
		To:              to,
	}
}
