package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/pricing"
	"github.com/stockbook/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of a sales order.
// The vocabulary is intentionally distinct from PurchaseOrderStatus.
type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderReview   OrderStatus = "review"
	OrderApproved OrderStatus = "approved"
)

// IsValid checks if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderReview, OrderApproved:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// orderTransitions is the complete closed transition table.
// approved is terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:  {OrderReview, OrderApproved},
	OrderReview:   {OrderPending, OrderApproved},
	OrderApproved: {},
}

// CanTransitionTo checks if the status can move to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// OrderItem is a line on a sales order referencing a variant and size
type OrderItem struct {
	shared.BaseEntity
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Size         string          `gorm:"type:varchar(32);not null"`
	Quantity     int64           `gorm:"not null"`
	Rate         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineDiscount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates an order item with validation. The line total
// is computed here, exact, from quantity, rate and line discount.
func NewOrderItem(variantID uuid.UUID, size string, quantity int64, rate, lineDiscount decimal.Decimal) (*OrderItem, error) {
	if variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VARIANT_REFERENCE", "Order item requires a variant reference")
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return nil, shared.NewDomainError("INVALID_SIZE_LABEL", "Order item requires a size label")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() || lineDiscount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Money fields cannot be negative")
	}
	total := rate.Mul(decimal.NewFromInt(quantity)).Sub(lineDiscount)
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Line discount exceeds the line amount")
	}
	return &OrderItem{
		BaseEntity:   shared.NewBaseEntity(),
		VariantID:    variantID,
		Size:         size,
		Quantity:     quantity,
		Rate:         rate,
		LineDiscount: lineDiscount,
		TotalPrice:   total,
	}, nil
}

// PricingLine converts the item to a pricing calculator line
func (i *OrderItem) PricingLine() pricing.Line {
	return pricing.Line{
		Quantity:     i.Quantity,
		UnitPrice:    i.Rate,
		LineDiscount: i.LineDiscount,
	}
}

// SalesOrder is a customer order. Its money fields are computed once,
// through the pricing calculator, at creation and full update.
type SalesOrder struct {
	shared.BaseAggregateRoot
	CustomerID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	OrderDate      time.Time            `gorm:"not null"`
	Status         OrderStatus          `gorm:"type:varchar(16);not null;index"`
	DiscountType   pricing.DiscountType `gorm:"type:varchar(16);not null;default:'none'"`
	DiscountValue  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TaxType        pricing.TaxType      `gorm:"type:varchar(16);not null;default:'igst'"`
	IGSTRate       decimal.Decimal      `gorm:"type:decimal(8,4);not null;default:0;column:igst_rate"`
	CGSTRate       decimal.Decimal      `gorm:"type:decimal(8,4);not null;default:0;column:cgst_rate"`
	SGSTRate       decimal.Decimal      `gorm:"type:decimal(8,4);not null;default:0;column:sgst_rate"`
	Subtotal       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	TaxableAmount  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	CGST           decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0;column:cgst"`
	SGST           decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0;column:sgst"`
	IGST           decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0;column:igst"`
	TotalAmount    decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Notes          string               `gorm:"type:text"`
	Items          []OrderItem          `gorm:"foreignKey:OrderID"`
}

// TableName returns the database table name
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a sales order in pending status
func NewSalesOrder(customerID uuid.UUID, orderDate time.Time, notes string) (*SalesOrder, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_REFERENCE", "Sales order requires a customer reference")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	return &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		OrderDate:         orderDate,
		Status:            OrderPending,
		DiscountType:      pricing.DiscountNone,
		TaxType:           pricing.TaxIGST,
		Notes:             notes,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line item
func (o *SalesOrder) AddItem(item *OrderItem) {
	item.OrderID = o.ID
	o.Items = append(o.Items, *item)
	o.Touch()
}

// ReplaceItems swaps the whole item collection. Any item missing from
// the new set is dropped, this is a full replace, not a patch.
func (o *SalesOrder) ReplaceItems(items []*OrderItem) {
	o.Items = make([]OrderItem, 0, len(items))
	for _, item := range items {
		item.OrderID = o.ID
		o.Items = append(o.Items, *item)
	}
	o.Touch()
}

// SetBillDiscount replaces the bill-level discount descriptor
func (o *SalesOrder) SetBillDiscount(discount pricing.BillDiscount) error {
	if !discount.Type.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Unknown bill discount type")
	}
	o.DiscountType = discount.Type
	o.DiscountValue = discount.Value
	o.Touch()
	return nil
}

// SetTaxConfig replaces the tax descriptor
func (o *SalesOrder) SetTaxConfig(tax pricing.TaxConfig) error {
	if !tax.Type.IsValid() {
		return shared.NewDomainError("INVALID_TAX_TYPE", "Unknown tax type")
	}
	o.TaxType = tax.Type
	o.IGSTRate = tax.IGSTRate
	o.CGSTRate = tax.CGSTRate
	o.SGSTRate = tax.SGSTRate
	o.Touch()
	return nil
}

// BillDiscount returns the stored discount descriptor
func (o *SalesOrder) BillDiscount() pricing.BillDiscount {
	return pricing.BillDiscount{Type: o.DiscountType, Value: o.DiscountValue}
}

// TaxConfig returns the stored tax descriptor
func (o *SalesOrder) TaxConfig() pricing.TaxConfig {
	return pricing.TaxConfig{
		Type:     o.TaxType,
		IGSTRate: o.IGSTRate,
		CGSTRate: o.CGSTRate,
		SGSTRate: o.SGSTRate,
	}
}

// RecalculateTotals runs the pricing calculator over the current items
// and stores the finalized breakdown.
func (o *SalesOrder) RecalculateTotals() error {
	lines := make([]pricing.Line, 0, len(o.Items))
	for i := range o.Items {
		lines = append(lines, o.Items[i].PricingLine())
	}
	totals, err := pricing.ComputeBill(lines, o.BillDiscount(), o.TaxConfig())
	if err != nil {
		return err
	}
	o.Subtotal = totals.Subtotal
	o.DiscountAmount = totals.DiscountAmount
	o.TaxableAmount = totals.Taxable
	o.CGST = totals.CGST
	o.SGST = totals.SGST
	o.IGST = totals.IGST
	o.TotalAmount = totals.Total
	o.Touch()
	o.IncrementVersion()
	return nil
}

// TransitionTo moves the order along the transition table
func (o *SalesOrder) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", "Transition from "+o.Status.String()+" to "+target.String()+" is not allowed")
	}
	from := o.Status
	o.Status = target
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o.ID, from, target))
	return nil
}

// SetStatus forces a status, used by full update where the caller
// supplies the stored state directly.
func (o *SalesOrder) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	o.Status = status
	o.Touch()
	return nil
}

// SetNotes replaces the free-form notes
func (o *SalesOrder) SetNotes(notes string) {
	o.Notes = notes
	o.Touch()
}
