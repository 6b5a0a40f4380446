package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/trade"
)

// PurchaseItemRequest is one line of a purchase payload
type PurchaseItemRequest struct {
	VariantID  uuid.UUID       `json:"variant_id" binding:"required"`
	Size       string          `json:"size" binding:"required,max=32"`
	Quantity   int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"decimalstring"`
	Discount   decimal.Decimal `json:"discount" binding:"decimalstring"`
	TotalPrice decimal.Decimal `json:"total_price" binding:"decimalstring"`
}

// RecordPurchaseRequest carries a full purchase payload. The bill money
// fields arrive already computed by the caller and are stored as-is.
type RecordPurchaseRequest struct {
	SupplierID     uuid.UUID             `json:"supplier_id" binding:"required"`
	InvoiceNumber  string                `json:"invoice_number" binding:"required,max=64"`
	OrderDate      time.Time             `json:"order_date"`
	Status         string                `json:"status" binding:"omitempty,oneof=PENDING ORDERED APPROVED"`
	Subtotal       decimal.Decimal       `json:"subtotal" binding:"decimalstring"`
	DiscountAmount decimal.Decimal       `json:"discount_amount" binding:"decimalstring"`
	TaxableAmount  decimal.Decimal       `json:"taxable_amount" binding:"decimalstring"`
	CGST           decimal.Decimal       `json:"cgst" binding:"decimalstring"`
	SGST           decimal.Decimal       `json:"sgst" binding:"decimalstring"`
	IGST           decimal.Decimal       `json:"igst" binding:"decimalstring"`
	TotalAmount    decimal.Decimal       `json:"total_amount" binding:"decimalstring"`
	Items          []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordPurchaseResponse returns the created purchase order id
type RecordPurchaseResponse struct {
	ID uuid.UUID `json:"id"`
}

// PurchaseItemResponse is one purchase line in a response
type PurchaseItemResponse struct {
	ID         uuid.UUID `json:"id"`
	VariantID  uuid.UUID `json:"variant_id"`
	Size       string    `json:"size"`
	Quantity   int64     `json:"quantity"`
	UnitPrice  string    `json:"unit_price"`
	Discount   string    `json:"discount"`
	TotalPrice string    `json:"total_price"`
}

// PurchaseOrderResponse is the outward shape of a purchase order.
// Money fields are emitted as exact decimal strings.
type PurchaseOrderResponse struct {
	ID             uuid.UUID              `json:"id"`
	InvoiceNumber  string                 `json:"invoice_number"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	OrderDate      time.Time              `json:"order_date"`
	Status         string                 `json:"status"`
	Subtotal       string                 `json:"subtotal"`
	DiscountAmount string                 `json:"discount_amount"`
	TaxableAmount  string                 `json:"taxable_amount"`
	CGST           string                 `json:"cgst"`
	SGST           string                 `json:"sgst"`
	IGST           string                 `json:"igst"`
	TotalAmount    string                 `json:"total_amount"`
	Items          []PurchaseItemResponse `json:"items"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ToPurchaseOrderResponse maps a purchase order to its response shape
func ToPurchaseOrderResponse(order *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, PurchaseItemResponse{
			ID:         item.ID,
			VariantID:  item.VariantID,
			Size:       item.Size,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
			Discount:   item.Discount.String(),
			TotalPrice: item.TotalPrice.String(),
		})
	}
	return PurchaseOrderResponse{
		ID:             order.ID,
		InvoiceNumber:  order.InvoiceNumber,
		SupplierID:     order.SupplierID,
		OrderDate:      order.OrderDate,
		Status:         order.Status.String(),
		Subtotal:       order.Subtotal.String(),
		DiscountAmount: order.DiscountAmount.String(),
		TaxableAmount:  order.TaxableAmount.String(),
		CGST:           order.CGST.String(),
		SGST:           order.SGST.String(),
		IGST:           order.IGST.String(),
		TotalAmount:    order.TotalAmount.String(),
		Items:          items,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// ApprovePurchaseResponse acknowledges a receipt approval
type ApprovePurchaseResponse struct {
	Status        string                `json:"status"`
	PurchaseOrder PurchaseOrderResponse `json:"purchase_order"`
}

// BillDiscountRequest is the bill-level discount descriptor of a payload
type BillDiscountRequest struct {
	Type  string          `json:"type" binding:"omitempty,oneof=none percentage amount"`
	Value decimal.Decimal `json:"value" binding:"decimalstring"`
}

// TaxConfigRequest is the tax descriptor of a payload
type TaxConfigRequest struct {
	Type     string          `json:"type" binding:"omitempty,oneof=igst cgst_sgst"`
	IGSTRate decimal.Decimal `json:"igst_rate" binding:"decimalstring"`
	CGSTRate decimal.Decimal `json:"cgst_rate" binding:"decimalstring"`
	SGSTRate decimal.Decimal `json:"sgst_rate" binding:"decimalstring"`
}

// OrderItemRequest is one line of an order payload
type OrderItemRequest struct {
	VariantID    uuid.UUID       `json:"variant_id" binding:"required"`
	Size         string          `json:"size" binding:"required,max=32"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	Rate         decimal.Decimal `json:"rate" binding:"decimalstring"`
	LineDiscount decimal.Decimal `json:"line_discount" binding:"decimalstring"`
}

// CreateOrderRequest carries a new sales order payload
type CreateOrderRequest struct {
	CustomerID uuid.UUID            `json:"customer_id" binding:"required"`
	OrderDate  time.Time            `json:"order_date"`
	Notes      string               `json:"notes" binding:"max=1000"`
	Discount   *BillDiscountRequest `json:"discount"`
	Tax        *TaxConfigRequest    `json:"tax"`
	Items      []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest fully replaces the mutable parts of an order.
// The item collection is replaced wholesale: omitted items are dropped.
type UpdateOrderRequest struct {
	Status   string               `json:"status" binding:"omitempty,oneof=pending review approved"`
	Notes    string               `json:"notes" binding:"max=1000"`
	Discount *BillDiscountRequest `json:"discount"`
	Tax      *TaxConfigRequest    `json:"tax"`
	Items    []OrderItemRequest   `json:"items" binding:"required,min=1,dive"`
}

// TransitionStatusRequest asks for a guarded status move. Status is the
// caller's view of the current status; when supplied and stale, the
// call is acknowledged as a no-op.
type TransitionStatusRequest struct {
	Status    string `json:"status" binding:"omitempty,oneof=pending review approved"`
	NewStatus string `json:"new_status" binding:"required,oneof=pending review approved"`
}

// TransitionStatusResponse acknowledges the transition attempt.
// Transitioned is false when the call was ignored as a no-op.
type TransitionStatusResponse struct {
	ID           uuid.UUID `json:"id"`
	Status       string    `json:"status"`
	Transitioned bool      `json:"transitioned"`
}

// OrderItemResponse is one order line with resolved catalog projections
type OrderItemResponse struct {
	ID           uuid.UUID `json:"id"`
	VariantID    uuid.UUID `json:"variant_id"`
	VariantName  string    `json:"variant_name,omitempty"`
	ProductID    uuid.UUID `json:"product_id,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	Size         string    `json:"size"`
	Quantity     int64     `json:"quantity"`
	Rate         string    `json:"rate"`
	LineDiscount string    `json:"line_discount"`
	TotalPrice   string    `json:"total_price"`
}

// CustomerSummary is the resolved customer projection on an order
type CustomerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	GSTIN string    `json:"gstin,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

// OrderResponse is the outward shape of a sales order
type OrderResponse struct {
	ID             uuid.UUID           `json:"id"`
	CustomerID     uuid.UUID           `json:"customer_id"`
	Customer       *CustomerSummary    `json:"customer,omitempty"`
	OrderDate      time.Time           `json:"order_date"`
	Status         string              `json:"status"`
	DiscountType   string              `json:"discount_type"`
	DiscountValue  string              `json:"discount_value"`
	TaxType        string              `json:"tax_type"`
	IGSTRate       string              `json:"igst_rate"`
	CGSTRate       string              `json:"cgst_rate"`
	SGSTRate       string              `json:"sgst_rate"`
	Subtotal       string              `json:"subtotal"`
	DiscountAmount string              `json:"discount_amount"`
	TaxableAmount  string              `json:"taxable_amount"`
	CGST           string              `json:"cgst"`
	SGST           string              `json:"sgst"`
	IGST           string              `json:"igst"`
	TotalAmount    string              `json:"total_amount"`
	Notes          string              `json:"notes,omitempty"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ToOrderResponse maps a sales order to its response shape
func ToOrderResponse(order *trade.SalesOrder) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:           item.ID,
			VariantID:    item.VariantID,
			Size:         item.Size,
			Quantity:     item.Quantity,
			Rate:         item.Rate.String(),
			LineDiscount: item.LineDiscount.String(),
			TotalPrice:   item.TotalPrice.String(),
		})
	}
	return OrderResponse{
		ID:             order.ID,
		CustomerID:     order.CustomerID,
		OrderDate:      order.OrderDate,
		Status:         order.Status.String(),
		DiscountType:   string(order.DiscountType),
		DiscountValue:  order.DiscountValue.String(),
		TaxType:        string(order.TaxType),
		IGSTRate:       order.IGSTRate.String(),
		CGSTRate:       order.CGSTRate.String(),
		SGSTRate:       order.SGSTRate.String(),
		Subtotal:       order.Subtotal.String(),
		DiscountAmount: order.DiscountAmount.String(),
		TaxableAmount:  order.TaxableAmount.String(),
		CGST:           order.CGST.String(),
		SGST:           order.SGST.String(),
		IGST:           order.IGST.String(),
		TotalAmount:    order.TotalAmount.String(),
		Notes:          order.Notes,
		Items:          items,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

// AdjustStockRequest is a manual stock correction payload
type AdjustStockRequest struct {
	VariantID uuid.UUID `json:"variant_id" binding:"required"`
	Size      string    `json:"size" binding:"required,max=32"`
	Delta     int64     `json:"delta" binding:"required"`
	Note      string    `json:"note" binding:"max=255"`
}

// AdjustStockResponse returns the counter after the adjustment
type AdjustStockResponse struct {
	VariantID uuid.UUID `json:"variant_id"`
	Size      string    `json:"size"`
	Stock     int64     `json:"stock"`
}
