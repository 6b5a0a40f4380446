package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/shared"
)

// PurchaseOrderRepository persists purchase orders with their items
type PurchaseOrderRepository interface {
	shared.Repository[PurchaseOrder]
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*PurchaseOrder, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	SaveWithLock(ctx context.Context, order *PurchaseOrder) error
}

// SalesOrderRepository persists sales orders with their items
type SalesOrderRepository interface {
	shared.Repository[SalesOrder]
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)
	SaveWithLock(ctx context.Context, order *SalesOrder) error
	ReplaceItems(ctx context.Context, order *SalesOrder) error
}
