package partner

import (
	"context"

	"github.com/stockbook/backend/internal/domain/shared"
)

// SupplierRepository persists suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]
	FindByGSTIN(ctx context.Context, gstin string) (*Supplier, error)
}

// CustomerRepository persists customers
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
}
