package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/shared"
)

// ProductRepository persists products
type ProductRepository interface {
	shared.Repository[Product]
	FindByName(ctx context.Context, name string) (*Product, error)
}

// VariantRepository persists variants.
// SaveWithLock guards the size counters against concurrent lost updates.
type VariantRepository interface {
	shared.Repository[Variant]
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)
	FindByBarcode(ctx context.Context, barcode string) (*Variant, error)
	SaveWithLock(ctx context.Context, variant *Variant) error
}
