package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/shared"
)

// StockMovementRepository persists the append-only movement ledger.
// Movements are only ever inserted, never updated or deleted.
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	AppendAll(ctx context.Context, movements []*StockMovement) error
	FindByVariantAndSize(ctx context.Context, variantID uuid.UUID, size string, filter shared.Filter) ([]StockMovement, error)
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]StockMovement, error)
	SumQuantity(ctx context.Context, variantID uuid.UUID, size string) (int64, error)
}
