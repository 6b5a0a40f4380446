package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements the append-only movement ledger
// using GORM. Movement rows are only ever inserted.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a single movement row
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// AppendAll inserts a batch of movement rows
func (r *GormStockMovementRepository) AppendAll(ctx context.Context, movements []*inventory.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(movements).Error
}

// FindByVariantAndSize returns the movement history for one size counter,
// newest first unless the filter orders otherwise
func (r *GormStockMovementRepository) FindByVariantAndSize(ctx context.Context, variantID uuid.UUID, size string, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Where("variant_id = ? AND size = ?", variantID, size)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	sortField := ValidateSortField(filter.OrderBy, MovementSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference returns all movements produced by one purchase or order
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SumQuantity sums the signed quantities for one size counter. The result is
// the ledger-derived stock level, which must agree with the counter stored on
// the variant.
func (r *GormStockMovementRepository) SumQuantity(ctx context.Context, variantID uuid.UUID, size string) (int64, error) {
	var result struct {
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("variant_id = ? AND size = ?", variantID, size).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
