package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by its ID
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindByProduct finds all variants of a product
func (r *GormVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Variant, error) {
	var variants []catalog.Variant
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FindByBarcode finds a variant by its barcode
func (r *GormVariantRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Variant, error) {
	var variant catalog.Variant
	if err := r.db.WithContext(ctx).First(&variant, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &variant, nil
}

// FindAll finds all variants matching the filter
func (r *GormVariantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Variant, error) {
	var variants []catalog.Variant
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Variant{}), filter)
	if err := query.Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// Save creates or updates a variant
func (r *GormVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// SaveWithLock persists the variant's size counters under an optimistic lock.
// The domain layer may apply several counter mutations inside one transaction,
// so the lock version is checked against the loaded value and bumped exactly
// once here rather than per mutation.
func (r *GormVariantRepository) SaveWithLock(ctx context.Context, variant *catalog.Variant) error {
	loadedVersion := variant.Version
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(variant).
		Where("id = ? AND version = ?", variant.ID, loadedVersion).
		Updates(map[string]interface{}{
			"sizes":      variant.Sizes,
			"version":    loadedVersion + 1,
			"updated_at": now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Variant was modified by another transaction")
	}

	variant.Version = loadedVersion + 1
	variant.UpdatedAt = now
	return nil
}

// Delete deletes a variant
func (r *GormVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Variant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts variants matching the filter
func (r *GormVariantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Variant{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormVariantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, VariantSortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormVariantRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR barcode ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}
	return query
}

// Ensure GormVariantRepository implements VariantRepository
var _ catalog.VariantRepository = (*GormVariantRepository)(nil)
