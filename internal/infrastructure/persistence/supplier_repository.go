package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByGSTIN finds a supplier by its GSTIN
func (r *GormSupplierRepository) FindByGSTIN(ctx context.Context, gstin string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "gstin = ?", gstin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := applyPartyFilter(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter, true)
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete deletes a supplier
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPartyFilter(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter, false)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyPartyFilter applies the shared supplier/customer filter options.
// Pagination and ordering are skipped for count queries.
func applyPartyFilter(query *gorm.DB, filter shared.Filter, paginate bool) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR gstin ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "state_code":
			query = query.Where("state_code = ?", value)
		}
	}

	if !paginate {
		return query
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PartySortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
