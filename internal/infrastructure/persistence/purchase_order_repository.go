package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByInvoiceNumber finds a purchase order by the supplier invoice number
func (r *GormPurchaseOrderRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*trade.PurchaseOrder, error) {
	var order trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "invoice_number = ?", invoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBySupplier finds purchase orders for a supplier
func (r *GormPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Where("supplier_id = ?", supplierID),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds all purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}), filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a purchase order together with its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("purchase_order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("purchase_order_id = ?", order.ID).
				Delete(&trade.PurchaseItem{}).Error; err != nil {
				return err
			}
		}

		for i := range order.Items {
			order.Items[i].PurchaseOrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock persists a status change under an optimistic lock. The domain
// layer bumps the version before calling, so the database row must still be
// at the previous version. Items are untouched, status transitions never
// rewrite them.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *trade.PurchaseOrder) error {
	result := r.db.WithContext(ctx).
		Model(&trade.PurchaseOrder{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":     order.Status,
			"version":    order.Version,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Purchase order was modified by another transaction")
	}
	return nil
}

// Delete deletes a purchase order and its items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&trade.PurchaseItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("order_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("order_date <= ?", t)
			}
		case "min_amount":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("total_amount >= ?", d)
			}
		case "max_amount":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("total_amount <= ?", d)
			}
		}
	}

	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
