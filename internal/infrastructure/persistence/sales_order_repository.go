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

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order with its items
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
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

// FindByCustomer finds sales orders for a customer
func (r *GormSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.SalesOrder{}).Where("customer_id = ?", customerID),
		filter,
	)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds all sales orders matching the filter
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)
	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a sales order together with its items
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
				Delete(&trade.OrderItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&trade.OrderItem{}).Error; err != nil {
				return err
			}
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock persists a status change under an optimistic lock. The domain
// layer bumps the version first, so the row must still hold the previous one.
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	result := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
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
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Sales order was modified by another transaction")
	}
	return nil
}

// ReplaceItems rewrites the order header and the full item set under an
// optimistic lock. Omitted items are removed, every incoming item is written.
func (r *GormSalesOrderRepository) ReplaceItems(ctx context.Context, order *trade.SalesOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&trade.SalesOrder{}).
			Where("id = ? AND version = ?", order.ID, order.Version-1).
			Updates(map[string]interface{}{
				"customer_id":     order.CustomerID,
				"order_date":      order.OrderDate,
				"status":          order.Status,
				"discount_type":   order.DiscountType,
				"discount_value":  order.DiscountValue,
				"tax_type":        order.TaxType,
				"igst_rate":       order.IGSTRate,
				"cgst_rate":       order.CGSTRate,
				"sgst_rate":       order.SGSTRate,
				"subtotal":        order.Subtotal,
				"discount_amount": order.DiscountAmount,
				"taxable_amount":  order.TaxableAmount,
				"cgst":            order.CGST,
				"sgst":            order.SGST,
				"igst":            order.IGST,
				"total_amount":    order.TotalAmount,
				"notes":           order.Notes,
				"version":         order.Version,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENCY_CONFLICT", "Sales order was modified by another transaction")
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&trade.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Create(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a sales order and its items
func (r *GormSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&trade.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.SalesOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts sales orders matching the filter
func (r *GormSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSalesOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, SalesOrderSortFields, "created_at")
	return query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormSalesOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("notes ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
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

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
