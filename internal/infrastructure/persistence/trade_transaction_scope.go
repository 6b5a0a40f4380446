package persistence

import (
	"context"

	apptrade "github.com/stockbook/backend/internal/application/trade"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// Order rows, line items, size counters and movement rows written inside one
// Execute call commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// PurchaseOrderRepo returns the purchase order repository scoped to the transaction
func (r *gormTransactionalRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

// SalesOrderRepo returns the sales order repository scoped to the transaction
func (r *gormTransactionalRepositories) SalesOrderRepo() trade.SalesOrderRepository {
	return NewGormSalesOrderRepository(r.tx)
}

// VariantRepo returns the variant repository scoped to the transaction
func (r *gormTransactionalRepositories) VariantRepo() catalog.VariantRepository {
	return NewGormVariantRepository(r.tx)
}

// MovementRepo returns the movement ledger scoped to the transaction
func (r *gormTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
