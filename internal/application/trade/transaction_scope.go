package trade

import (
	"context"

	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/trade"
)

// TransactionScope is the explicit transaction handle for the purchase
// and order engines. Everything executed inside one scope - order row,
// line items, size counters, movement rows - commits or rolls back as
// one atomic unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories touched
// by a stock-affecting operation, all sharing one transaction.
type TransactionalRepositories interface {
	// PurchaseOrderRepo returns the purchase order repository scoped to the transaction
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	// SalesOrderRepo returns the sales order repository scoped to the transaction
	SalesOrderRepo() trade.SalesOrderRepository
	// VariantRepo returns the variant repository scoped to the transaction
	VariantRepo() catalog.VariantRepository
	// MovementRepo returns the stock movement ledger scoped to the transaction
	MovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	purchaseOrderRepo trade.PurchaseOrderRepository
	salesOrderRepo    trade.SalesOrderRepository
	variantRepo       catalog.VariantRepository
	movementRepo      inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	purchaseOrderRepo trade.PurchaseOrderRepository,
	salesOrderRepo trade.SalesOrderRepository,
	variantRepo catalog.VariantRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseOrderRepo: purchaseOrderRepo,
		salesOrderRepo:    salesOrderRepo,
		variantRepo:       variantRepo,
		movementRepo:      movementRepo,
	}
}

// Execute runs the function directly, without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseOrderRepo returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

// SalesOrderRepo returns the sales order repository
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.salesOrderRepo
}

// VariantRepo returns the variant repository
func (s *NoOpTransactionScope) VariantRepo() catalog.VariantRepository {
	return s.variantRepo
}

// MovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
