package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseOrderRepository is a mock implementation of trade.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Save(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, supplierID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) SaveWithLock(ctx context.Context, order *trade.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockSalesOrderRepository is a mock implementation of trade.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) ReplaceItems(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockVariantRepository is a mock implementation of catalog.VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Variant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVariantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVariantRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Variant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Variant, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) SaveWithLock(ctx context.Context, variant *catalog.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) FindByGSTIN(ctx context.Context, gstin string) (*partner.Supplier, error) {
	args := m.Called(ctx, gstin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) AppendAll(ctx context.Context, movements []*inventory.StockMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByVariantAndSize(ctx context.Context, variantID uuid.UUID, size string, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, variantID, size, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) SumQuantity(ctx context.Context, variantID uuid.UUID, size string) (int64, error) {
	args := m.Called(ctx, variantID, size)
	return args.Get(0).(int64), args.Error(1)
}
