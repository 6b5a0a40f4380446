package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	service      *OrderService
	orderRepo    *MockSalesOrderRepository
	customerRepo *MockCustomerRepository
	variantRepo  *MockVariantRepository
	productRepo  *MockProductRepository
	movementRepo *MockStockMovementRepository
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	orderRepo := new(MockSalesOrderRepository)
	customerRepo := new(MockCustomerRepository)
	variantRepo := new(MockVariantRepository)
	productRepo := new(MockProductRepository)
	movementRepo := new(MockStockMovementRepository)
	scope := NewNoOpTransactionScope(nil, orderRepo, variantRepo, movementRepo)
	return &orderFixture{
		service:      NewOrderService(orderRepo, customerRepo, variantRepo, productRepo, scope, nil),
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		variantRepo:  variantRepo,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

func testCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("Ritu Boutique", "", "", "27")
	require.NoError(t, err)
	return c
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("computes totals and decrements stock atomically", func(t *testing.T) {
		f := newOrderFixture(t)
		customer := testCustomer(t)
		variant := testVariantWithSizes(t)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil)
		f.variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		f.variantRepo.On("SaveWithLock", ctx, variant).Return(nil)
		f.movementRepo.On("AppendAll", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, CreateOrderRequest{
			CustomerID: customer.ID,
			OrderDate:  time.Now(),
			Discount:   &BillDiscountRequest{Type: "percentage", Value: decimal.NewFromInt(10)},
			Tax:        &TaxConfigRequest{Type: "igst", IGSTRate: decimal.NewFromInt(18)},
			Items: []OrderItemRequest{
				{VariantID: variant.ID, Size: "M", Quantity: 2, Rate: decimal.NewFromInt(100)},
				{VariantID: variant.ID, Size: "L", Quantity: 1, Rate: decimal.NewFromInt(50), LineDiscount: decimal.NewFromInt(5)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "245", resp.Subtotal)
		assert.Equal(t, "220.5", resp.TaxableAmount)
		assert.Equal(t, "39.69", resp.IGST)
		assert.Equal(t, "260.19", resp.TotalAmount)

		assert.Equal(t, int64(8), variant.StockOf("M"))
		assert.Equal(t, int64(3), variant.StockOf("L"))

		movements := f.movementRepo.Calls[0].Arguments.Get(1).([]*inventory.StockMovement)
		require.Len(t, movements, 2)
		assert.Equal(t, inventory.MovementOrderFulfillment, movements[0].MovementType)
		assert.Equal(t, int64(-2), movements[0].Quantity)
	})

	t.Run("insufficient stock rolls the order back", func(t *testing.T) {
		f := newOrderFixture(t)
		customer := testCustomer(t)
		variant := testVariantWithSizes(t)

		f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		f.orderRepo.On("Save", ctx, mock.Anything).Return(nil)
		f.variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			CustomerID: customer.ID,
			Items: []OrderItemRequest{
				{VariantID: variant.ID, Size: "L", Quantity: 5, Rate: decimal.NewFromInt(50)},
			},
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		f.movementRepo.AssertNotCalled(t, "AppendAll", mock.Anything, mock.Anything)
	})

	t.Run("missing customer is a referential error", func(t *testing.T) {
		f := newOrderFixture(t)
		customerID := uuid.New()
		f.customerRepo.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Create(ctx, CreateOrderRequest{
			CustomerID: customerID,
			Items:      []OrderItemRequest{{VariantID: uuid.New(), Size: "M", Quantity: 1, Rate: decimal.NewFromInt(10)}},
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "CUSTOMER_NOT_FOUND", domainErr.Code)
	})

	t.Run("rejects empty item list", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.service.Create(ctx, CreateOrderRequest{CustomerID: uuid.New()})
		assert.Error(t, err)
	})
}

func newStoredOrder(t *testing.T, variant *catalog.Variant) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder(uuid.New(), time.Now(), "")
	require.NoError(t, err)
	item, err := trade.NewOrderItem(variant.ID, "M", 2, decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, err)
	order.AddItem(item)
	require.NoError(t, order.RecalculateTotals())
	return order
}

func TestUpdateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("full replace drops omitted items and reconciles stock", func(t *testing.T) {
		f := newOrderFixture(t)
		variant := testVariantWithSizes(t)
		order := newStoredOrder(t, variant)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("ReplaceItems", ctx, order).Return(nil)
		f.variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		f.variantRepo.On("SaveWithLock", ctx, variant).Return(nil)
		f.movementRepo.On("AppendAll", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Update(ctx, order.ID, UpdateOrderRequest{
			Status: "review",
			Notes:  "resized",
			Items: []OrderItemRequest{
				{VariantID: variant.ID, Size: "L", Quantity: 1, Rate: decimal.NewFromInt(50)},
				{VariantID: variant.ID, Size: "M", Quantity: 3, Rate: decimal.NewFromInt(100)},
			},
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 2)
		assert.Equal(t, "L", resp.Items[0].Size)
		assert.Equal(t, "M", resp.Items[1].Size)
		assert.Equal(t, "review", resp.Status)
		assert.Equal(t, "350", resp.Subtotal)

		// old M decrement of 2 restored, then new M 3 and L 1 applied
		assert.Equal(t, int64(9), variant.StockOf("M"))
		assert.Equal(t, int64(3), variant.StockOf("L"))
	})

	t.Run("missing order is not found", func(t *testing.T) {
		f := newOrderFixture(t)
		id := uuid.New()
		f.orderRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.Update(ctx, id, UpdateOrderRequest{
			Items: []OrderItemRequest{{VariantID: uuid.New(), Size: "M", Quantity: 1, Rate: decimal.NewFromInt(10)}},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTransitionOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("review source transitions", func(t *testing.T) {
		f := newOrderFixture(t)
		variant := testVariantWithSizes(t)
		order := newStoredOrder(t, variant)
		require.NoError(t, order.TransitionTo(trade.OrderReview))

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		resp, err := f.service.TransitionStatus(ctx, order.ID, TransitionStatusRequest{
			Status: "review", NewStatus: "approved",
		})
		require.NoError(t, err)
		assert.True(t, resp.Transitioned)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("any other source is a silent no-op ack", func(t *testing.T) {
		f := newOrderFixture(t)
		variant := testVariantWithSizes(t)
		order := newStoredOrder(t, variant)

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		resp, err := f.service.TransitionStatus(ctx, order.ID, TransitionStatusRequest{
			Status: "pending", NewStatus: "approved",
		})
		require.NoError(t, err)
		assert.False(t, resp.Transitioned)
		assert.Equal(t, "pending", resp.Status)
		f.orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("stale claimed current status is a no-op ack", func(t *testing.T) {
		f := newOrderFixture(t)
		variant := testVariantWithSizes(t)
		order := newStoredOrder(t, variant)
		require.NoError(t, order.TransitionTo(trade.OrderReview))

		f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		resp, err := f.service.TransitionStatus(ctx, order.ID, TransitionStatusRequest{
			Status: "pending", NewStatus: "approved",
		})
		require.NoError(t, err)
		assert.False(t, resp.Transitioned)
		assert.Equal(t, "review", resp.Status)
		f.orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("unknown target status is a validation error", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.service.TransitionStatus(ctx, uuid.New(), TransitionStatusRequest{
			Status: "review", NewStatus: "shipped",
		})
		assert.Error(t, err)
	})
}

func TestGetOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	customer := testCustomer(t)
	variant := testVariantWithSizes(t)
	product, err := catalog.NewProduct("Kurti", "6204")
	require.NoError(t, err)
	variant.ProductID = product.ID
	order := newStoredOrder(t, variant)
	order.CustomerID = customer.ID

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	f.variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
	f.productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	resp, err := f.service.Get(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.Customer)
	assert.Equal(t, "Ritu Boutique", resp.Customer.Name)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Floral Print", resp.Items[0].VariantName)
	assert.Equal(t, "Kurti", resp.Items[0].ProductName)
	assert.Equal(t, "200", resp.Items[0].TotalPrice)
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("applies delta and appends adjustment movement", func(t *testing.T) {
		f := newOrderFixture(t)
		variant := testVariantWithSizes(t)

		f.variantRepo.On("FindByID", ctx, variant.ID).Return(variant, nil)
		f.variantRepo.On("SaveWithLock", ctx, variant).Return(nil)
		f.movementRepo.On("Append", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		resp, err := f.service.AdjustStock(ctx, AdjustStockRequest{
			VariantID: variant.ID, Size: "M", Delta: -4, Note: "damaged pieces",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(6), resp.Stock)

		movement := f.movementRepo.Calls[0].Arguments.Get(1).(*inventory.StockMovement)
		assert.Equal(t, inventory.MovementAdjustment, movement.MovementType)
		assert.Equal(t, "damaged pieces", movement.Note)
	})

	t.Run("zero delta rejected", func(t *testing.T) {
		f := newOrderFixture(t)
		_, err := f.service.AdjustStock(ctx, AdjustStockRequest{VariantID: uuid.New(), Size: "M"})
		assert.Error(t, err)
	})
}
