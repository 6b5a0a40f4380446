package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/pricing"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderService is the order engine. Creating an order computes the bill
// through the pricing calculator and decrements the referenced size
// counters in the same transaction; updating an order reconciles the
// counters against the replaced item set.
type OrderService struct {
	orderRepo    trade.SalesOrderRepository
	customerRepo partner.CustomerRepository
	variantRepo  catalog.VariantRepository
	productRepo  catalog.ProductRepository
	scope        TransactionScope
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo trade.SalesOrderRepository,
	customerRepo partner.CustomerRepository,
	variantRepo catalog.VariantRepository,
	productRepo catalog.ProductRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		variantRepo:  variantRepo,
		productRepo:  productRepo,
		scope:        scope,
		logger:       logger,
	}
}

func toBillDiscount(req *BillDiscountRequest) pricing.BillDiscount {
	if req == nil {
		return pricing.NoDiscount()
	}
	return pricing.BillDiscount{Type: pricing.DiscountType(req.Type), Value: req.Value}
}

func toTaxConfig(req *TaxConfigRequest) pricing.TaxConfig {
	if req == nil {
		return pricing.NoTax()
	}
	return pricing.TaxConfig{
		Type:     pricing.TaxType(req.Type),
		IGSTRate: req.IGSTRate,
		CGSTRate: req.CGSTRate,
		SGSTRate: req.SGSTRate,
	}
}

func buildOrderItems(reqs []OrderItemRequest) ([]*trade.OrderItem, error) {
	items := make([]*trade.OrderItem, 0, len(reqs))
	for _, r := range reqs {
		item, err := trade.NewOrderItem(r.VariantID, r.Size, r.Quantity, r.Rate, r.LineDiscount)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func fulfillmentDeltas(items []trade.OrderItem) []stockDelta {
	deltas := make([]stockDelta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, stockDelta{
			variantID:    item.VariantID,
			size:         item.Size,
			delta:        -item.Quantity,
			movementType: inventory.MovementOrderFulfillment,
		})
	}
	return deltas
}

func restoreDeltas(items []trade.OrderItem) []stockDelta {
	deltas := make([]stockDelta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, stockDelta{
			variantID:    item.VariantID,
			size:         item.Size,
			delta:        item.Quantity,
			movementType: inventory.MovementAdjustment,
		})
	}
	return deltas
}

// Create persists a new order and decrements the per-size counters.
// Insufficient stock on any line rolls the whole transaction back.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order requires at least one item")
	}

	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CUSTOMER_NOT_FOUND", "Customer does not exist")
		}
		return nil, err
	}

	order, err := trade.NewSalesOrder(req.CustomerID, req.OrderDate, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := order.SetBillDiscount(toBillDiscount(req.Discount)); err != nil {
		return nil, err
	}
	if err := order.SetTaxConfig(toTaxConfig(req.Tax)); err != nil {
		return nil, err
	}
	items, err := buildOrderItems(req.Items)
	if err != nil {
		return nil, err
	}
	order.ReplaceItems(items)
	if err := order.RecalculateTotals(); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.SalesOrderRepo().Save(ctx, order); err != nil {
			return err
		}
		movements, err := applyStockDeltas(ctx, repos, order.ID, "sales_order",
			fulfillmentDeltas(order.Items))
		if err != nil {
			return err
		}
		return repos.MovementRepo().AppendAll(ctx, movements)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("total", order.TotalAmount.String()),
		zap.Int("items", len(order.Items)))

	response := ToOrderResponse(order)
	return &response, nil
}

// Update fully replaces the order's mutable state. The item collection
// is swapped wholesale and stock is re-reconciled: decrements of the
// old items are reversed, then the new items are applied.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order requires at least one item")
	}

	var response OrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.SalesOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		restore := restoreDeltas(order.Items)

		if req.Status != "" {
			if err := order.SetStatus(trade.OrderStatus(req.Status)); err != nil {
				return err
			}
		}
		order.SetNotes(req.Notes)
		if err := order.SetBillDiscount(toBillDiscount(req.Discount)); err != nil {
			return err
		}
		if err := order.SetTaxConfig(toTaxConfig(req.Tax)); err != nil {
			return err
		}
		items, err := buildOrderItems(req.Items)
		if err != nil {
			return err
		}
		order.ReplaceItems(items)
		if err := order.RecalculateTotals(); err != nil {
			return err
		}

		if err := repos.SalesOrderRepo().ReplaceItems(ctx, order); err != nil {
			return err
		}

		// Restore first so a size reused by the new items has its
		// old quantity back before the fresh decrement.
		deltas := append(restore, fulfillmentDeltas(order.Items)...)
		movements, err := applyStockDeltas(ctx, repos, order.ID, "sales_order", deltas)
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().AppendAll(ctx, movements); err != nil {
			return err
		}
		response = ToOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// TransitionStatus moves an order along its lifecycle. Only the review
// state accepts this call; any other source state is acknowledged as a
// no-op, logged, never errored.
func (s *OrderService) TransitionStatus(ctx context.Context, id uuid.UUID, req TransitionStatusRequest) (*TransitionStatusResponse, error) {
	next := trade.OrderStatus(req.NewStatus)
	if !next.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A stale caller view of the current status is ignored the same way
	// as a non-review source: acknowledged, logged, never errored.
	if req.Status != "" && trade.OrderStatus(req.Status) != order.Status {
		s.logger.Info("order status transition ignored",
			zap.String("order_id", id.String()),
			zap.String("status", order.Status.String()),
			zap.String("claimed", req.Status),
			zap.String("requested", req.NewStatus))
		return &TransitionStatusResponse{
			ID:           order.ID,
			Status:       order.Status.String(),
			Transitioned: false,
		}, nil
	}

	if order.Status != trade.OrderReview {
		s.logger.Info("order status transition ignored",
			zap.String("order_id", id.String()),
			zap.String("status", order.Status.String()),
			zap.String("requested", req.NewStatus))
		return &TransitionStatusResponse{
			ID:           order.ID,
			Status:       order.Status.String(),
			Transitioned: false,
		}, nil
	}

	if err := order.TransitionTo(next); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	return &TransitionStatusResponse{
		ID:           order.ID,
		Status:       order.Status.String(),
		Transitioned: true,
	}, nil
}

// Get retrieves an order with resolved customer and catalog projections
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)

	if customer, err := s.customerRepo.FindByID(ctx, order.CustomerID); err == nil {
		response.Customer = &CustomerSummary{
			ID:    customer.ID,
			Name:  customer.Name,
			GSTIN: customer.TaxIdentity.GSTIN,
			Phone: customer.Phone,
		}
	}

	variants := make(map[uuid.UUID]*catalog.Variant)
	products := make(map[uuid.UUID]*catalog.Product)
	for i := range response.Items {
		variant, ok := variants[response.Items[i].VariantID]
		if !ok {
			variant, err = s.variantRepo.FindByID(ctx, response.Items[i].VariantID)
			if err != nil {
				continue
			}
			variants[response.Items[i].VariantID] = variant
		}
		response.Items[i].VariantName = variant.Name
		response.Items[i].ProductID = variant.ProductID

		product, ok := products[variant.ProductID]
		if !ok {
			product, err = s.productRepo.FindByID(ctx, variant.ProductID)
			if err != nil {
				continue
			}
			products[variant.ProductID] = product
		}
		response.Items[i].ProductName = product.Name
	}
	return &response, nil
}

// List returns sales orders matching the filter
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, int64, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, total, nil
}

// AdjustStock applies a manual correction to one size counter and
// records an adjustment movement.
func (s *OrderService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	if req.Delta == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment delta cannot be zero")
	}

	var response AdjustStockResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		variant, err := repos.VariantRepo().FindByID(ctx, req.VariantID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("VARIANT_NOT_FOUND", "Variant does not exist")
			}
			return err
		}

		before := variant.StockOf(req.Size)
		if req.Delta > 0 {
			err = variant.IncreaseStock(req.Size, req.Delta)
		} else {
			err = variant.DecreaseStock(req.Size, -req.Delta)
		}
		if err != nil {
			return err
		}
		if err := repos.VariantRepo().SaveWithLock(ctx, variant); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(req.VariantID, req.Size,
			inventory.MovementAdjustment, req.Delta, before, variant.StockOf(req.Size))
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().Append(ctx, movement.WithNote(req.Note)); err != nil {
			return err
		}
		response = AdjustStockResponse{
			VariantID: req.VariantID,
			Size:      req.Size,
			Stock:     variant.StockOf(req.Size),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}
