package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PurchaseService is the purchase engine. Recording a purchase creates
// the order with its items and increments the matching size counters,
// all inside one transaction scope; approving the receipt later is a
// status-only move that never touches stock again.
type PurchaseService struct {
	purchaseRepo trade.PurchaseOrderRepository
	supplierRepo partner.SupplierRepository
	scope        TransactionScope
	logger       *zap.Logger
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	purchaseRepo trade.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	scope TransactionScope,
	logger *zap.Logger,
) *PurchaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		scope:        scope,
		logger:       logger,
	}
}

// RecordPurchase creates a purchase order with its items and increments
// the referenced size counters atomically. Any missing variant or size
// aborts the whole transaction; no partial stock increment survives.
func (s *PurchaseService) RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*RecordPurchaseResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Purchase requires at least one item")
	}

	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
		}
		return nil, err
	}

	order, err := trade.NewPurchaseOrder(req.SupplierID, req.InvoiceNumber, req.OrderDate,
		trade.PurchaseOrderStatus(req.Status), trade.PurchaseMoney{
			Subtotal:       req.Subtotal,
			DiscountAmount: req.DiscountAmount,
			TaxableAmount:  req.TaxableAmount,
			CGST:           req.CGST,
			SGST:           req.SGST,
			IGST:           req.IGST,
			TotalAmount:    req.TotalAmount,
		})
	if err != nil {
		return nil, err
	}
	for _, itemReq := range req.Items {
		item, err := trade.NewPurchaseItem(itemReq.VariantID, itemReq.Size, itemReq.Quantity,
			itemReq.UnitPrice, itemReq.Discount, itemReq.TotalPrice)
		if err != nil {
			return nil, err
		}
		order.AddItem(item)
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.PurchaseOrderRepo().FindByInvoiceNumber(ctx, order.InvoiceNumber)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("DUPLICATE_INVOICE", "Invoice number is already recorded")
		}

		if err := repos.PurchaseOrderRepo().Save(ctx, order); err != nil {
			return err
		}

		movements, err := applyStockDeltas(ctx, repos, order.ID, "purchase_order",
			receiptDeltas(order.Items))
		if err != nil {
			return err
		}
		return repos.MovementRepo().AppendAll(ctx, movements)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("purchase_order_id", order.ID.String()),
		zap.String("invoice_number", order.InvoiceNumber),
		zap.Int("items", len(order.Items)))

	return &RecordPurchaseResponse{ID: order.ID}, nil
}

// ApprovePurchase marks the purchase as received, exactly once. Stock
// was already incremented when the purchase was recorded.
func (s *PurchaseService) ApprovePurchase(ctx context.Context, id uuid.UUID) (*ApprovePurchaseResponse, error) {
	order, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Receive(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	return &ApprovePurchaseResponse{
		Status:        order.Status.String(),
		PurchaseOrder: ToPurchaseOrderResponse(order),
	}, nil
}

// CancelPurchase cancels a not-yet-received purchase. The recorded
// stock increments are reversed through adjustment movements.
func (s *PurchaseService) CancelPurchase(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	var response PurchaseOrderResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.PurchaseOrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}
		if err := repos.PurchaseOrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		movements, err := applyStockDeltas(ctx, repos, order.ID, "purchase_order",
			reversalDeltas(order.Items))
		if err != nil {
			return err
		}
		if err := repos.MovementRepo().AppendAll(ctx, movements); err != nil {
			return err
		}
		response = ToPurchaseOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// GetByID retrieves a purchase order
func (s *PurchaseService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.purchaseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// List returns purchase orders matching the filter
func (s *PurchaseService) List(ctx context.Context, filter shared.Filter) ([]PurchaseOrderResponse, int64, error) {
	orders, err := s.purchaseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.purchaseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	return responses, total, nil
}

// stockDelta is one pending counter change for a variant size
type stockDelta struct {
	variantID    uuid.UUID
	size         string
	delta        int64
	movementType inventory.MovementType
}

func receiptDeltas(items []trade.PurchaseItem) []stockDelta {
	deltas := make([]stockDelta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, stockDelta{
			variantID:    item.VariantID,
			size:         item.Size,
			delta:        item.Quantity,
			movementType: inventory.MovementPurchaseReceipt,
		})
	}
	return deltas
}

func reversalDeltas(items []trade.PurchaseItem) []stockDelta {
	deltas := make([]stockDelta, 0, len(items))
	for _, item := range items {
		deltas = append(deltas, stockDelta{
			variantID:    item.VariantID,
			size:         item.Size,
			delta:        -item.Quantity,
			movementType: inventory.MovementAdjustment,
		})
	}
	return deltas
}

// applyStockDeltas loads each touched variant once, applies the counter
// changes in order and saves with an optimistic lock. The returned
// movements carry the before/after snapshots for the ledger.
func applyStockDeltas(ctx context.Context, repos TransactionalRepositories, refID uuid.UUID, refType string, deltas []stockDelta) ([]*inventory.StockMovement, error) {
	variants := make(map[uuid.UUID]*catalog.Variant)
	movements := make([]*inventory.StockMovement, 0, len(deltas))

	for _, d := range deltas {
		variant, ok := variants[d.variantID]
		if !ok {
			var err error
			variant, err = repos.VariantRepo().FindByID(ctx, d.variantID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError("VARIANT_NOT_FOUND", "Variant does not exist")
				}
				return nil, err
			}
			variants[d.variantID] = variant
		}

		before := variant.StockOf(d.size)
		if d.delta > 0 {
			if err := variant.IncreaseStock(d.size, d.delta); err != nil {
				return nil, err
			}
		} else {
			if err := variant.DecreaseStock(d.size, -d.delta); err != nil {
				return nil, err
			}
		}

		movement, err := inventory.NewStockMovement(d.variantID, d.size, d.movementType,
			d.delta, before, variant.StockOf(d.size))
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement.WithReference(refType, refID))
	}

	for _, variant := range variants {
		if err := repos.VariantRepo().SaveWithLock(ctx, variant); err != nil {
			return nil, err
		}
	}
	return movements, nil
}
