package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/inventory"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stockbook/backend/internal/domain/trade"
)

// CountsResponse aggregates the directory and transaction counts
type CountsResponse struct {
	Products  int64 `json:"products"`
	Suppliers int64 `json:"suppliers"`
	Customers int64 `json:"customers"`
	Orders    int64 `json:"orders"`
	Purchases int64 `json:"purchases"`
}

// MovementResponse is one ledger row in a report
type MovementResponse struct {
	ID           uuid.UUID `json:"id"`
	VariantID    uuid.UUID `json:"variant_id"`
	Size         string    `json:"size"`
	MovementType string    `json:"movement_type"`
	Quantity     int64     `json:"quantity"`
	StockBefore  int64     `json:"stock_before"`
	StockAfter   int64     `json:"stock_after"`
	Note         string    `json:"note,omitempty"`
}

// Service is the read-only query facade. It never mutates anything;
// it only reflects the current store state.
type Service struct {
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
	customerRepo partner.CustomerRepository
	orderRepo    trade.SalesOrderRepository
	purchaseRepo trade.PurchaseOrderRepository
	movementRepo inventory.StockMovementRepository
}

// NewService creates a new report Service
func NewService(
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	customerRepo partner.CustomerRepository,
	orderRepo trade.SalesOrderRepository,
	purchaseRepo trade.PurchaseOrderRepository,
	movementRepo inventory.StockMovementRepository,
) *Service {
	return &Service{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		purchaseRepo: purchaseRepo,
		movementRepo: movementRepo,
	}
}

// Counts returns the headline totals for the dashboard
func (s *Service) Counts(ctx context.Context) (*CountsResponse, error) {
	filter := shared.Filter{}

	products, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	customers, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &CountsResponse{
		Products:  products,
		Suppliers: suppliers,
		Customers: customers,
		Orders:    orders,
		Purchases: purchases,
	}, nil
}

// StockHistory returns the movement ledger for one variant size
func (s *Service) StockHistory(ctx context.Context, variantID uuid.UUID, size string, filter shared.Filter) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByVariantAndSize(ctx, variantID, size, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]MovementResponse, 0, len(movements))
	for _, m := range movements {
		responses = append(responses, MovementResponse{
			ID:           m.ID,
			VariantID:    m.VariantID,
			Size:         m.Size,
			MovementType: string(m.MovementType),
			Quantity:     m.Quantity,
			StockBefore:  m.StockBefore,
			StockAfter:   m.StockAfter,
			Note:         m.Note,
		})
	}
	return responses, nil
}

// LedgerStock recomputes the stock of one size from the movement ledger.
// The counter on the variant is a projection of this sum.
func (s *Service) LedgerStock(ctx context.Context, variantID uuid.UUID, size string) (int64, error) {
	return s.movementRepo.SumQuantity(ctx, variantID, size)
}
