package trade

import (
	"context"
	"errors"
	"fmt"
	"sync"
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
	"github.com/stretchr/testify/require"
)

// contendedVariantRepository is an in-memory variant store with the same
// optimistic-lock behavior as the real repository: SaveWithLock only
// succeeds when the caller still holds the stored version, and a stale
// save is a CONCURRENCY_CONFLICT.
type contendedVariantRepository struct {
	mu        sync.Mutex
	variants  map[uuid.UUID]*catalog.Variant
	conflicts int
}

func newContendedVariantRepository() *contendedVariantRepository {
	return &contendedVariantRepository{variants: make(map[uuid.UUID]*catalog.Variant)}
}

func cloneVariant(v *catalog.Variant) *catalog.Variant {
	clone := *v
	clone.Sizes = append(catalog.SizeEntries(nil), v.Sizes...)
	return &clone
}

func (r *contendedVariantRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Variant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.variants[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneVariant(v), nil
}

func (r *contendedVariantRepository) SaveWithLock(_ context.Context, v *catalog.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.variants[v.ID]
	if !ok || stored.Version != v.Version {
		r.conflicts++
		return shared.NewDomainError("CONCURRENCY_CONFLICT", "Variant was modified by another transaction")
	}
	v.Version++
	r.variants[v.ID] = cloneVariant(v)
	return nil
}

func (r *contendedVariantRepository) Save(_ context.Context, v *catalog.Variant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variants[v.ID] = cloneVariant(v)
	return nil
}

func (r *contendedVariantRepository) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Variant, error) {
	return nil, nil
}

func (r *contendedVariantRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.variants, id)
	return nil
}

func (r *contendedVariantRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.variants)), nil
}

func (r *contendedVariantRepository) FindByProduct(_ context.Context, _ uuid.UUID) ([]catalog.Variant, error) {
	return nil, nil
}

func (r *contendedVariantRepository) FindByBarcode(_ context.Context, _ string) (*catalog.Variant, error) {
	return nil, shared.ErrNotFound
}

func (r *contendedVariantRepository) stockOf(id uuid.UUID, size string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.variants[id].StockOf(size)
}

type memPurchaseOrderRepository struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*trade.PurchaseOrder
}

func newMemPurchaseOrderRepository() *memPurchaseOrderRepository {
	return &memPurchaseOrderRepository{orders: make(map[uuid.UUID]*trade.PurchaseOrder)}
}

func (r *memPurchaseOrderRepository) FindByID(_ context.Context, id uuid.UUID) (*trade.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseOrderRepository) FindAll(_ context.Context, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	return nil, nil
}

func (r *memPurchaseOrderRepository) Save(_ context.Context, o *trade.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *memPurchaseOrderRepository) SaveWithLock(_ context.Context, o *trade.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *memPurchaseOrderRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id)
	return nil
}

func (r *memPurchaseOrderRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memPurchaseOrderRepository) FindByInvoiceNumber(_ context.Context, invoiceNumber string) (*trade.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.InvoiceNumber == invoiceNumber {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseOrderRepository) FindBySupplier(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	return nil, nil
}

type memSupplierRepository struct {
	mu        sync.Mutex
	suppliers map[uuid.UUID]*partner.Supplier
}

func newMemSupplierRepository() *memSupplierRepository {
	return &memSupplierRepository{suppliers: make(map[uuid.UUID]*partner.Supplier)}
}

func (r *memSupplierRepository) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.suppliers[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memSupplierRepository) FindAll(_ context.Context, _ shared.Filter) ([]partner.Supplier, error) {
	return nil, nil
}

func (r *memSupplierRepository) Save(_ context.Context, s *partner.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[s.ID] = s
	return nil
}

func (r *memSupplierRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.suppliers, id)
	return nil
}

func (r *memSupplierRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.suppliers)), nil
}

func (r *memSupplierRepository) FindByGSTIN(_ context.Context, _ string) (*partner.Supplier, error) {
	return nil, shared.ErrNotFound
}

type memMovementRepository struct {
	mu        sync.Mutex
	movements []*inventory.StockMovement
}

func (r *memMovementRepository) Append(_ context.Context, m *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, m)
	return nil
}

func (r *memMovementRepository) AppendAll(_ context.Context, ms []*inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, ms...)
	return nil
}

func (r *memMovementRepository) FindByVariantAndSize(_ context.Context, _ uuid.UUID, _ string, _ shared.Filter) ([]inventory.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepository) FindByReference(_ context.Context, _ uuid.UUID) ([]inventory.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepository) SumQuantity(_ context.Context, _ uuid.UUID, _ string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, m := range r.movements {
		sum += m.Quantity
	}
	return sum, nil
}

func isConcurrencyConflict(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "CONCURRENCY_CONFLICT"
}

// Parallel purchases of the same size must never lose an increment: a
// stale counter save fails the version guard and the caller resubmits.
func TestRecordPurchaseParallelIncrements(t *testing.T) {
	const (
		workers      = 8
		quantity     = int64(3)
		initialStock = int64(10)
	)
	ctx := context.Background()

	variantRepo := newContendedVariantRepository()
	purchaseRepo := newMemPurchaseOrderRepository()
	supplierRepo := newMemSupplierRepository()
	movementRepo := &memMovementRepository{}
	scope := NewNoOpTransactionScope(purchaseRepo, nil, variantRepo, movementRepo)
	service := NewPurchaseService(purchaseRepo, supplierRepo, scope, nil)

	supplier, err := partner.NewSupplier("Mehta Textiles", "", "", "27")
	require.NoError(t, err)
	require.NoError(t, supplierRepo.Save(ctx, supplier))

	variant, err := catalog.NewVariant(uuid.New(), "Floral Print", nil, "")
	require.NoError(t, err)
	require.NoError(t, variant.AddSize("M", initialStock, decimal.NewFromInt(100), decimal.NewFromInt(150)))
	require.NoError(t, variantRepo.Save(ctx, variant))

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for attempt := 0; ; attempt++ {
				req := RecordPurchaseRequest{
					SupplierID:    supplier.ID,
					InvoiceNumber: fmt.Sprintf("INV-%d-%d", worker, attempt),
					OrderDate:     time.Now(),
					Subtotal:      decimal.NewFromInt(300),
					TaxableAmount: decimal.NewFromInt(300),
					TotalAmount:   decimal.NewFromInt(354),
					Items: []PurchaseItemRequest{{
						VariantID:  variant.ID,
						Size:       "M",
						Quantity:   quantity,
						UnitPrice:  decimal.NewFromInt(100),
						Discount:   decimal.Zero,
						TotalPrice: decimal.NewFromInt(300),
					}},
				}
				_, err := service.RecordPurchase(ctx, req)
				if err == nil {
					return
				}
				if isConcurrencyConflict(err) {
					continue
				}
				errs <- err
				return
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected record error: %v", err)
	}

	assert.Equal(t, initialStock+workers*quantity, variantRepo.stockOf(variant.ID, "M"))

	// The ledger carries one receipt per committed purchase and its
	// quantity sum reproduces the counter delta.
	sum, err := movementRepo.SumQuantity(ctx, variant.ID, "M")
	require.NoError(t, err)
	assert.Equal(t, workers*quantity, sum)
	require.Len(t, movementRepo.movements, workers)
	for _, m := range movementRepo.movements {
		assert.Equal(t, m.StockBefore+m.Quantity, m.StockAfter)
	}
}
