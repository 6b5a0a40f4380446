package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tradeapp "github.com/stockbook/backend/internal/application/trade"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/trade"
	"github.com/stockbook/backend/internal/interfaces/http/dto"
)

type purchaseTestEnv struct {
	router       *gin.Engine
	purchaseRepo *fakePurchaseOrderRepository
	supplierRepo *fakeSupplierRepository
	variantRepo  *fakeVariantRepository
	movementRepo *fakeStockMovementRepository
}

func setupPurchaseTestEnv(t *testing.T) *purchaseTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	purchaseRepo := newFakePurchaseOrderRepository()
	supplierRepo := newFakeSupplierRepository()
	variantRepo := newFakeVariantRepository()
	movementRepo := newFakeStockMovementRepository()
	scope := tradeapp.NewNoOpTransactionScope(purchaseRepo, newFakeSalesOrderRepository(), variantRepo, movementRepo)

	service := tradeapp.NewPurchaseService(purchaseRepo, supplierRepo, scope, nil)
	h := NewPurchaseOrderHandler(service)

	router := gin.New()
	router.POST("/purchases", h.Record)
	router.POST("/purchases/:id/approve", h.Approve)
	router.POST("/purchases/:id/cancel", h.Cancel)
	router.GET("/purchases/:id", h.Get)
	router.GET("/purchases", h.List)

	return &purchaseTestEnv{
		router:       router,
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		variantRepo:  variantRepo,
		movementRepo: movementRepo,
	}
}

func (e *purchaseTestEnv) seedSupplier(t *testing.T) uuid.UUID {
	t.Helper()
	supplier, err := newTestSupplier("Meena Textiles")
	require.NoError(t, err)
	e.supplierRepo.suppliers[supplier.ID] = supplier
	return supplier.ID
}

func (e *purchaseTestEnv) seedVariant(t *testing.T, size string, stock int64) *catalog.Variant {
	t.Helper()
	variant, err := catalog.NewVariant(uuid.New(), "Linen Shirt", nil, "")
	require.NoError(t, err)
	require.NoError(t, variant.AddSize(size, stock, decimal.NewFromInt(200), decimal.NewFromInt(350)))
	e.variantRepo.variants[variant.ID] = variant
	return variant
}

func (e *purchaseTestEnv) seedOrder(t *testing.T, supplierID uuid.UUID, status trade.PurchaseOrderStatus) *trade.PurchaseOrder {
	t.Helper()
	order, err := trade.NewPurchaseOrder(supplierID, fmt.Sprintf("INV-%s", uuid.NewString()[:8]), time.Now(), status, trade.PurchaseMoney{})
	require.NoError(t, err)
	e.purchaseRepo.orders[order.ID] = order
	return order
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPurchaseOrderHandler_Record(t *testing.T) {
	env := setupPurchaseTestEnv(t)
	supplierID := env.seedSupplier(t)
	variant := env.seedVariant(t, "M", 10)

	payload := map[string]interface{}{
		"supplier_id":    supplierID,
		"invoice_number": "INV-1001",
		"order_date":     time.Now().Format(time.RFC3339),
		"subtotal":       "820",
		"total_amount":   "820",
		"items": []map[string]interface{}{
			{
				"variant_id":  variant.ID,
				"size":        "M",
				"quantity":    4,
				"unit_price":  "205",
				"total_price": "820",
			},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeEnvelope(t, w)
	assert.True(t, resp.Success)

	// The recorded purchase increments the size counter immediately
	// and leaves a receipt row in the ledger.
	assert.Equal(t, int64(14), variant.StockOf("M"))
	require.Len(t, env.movementRepo.movements, 1)
	assert.EqualValues(t, 4, env.movementRepo.movements[0].Quantity)
}

func TestPurchaseOrderHandler_RecordInvalidBody(t *testing.T) {
	env := setupPurchaseTestEnv(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchases", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseOrderHandler_RecordUnknownSupplier(t *testing.T) {
	env := setupPurchaseTestEnv(t)
	variant := env.seedVariant(t, "M", 10)

	payload := map[string]interface{}{
		"supplier_id":    uuid.New(),
		"invoice_number": "INV-2001",
		"items": []map[string]interface{}{
			{"variant_id": variant.ID, "size": "M", "quantity": 1, "unit_price": "10", "total_price": "10"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchases", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SUPPLIER_NOT_FOUND", resp.Error.Code)
}

func TestPurchaseOrderHandler_Approve(t *testing.T) {
	env := setupPurchaseTestEnv(t)
	supplierID := env.seedSupplier(t)
	order := env.seedOrder(t, supplierID, trade.PurchasePending)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/purchases/"+order.ID.String()+"/approve", nil)
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, trade.PurchaseReceived, order.Status)
}

func TestPurchaseOrderHandler_ApproveTwiceConflicts(t *testing.T) {
	env := setupPurchaseTestEnv(t)
	supplierID := env.seedSupplier(t)
	order := env.seedOrder(t, supplierID, trade.PurchasePending)

	first := httptest.NewRecorder()
	env.router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/purchases/"+order.ID.String()+"/approve", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	env.router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/purchases/"+order.ID.String()+"/approve", nil))
	require.Equal(t, http.StatusConflict, second.Code)

	resp := decodeEnvelope(t, second)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_RECEIVED", resp.Error.Code)
}

func TestPurchaseOrderHandler_ApproveInvalidID(t *testing.T) {
	env := setupPurchaseTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/purchases/not-a-uuid/approve", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseOrderHandler_GetNotFound(t *testing.T) {
	env := setupPurchaseTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/purchases/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPurchaseOrderHandler_ListInvalidSupplierFilter(t *testing.T) {
	env := setupPurchaseTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/purchases?supplier_id=oops", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseOrderHandler_ListAmountRangeFilter(t *testing.T) {
	env := setupPurchaseTestEnv(t)
	supplierID := env.seedSupplier(t)
	env.seedOrder(t, supplierID, trade.PurchasePending)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/purchases?min_amount=100.50&max_amount=5000", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	minAmount, ok := env.purchaseRepo.lastFilter.Filters["min_amount"].(decimal.Decimal)
	require.True(t, ok)
	assert.Equal(t, "100.5", minAmount.String())
	maxAmount, ok := env.purchaseRepo.lastFilter.Filters["max_amount"].(decimal.Decimal)
	require.True(t, ok)
	assert.Equal(t, "5000", maxAmount.String())
}

func TestPurchaseOrderHandler_ListInvalidAmountFilter(t *testing.T) {
	env := setupPurchaseTestEnv(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/purchases?min_amount=lots", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
