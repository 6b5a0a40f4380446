package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPurchaseOrder(t *testing.T, status PurchaseOrderStatus) *PurchaseOrder {
	t.Helper()
	po, err := NewPurchaseOrder(uuid.New(), "INV-001", time.Now(), status, PurchaseMoney{
		Subtotal:      decimal.NewFromInt(245),
		TaxableAmount: decimal.NewFromFloat(220.5),
		IGST:          decimal.NewFromFloat(39.69),
		TotalAmount:   decimal.NewFromFloat(260.19),
	})
	require.NoError(t, err)
	return po
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("stores supplied money fields as-is", func(t *testing.T) {
		po := newTestPurchaseOrder(t, PurchasePending)
		assert.Equal(t, "245", po.Subtotal.String())
		assert.Equal(t, "260.19", po.TotalAmount.String())
		assert.Equal(t, PurchasePending, po.Status)
	})

	t.Run("empty status defaults to pending", func(t *testing.T) {
		po := newTestPurchaseOrder(t, "")
		assert.Equal(t, PurchasePending, po.Status)
	})

	t.Run("rejects terminal creation status", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.New(), "INV-002", time.Now(), PurchaseReceived, PurchaseMoney{})
		assert.Error(t, err)
		_, err = NewPurchaseOrder(uuid.New(), "INV-003", time.Now(), PurchaseCancelled, PurchaseMoney{})
		assert.Error(t, err)
	})

	t.Run("rejects missing supplier or invoice", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.Nil, "INV-004", time.Now(), PurchasePending, PurchaseMoney{})
		assert.Error(t, err)
		_, err = NewPurchaseOrder(uuid.New(), "  ", time.Now(), PurchasePending, PurchaseMoney{})
		assert.Error(t, err)
	})
}

func TestNewPurchaseItem(t *testing.T) {
	variantID := uuid.New()

	t.Run("valid item", func(t *testing.T) {
		item, err := NewPurchaseItem(variantID, "M", 5, decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.Equal(t, int64(5), item.Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewPurchaseItem(variantID, "M", 0, decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})

	t.Run("rejects missing size or variant", func(t *testing.T) {
		_, err := NewPurchaseItem(variantID, " ", 1, decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
		_, err = NewPurchaseItem(uuid.Nil, "M", 1, decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects negative money", func(t *testing.T) {
		_, err := NewPurchaseItem(variantID, "M", 1, decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestPurchaseOrderReceive(t *testing.T) {
	t.Run("receives exactly once", func(t *testing.T) {
		po := newTestPurchaseOrder(t, PurchaseOrdered)
		require.NoError(t, po.Receive())
		assert.Equal(t, PurchaseReceived, po.Status)

		err := po.Receive()
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "ALREADY_RECEIVED", domainErr.Code)
		assert.Equal(t, PurchaseReceived, po.Status)
	})

	t.Run("receives a freshly recorded pending order", func(t *testing.T) {
		po := newTestPurchaseOrder(t, "")
		require.Equal(t, PurchasePending, po.Status)
		require.NoError(t, po.Receive())
		assert.Equal(t, PurchaseReceived, po.Status)
	})

	t.Run("cannot receive a cancelled order", func(t *testing.T) {
		po := newTestPurchaseOrder(t, PurchasePending)
		require.NoError(t, po.Cancel())
		assert.Error(t, po.Receive())
	})

	t.Run("raises received event", func(t *testing.T) {
		po := newTestPurchaseOrder(t, PurchaseOrdered)
		po.ClearDomainEvents()
		require.NoError(t, po.Receive())
		events := po.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderReceived, events[0].EventType())
	})
}

func TestPurchaseOrderTransitionTable(t *testing.T) {
	cases := []struct {
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{PurchasePending, PurchaseOrdered, true},
		{PurchasePending, PurchaseApproved, true},
		{PurchasePending, PurchaseCancelled, true},
		{PurchasePending, PurchaseReceived, true},
		{PurchaseOrdered, PurchaseReceived, true},
		{PurchaseOrdered, PurchasePending, false},
		{PurchaseApproved, PurchaseReceived, true},
		{PurchaseApproved, PurchaseOrdered, false},
		{PurchaseReceived, PurchaseCancelled, false},
		{PurchaseCancelled, PurchasePending, false},
	}
	for _, tc := range cases {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestPurchaseOrderCancel(t *testing.T) {
	po := newTestPurchaseOrder(t, PurchaseOrdered)
	require.NoError(t, po.Cancel())
	assert.Equal(t, PurchaseCancelled, po.Status)
	assert.Error(t, po.Cancel())
}
