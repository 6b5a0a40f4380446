package partner

import (
	"errors"
	"testing"

	"github.com/stockbook/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaxIdentity(t *testing.T) {
	t.Run("accepts valid identifiers", func(t *testing.T) {
		id, err := NewTaxIdentity("27AAPFU0939F1ZV", "AAPFU0939F", "27")
		require.NoError(t, err)
		assert.Equal(t, "27AAPFU0939F1ZV", id.GSTIN)
		assert.Equal(t, "AAPFU0939F", id.PAN)
		assert.Equal(t, "27", id.StateCode)
	})

	t.Run("all fields optional", func(t *testing.T) {
		id, err := NewTaxIdentity("", "", "")
		require.NoError(t, err)
		assert.Empty(t, id.GSTIN)
	})

	t.Run("uppercases input", func(t *testing.T) {
		id, err := NewTaxIdentity("27aapfu0939f1zv", "aapfu0939f", "27")
		require.NoError(t, err)
		assert.Equal(t, "27AAPFU0939F1ZV", id.GSTIN)
	})

	t.Run("derives state code from GSTIN", func(t *testing.T) {
		id, err := NewTaxIdentity("27AAPFU0939F1ZV", "", "")
		require.NoError(t, err)
		assert.Equal(t, "27", id.StateCode)
	})

	t.Run("rejects malformed GSTIN", func(t *testing.T) {
		_, err := NewTaxIdentity("INVALID", "", "")
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_GSTIN", domainErr.Code)
	})

	t.Run("rejects malformed PAN", func(t *testing.T) {
		_, err := NewTaxIdentity("", "1234567890", "")
		assert.Error(t, err)
	})

	t.Run("rejects malformed state code", func(t *testing.T) {
		_, err := NewTaxIdentity("", "", "ABC")
		assert.Error(t, err)
	})
}

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier", func(t *testing.T) {
		s, err := NewSupplier("Mehta Textiles", "27AAPFU0939F1ZV", "AAPFU0939F", "")
		require.NoError(t, err)
		assert.Equal(t, "Mehta Textiles", s.Name)
		assert.Equal(t, "27", s.TaxIdentity.StateCode)
		assert.Equal(t, 1, s.GetVersion())
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewSupplier("  ", "", "", "")
		assert.Error(t, err)
	})

	t.Run("propagates identity validation", func(t *testing.T) {
		_, err := NewSupplier("Mehta Textiles", "bad", "", "")
		assert.Error(t, err)
	})
}

func TestNewCustomer(t *testing.T) {
	c, err := NewCustomer("Ritu Boutique", "", "", "27")
	require.NoError(t, err)
	assert.Equal(t, "Ritu Boutique", c.Name)

	c.UpdateContact(" 9876543210 ", "ritu@example.com", "Pune")
	assert.Equal(t, "9876543210", c.Phone)
	assert.Equal(t, 2, c.GetVersion())

	require.NoError(t, c.UpdateTaxIdentity("27AAPFU0939F1ZV", "", ""))
	assert.Equal(t, "27AAPFU0939F1ZV", c.TaxIdentity.GSTIN)
	assert.Error(t, c.UpdateTaxIdentity("nope", "", ""))
}
