package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/shared"
)

// SizeEntry is the mutable stock counter at the center of the system.
// The JSON field names are the persisted wire shape and must not change.
type SizeEntry struct {
	Size         string          `json:"size"`
	Stock        int64           `json:"stock"`
	BuyingPrice  decimal.Decimal `json:"buyingPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

// SizeEntries is the ordered size collection stored as a JSONB column
type SizeEntries []SizeEntry

// Value implements driver.Valuer for database storage
func (s SizeEntries) Value() (driver.Value, error) {
	if s == nil {
		s = SizeEntries{}
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *SizeEntries) Scan(value any) error {
	if value == nil {
		*s = SizeEntries{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SizeEntries", value)
	}
	return json.Unmarshal(data, s)
}

// Variant is the unit referenced by purchase and order line items.
// It owns the ordered size collection carrying per-size stock counters.
// Several counters may move inside one transaction, so the lock version
// is bumped once by SaveWithLock rather than per mutation.
type Variant struct {
	shared.BaseAggregateRoot
	Name       string     `gorm:"type:varchar(255);not null"`
	ProductID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index"`
	Barcode    string     `gorm:"type:varchar(64)"`
	Sizes      SizeEntries `gorm:"type:jsonb;not null;default:'[]'"`
}

// TableName returns the database table name
func (Variant) TableName() string {
	return "variants"
}

// NewVariant creates a new variant with validation
func NewVariant(productID uuid.UUID, name string, supplierID *uuid.UUID, barcode string) (*Variant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT_NAME", "Variant name cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_REFERENCE", "Variant requires a product reference")
	}
	return &Variant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ProductID:         productID,
		SupplierID:        supplierID,
		Barcode:           strings.TrimSpace(barcode),
		Sizes:             SizeEntries{},
	}, nil
}

// AddSize appends a size entry. Size labels are unique within a variant.
func (v *Variant) AddSize(size string, stock int64, buyingPrice, sellingPrice decimal.Decimal) error {
	size = strings.TrimSpace(size)
	if size == "" {
		return shared.NewDomainError("INVALID_SIZE_LABEL", "Size label cannot be empty")
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	if v.findSize(size) != nil {
		return shared.NewDomainError("DUPLICATE_SIZE", fmt.Sprintf("Size %q already exists on variant", size))
	}
	v.Sizes = append(v.Sizes, SizeEntry{
		Size:         size,
		Stock:        stock,
		BuyingPrice:  buyingPrice,
		SellingPrice: sellingPrice,
	})
	v.Touch()
	return nil
}

// FindSize returns the size entry with the given label, or nil
func (v *Variant) FindSize(size string) *SizeEntry {
	return v.findSize(size)
}

func (v *Variant) findSize(size string) *SizeEntry {
	for i := range v.Sizes {
		if v.Sizes[i].Size == size {
			return &v.Sizes[i]
		}
	}
	return nil
}

// IncreaseStock adds quantity to the given size. Sizes are never
// auto-created; a missing label is an error for the whole operation.
func (v *Variant) IncreaseStock(size string, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	entry := v.findSize(size)
	if entry == nil {
		return shared.NewDomainError("SIZE_NOT_FOUND", fmt.Sprintf("Size %q not found on variant", size))
	}
	entry.Stock += quantity
	v.Touch()
	v.AddDomainEvent(NewVariantStockChangedEvent(v.ID, size, quantity, entry.Stock))
	return nil
}

// DecreaseStock removes quantity from the given size, never below zero
func (v *Variant) DecreaseStock(size string, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	entry := v.findSize(size)
	if entry == nil {
		return shared.NewDomainError("SIZE_NOT_FOUND", fmt.Sprintf("Size %q not found on variant", size))
	}
	if entry.Stock < quantity {
		return shared.ErrInsufficientStock
	}
	entry.Stock -= quantity
	v.Touch()
	v.AddDomainEvent(NewVariantStockChangedEvent(v.ID, size, -quantity, entry.Stock))
	return nil
}

// StockOf returns the current stock for a size label, zero when missing
func (v *Variant) StockOf(size string) int64 {
	if entry := v.findSize(size); entry != nil {
		return entry.Stock
	}
	return 0
}

// UpdatePrices rewrites the prices of an existing size entry
func (v *Variant) UpdatePrices(size string, buyingPrice, sellingPrice decimal.Decimal) error {
	entry := v.findSize(size)
	if entry == nil {
		return shared.NewDomainError("SIZE_NOT_FOUND", fmt.Sprintf("Size %q not found on variant", size))
	}
	entry.BuyingPrice = buyingPrice
	entry.SellingPrice = sellingPrice
	v.Touch()
	return nil
}
