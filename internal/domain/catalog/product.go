package catalog

import (
	"strings"

	"github.com/stockbook/backend/internal/domain/shared"
)

// Product is a catalog entry carrying the tax classification code.
// Its purchasable configurations live on Variants.
type Product struct {
	shared.BaseAggregateRoot
	Name     string    `gorm:"type:varchar(255);not null"`
	HSNCode  string    `gorm:"type:varchar(16);column:hsn_code"`
	Variants []Variant `gorm:"foreignKey:ProductID"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with validation
func NewProduct(name, hsnCode string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		HSNCode:           strings.TrimSpace(hsnCode),
	}, nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetHSNCode updates the tax classification code
func (p *Product) SetHSNCode(code string) {
	p.HSNCode = strings.TrimSpace(code)
	p.Touch()
	p.IncrementVersion()
}
