package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockbook/backend/internal/domain/catalog"
)

// SizeRequest is one size entry of a variant payload
type SizeRequest struct {
	Size         string          `json:"size" binding:"required,max=32"`
	Stock        int64           `json:"stock" binding:"min=0"`
	BuyingPrice  decimal.Decimal `json:"buying_price" binding:"decimalstring"`
	SellingPrice decimal.Decimal `json:"selling_price" binding:"decimalstring"`
}

// CreateProductRequest carries a new product payload
type CreateProductRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=255"`
	HSNCode string `json:"hsn_code" binding:"max=16"`
}

// CreateVariantRequest carries a new variant payload with its sizes
type CreateVariantRequest struct {
	ProductID  uuid.UUID     `json:"product_id" binding:"required"`
	Name       string        `json:"name" binding:"required,min=1,max=255"`
	SupplierID *uuid.UUID    `json:"supplier_id"`
	Barcode    string        `json:"barcode" binding:"max=64"`
	Sizes      []SizeRequest `json:"sizes" binding:"dive"`
}

// SizeResponse is one size entry in a response, the persisted wire shape
type SizeResponse struct {
	Size         string `json:"size"`
	Stock        int64  `json:"stock"`
	BuyingPrice  string `json:"buyingPrice"`
	SellingPrice string `json:"sellingPrice"`
}

// VariantResponse is the outward shape of a variant
type VariantResponse struct {
	ID         uuid.UUID      `json:"id"`
	ProductID  uuid.UUID      `json:"product_id"`
	Name       string         `json:"name"`
	SupplierID *uuid.UUID     `json:"supplier_id,omitempty"`
	Barcode    string         `json:"barcode,omitempty"`
	Sizes      []SizeResponse `json:"sizes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// ProductResponse is the outward shape of a product
type ProductResponse struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	HSNCode   string            `json:"hsn_code,omitempty"`
	Variants  []VariantResponse `json:"variants,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ToVariantResponse maps a variant to its response shape
func ToVariantResponse(variant *catalog.Variant) VariantResponse {
	sizes := make([]SizeResponse, 0, len(variant.Sizes))
	for _, s := range variant.Sizes {
		sizes = append(sizes, SizeResponse{
			Size:         s.Size,
			Stock:        s.Stock,
			BuyingPrice:  s.BuyingPrice.String(),
			SellingPrice: s.SellingPrice.String(),
		})
	}
	return VariantResponse{
		ID:         variant.ID,
		ProductID:  variant.ProductID,
		Name:       variant.Name,
		SupplierID: variant.SupplierID,
		Barcode:    variant.Barcode,
		Sizes:      sizes,
		CreatedAt:  variant.CreatedAt,
		UpdatedAt:  variant.UpdatedAt,
	}
}

// ToProductResponse maps a product to its response shape
func ToProductResponse(product *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, 0, len(product.Variants))
	for i := range product.Variants {
		variants = append(variants, ToVariantResponse(&product.Variants[i]))
	}
	return ProductResponse{
		ID:        product.ID,
		Name:      product.Name,
		HSNCode:   product.HSNCode,
		Variants:  variants,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
