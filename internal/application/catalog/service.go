package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockbook/backend/internal/domain/catalog"
	"github.com/stockbook/backend/internal/domain/partner"
	"github.com/stockbook/backend/internal/domain/shared"
)

// Service handles catalog entry: products, variants and their sizes.
// Stock counters are only read here; mutation belongs to the engines.
type Service struct {
	productRepo  catalog.ProductRepository
	variantRepo  catalog.VariantRepository
	supplierRepo partner.SupplierRepository
}

// NewService creates a new catalog Service
func NewService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	supplierRepo partner.SupplierRepository,
) *Service {
	return &Service{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateProduct registers a new product
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.HSNCode)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetProduct retrieves a product with its variants
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	variants, err := s.variantRepo.FindByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants
	response := ToProductResponse(product)
	return &response, nil
}

// ListProducts returns products matching the filter
func (s *Service) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, total, nil
}

// CreateVariant registers a new variant with its size entries
func (s *Service) CreateVariant(ctx context.Context, req CreateVariantRequest) (*VariantResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
		}
		return nil, err
	}
	if req.SupplierID != nil {
		if _, err := s.supplierRepo.FindByID(ctx, *req.SupplierID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("SUPPLIER_NOT_FOUND", "Supplier does not exist")
			}
			return nil, err
		}
	}

	variant, err := catalog.NewVariant(req.ProductID, req.Name, req.SupplierID, req.Barcode)
	if err != nil {
		return nil, err
	}
	for _, size := range req.Sizes {
		if err := variant.AddSize(size.Size, size.Stock, size.BuyingPrice, size.SellingPrice); err != nil {
			return nil, err
		}
	}
	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	response := ToVariantResponse(variant)
	return &response, nil
}

// GetVariant retrieves a variant
func (s *Service) GetVariant(ctx context.Context, id uuid.UUID) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToVariantResponse(variant)
	return &response, nil
}

// ListVariantsByProduct returns the variants of one product
func (s *Service) ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]VariantResponse, error) {
	variants, err := s.variantRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]VariantResponse, 0, len(variants))
	for i := range variants {
		responses = append(responses, ToVariantResponse(&variants[i]))
	}
	return responses, nil
}
