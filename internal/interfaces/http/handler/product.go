package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/stockbook/backend/internal/application/catalog"
)

// ProductHandler handles catalog API endpoints: products and their variants.
type ProductHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService *catalogapp.Service) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// CreateVariant handles POST /variants
func (h *ProductHandler) CreateVariant(c *gin.Context) {
	var req catalogapp.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.catalogService.CreateVariant(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetVariant handles GET /variants/:id
func (h *ProductHandler) GetVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	resp, err := h.catalogService.GetVariant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListProductVariants handles GET /products/:id/variants
func (h *ProductHandler) ListProductVariants(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	variants, err := h.catalogService.ListVariantsByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, variants)
}
