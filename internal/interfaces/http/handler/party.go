package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/stockbook/backend/internal/application/partner"
)

// PartyHandler handles supplier and customer directory endpoints.
type PartyHandler struct {
	BaseHandler
	partnerService *partnerapp.Service
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(partnerService *partnerapp.Service) *PartyHandler {
	return &PartyHandler{partnerService: partnerService}
}

// CreateSupplier handles POST /suppliers
func (h *PartyHandler) CreateSupplier(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetSupplier handles GET /suppliers/:id
func (h *PartyHandler) GetSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	resp, err := h.partnerService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListSuppliers handles GET /suppliers. Supports a state_code filter
// alongside the usual pagination and search parameters.
func (h *PartyHandler) ListSuppliers(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if stateCode := c.Query("state_code"); stateCode != "" {
		addFilter(&filter, "state_code", stateCode)
	}

	suppliers, total, err := h.partnerService.ListSuppliers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, suppliers, total, filter.Page, filter.PageSize)
}

// CreateCustomer handles POST /customers
func (h *PartyHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.partnerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetCustomer handles GET /customers/:id
func (h *PartyHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.partnerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListCustomers handles GET /customers
func (h *PartyHandler) ListCustomers(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if stateCode := c.Query("state_code"); stateCode != "" {
		addFilter(&filter, "state_code", stateCode)
	}

	customers, total, err := h.partnerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}
