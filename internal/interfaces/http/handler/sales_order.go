package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	tradeapp "github.com/stockbook/backend/internal/application/trade"
)

// SalesOrderHandler handles sales order and stock adjustment endpoints.
type SalesOrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.OrderService) *SalesOrderHandler {
	return &SalesOrderHandler{orderService: orderService}
}

// Create handles POST /orders. Pricing is computed server side and the
// order commits together with its stock decrements.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update handles PUT /orders/:id. The item collection in the payload
// fully replaces the stored one; stock is reconciled against the delta.
func (h *SalesOrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// TransitionStatus handles POST /orders/:id/status
func (h *SalesOrderHandler) TransitionStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req tradeapp.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.TransitionStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get handles GET /orders/:id
func (h *SalesOrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /orders. Optional query filters: customer_id, status.
func (h *SalesOrderHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		addFilter(&filter, "customer_id", customerID)
	}
	if status := c.Query("status"); status != "" {
		addFilter(&filter, "status", status)
	}

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// AdjustStock handles POST /stock/adjustments. Manual corrections move
// the counter by a signed delta and leave a ledger entry.
func (h *SalesOrderHandler) AdjustStock(c *gin.Context) {
	var req tradeapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.orderService.AdjustStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
