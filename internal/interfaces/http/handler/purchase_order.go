package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tradeapp "github.com/stockbook/backend/internal/application/trade"
)

// PurchaseOrderHandler handles purchase recording and approval endpoints.
type PurchaseOrderHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(purchaseService *tradeapp.PurchaseService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseService: purchaseService}
}

// Record handles POST /purchases. The purchase order, its items and the
// stock increments commit or roll back together.
func (h *PurchaseOrderHandler) Record(c *gin.Context) {
	var req tradeapp.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.purchaseService.RecordPurchase(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Approve handles POST /purchases/:id/approve. Approval moves the order
// to its received state exactly once; repeat calls are rejected.
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	resp, err := h.purchaseService.ApprovePurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel handles POST /purchases/:id/cancel
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	resp, err := h.purchaseService.CancelPurchase(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get handles GET /purchases/:id
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	resp, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List handles GET /purchases. Optional query filters: supplier_id,
// status, start_date and end_date (RFC 3339), min_amount and
// max_amount (decimal, matched against the order total).
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if raw := c.Query("supplier_id"); raw != "" {
		supplierID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID")
			return
		}
		addFilter(&filter, "supplier_id", supplierID)
	}
	if status := c.Query("status"); status != "" {
		addFilter(&filter, "status", status)
	}
	if raw := c.Query("start_date"); raw != "" {
		startDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid start date")
			return
		}
		addFilter(&filter, "start_date", startDate)
	}
	if raw := c.Query("end_date"); raw != "" {
		endDate, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid end date")
			return
		}
		addFilter(&filter, "end_date", endDate)
	}
	if raw := c.Query("min_amount"); raw != "" {
		minAmount, err := decimal.NewFromString(raw)
		if err != nil {
			h.BadRequest(c, "Invalid minimum amount")
			return
		}
		addFilter(&filter, "min_amount", minAmount)
	}
	if raw := c.Query("max_amount"); raw != "" {
		maxAmount, err := decimal.NewFromString(raw)
		if err != nil {
			h.BadRequest(c, "Invalid maximum amount")
			return
		}
		addFilter(&filter, "max_amount", maxAmount)
	}

	orders, total, err := h.purchaseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}
