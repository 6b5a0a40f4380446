package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/stockbook/backend/internal/application/report"
)

// ReportHandler handles the read-only reporting endpoints.
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Counts handles GET /reports/counts
func (h *ReportHandler) Counts(c *gin.Context) {
	resp, err := h.reportService.Counts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// StockHistory handles GET /reports/stock-history/:id. The size query
// parameter is required; pagination parameters page through the ledger.
func (h *ReportHandler) StockHistory(c *gin.Context) {
	variantID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	size := c.Query("size")
	if size == "" {
		h.BadRequest(c, "Missing size parameter")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, err := h.reportService.StockHistory(c.Request.Context(), variantID, size, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// ledgerStockResponse reports the ledger-derived stock level for one
// variant size.
type ledgerStockResponse struct {
	VariantID uuid.UUID `json:"variant_id"`
	Size      string    `json:"size"`
	Stock     int64     `json:"stock"`
}

// LedgerStock handles GET /reports/ledger-stock/:id. It sums the
// movement ledger instead of reading the variant counter, so the two
// can be compared for drift.
func (h *ReportHandler) LedgerStock(c *gin.Context) {
	variantID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	size := c.Query("size")
	if size == "" {
		h.BadRequest(c, "Missing size parameter")
		return
	}

	stock, err := h.reportService.LedgerStock(c.Request.Context(), variantID, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ledgerStockResponse{VariantID: variantID, Size: size, Stock: stock})
}
