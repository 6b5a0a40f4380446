package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockbook/backend/internal/infrastructure/persistence"
	"github.com/stockbook/backend/internal/interfaces/http/dto"
)

// SystemHandler serves the health and readiness probes.
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now()}
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Health handles GET /health. Liveness only, no dependency checks.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(healthResponse{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	}))
}

// Ready handles GET /ready. Reports unavailable when the database
// cannot be reached.
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse("ERR_NOT_READY", "Database unreachable"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(healthResponse{
		Status: "ready",
		Uptime: time.Since(h.startedAt).Round(time.Second).String(),
	}))
}
