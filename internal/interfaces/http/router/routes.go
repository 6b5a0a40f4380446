package router

import (
	"github.com/gin-gonic/gin"

	"github.com/stockbook/backend/internal/interfaces/http/handler"
)

// Handlers bundles the domain handlers that expose API routes.
type Handlers struct {
	Product  *handler.ProductHandler
	Party    *handler.PartyHandler
	Purchase *handler.PurchaseOrderHandler
	Order    *handler.SalesOrderHandler
	Report   *handler.ReportHandler
	System   *handler.SystemHandler
}

// Setup wires every domain group onto the engine under /api/v1 and
// mounts the probe endpoints at the root.
func Setup(engine *gin.Engine, h Handlers) {
	r := NewRouter(engine)

	r.Register(NewDomainGroup("catalog", "/products").
		POST("", h.Product.CreateProduct).
		GET("", h.Product.ListProducts).
		GET("/:id", h.Product.GetProduct).
		GET("/:id/variants", h.Product.ListProductVariants))

	r.Register(NewDomainGroup("catalog", "/variants").
		POST("", h.Product.CreateVariant).
		GET("/:id", h.Product.GetVariant))

	r.Register(NewDomainGroup("partner", "/suppliers").
		POST("", h.Party.CreateSupplier).
		GET("", h.Party.ListSuppliers).
		GET("/:id", h.Party.GetSupplier))

	r.Register(NewDomainGroup("partner", "/customers").
		POST("", h.Party.CreateCustomer).
		GET("", h.Party.ListCustomers).
		GET("/:id", h.Party.GetCustomer))

	r.Register(NewDomainGroup("trade", "/purchases").
		POST("", h.Purchase.Record).
		GET("", h.Purchase.List).
		GET("/:id", h.Purchase.Get).
		POST("/:id/approve", h.Purchase.Approve).
		POST("/:id/cancel", h.Purchase.Cancel))

	r.Register(NewDomainGroup("trade", "/orders").
		POST("", h.Order.Create).
		GET("", h.Order.List).
		GET("/:id", h.Order.Get).
		PUT("/:id", h.Order.Update).
		POST("/:id/status", h.Order.TransitionStatus))

	r.Register(NewDomainGroup("inventory", "/stock").
		POST("/adjustments", h.Order.AdjustStock))

	r.Register(NewDomainGroup("report", "/reports").
		GET("/counts", h.Report.Counts).
		GET("/stock-history/:id", h.Report.StockHistory).
		GET("/ledger-stock/:id", h.Report.LedgerStock))

	r.Setup()

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)
}
