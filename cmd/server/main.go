package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/stockbook/backend/internal/application/catalog"
	partnerapp "github.com/stockbook/backend/internal/application/partner"
	reportapp "github.com/stockbook/backend/internal/application/report"
	tradeapp "github.com/stockbook/backend/internal/application/trade"
	"github.com/stockbook/backend/internal/infrastructure/config"
	"github.com/stockbook/backend/internal/infrastructure/logger"
	"github.com/stockbook/backend/internal/infrastructure/persistence"
	"github.com/stockbook/backend/internal/interfaces/http/dto"
	"github.com/stockbook/backend/internal/interfaces/http/handler"
	"github.com/stockbook/backend/internal/interfaces/http/middleware"
	"github.com/stockbook/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting stockbook backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	catalogService := catalogapp.NewService(productRepo, variantRepo, supplierRepo)
	partnerService := partnerapp.NewService(supplierRepo, customerRepo)
	purchaseService := tradeapp.NewPurchaseService(purchaseOrderRepo, supplierRepo, scope, log)
	orderService := tradeapp.NewOrderService(salesOrderRepo, customerRepo, variantRepo, productRepo, scope, log)
	reportService := reportapp.NewService(productRepo, supplierRepo, customerRepo, salesOrderRepo, purchaseOrderRepo, movementRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidators()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	router.Setup(engine, router.Handlers{
		Product:  handler.NewProductHandler(catalogService),
		Party:    handler.NewPartyHandler(partnerService),
		Purchase: handler.NewPurchaseOrderHandler(purchaseService),
		Order:    handler.NewSalesOrderHandler(orderService),
		Report:   handler.NewReportHandler(reportService),
		System:   handler.NewSystemHandler(db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
