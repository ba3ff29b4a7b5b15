package router

import (
	"github.com/gin-gonic/gin"

	"github.com/khoirulmuhlisin/unitproduksi/internal/handlers"
	"github.com/khoirulmuhlisin/unitproduksi/internal/middleware"
	"github.com/khoirulmuhlisin/unitproduksi/internal/services"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
)

// Setup wires services and handlers onto the engine.
func Setup(engine *gin.Engine, st store.RecordStore) error {
	// Services
	ledger := services.NewStockLedger()
	productService := services.NewProductService(st)
	transactionService := services.NewTransactionService(st, ledger)
	metricsService := services.NewMetricsService(st)
	authService, err := services.NewAuthService(services.DefaultOperators())
	if err != nil {
		return err
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reportHandler := handlers.NewReportHandler(metricsService)
	settingHandler := handlers.NewSettingHandler(st)

	apiV1 := engine.Group("/api/v1")

	SetupAuthRoutes(apiV1, authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupProductRoutes(authenticated, productHandler)
		SetupTransactionRoutes(authenticated, transactionHandler)
		SetupDashboardRoutes(authenticated, reportHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupSettingsRoutes(authenticated, settingHandler)
	}
	return nil
}
