package router

import (
	"github.com/gin-gonic/gin"

	"github.com/khoirulmuhlisin/unitproduksi/internal/handlers"
	"github.com/khoirulmuhlisin/unitproduksi/internal/middleware"
)

// SetupAuthRoutes sets up the authentication routes. Login is public;
// profile and logout require a token.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)

		authRequiredRoutes := authRoutes.Group("")
		authRequiredRoutes.Use(middleware.AuthMiddleware())
		{
			authRequiredRoutes.POST("/logout", authHandler.Logout)
			authRequiredRoutes.GET("/me", authHandler.GetCurrentUser)
		}
	}
}

// SetupProductRoutes sets up the product catalog routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	productRoutes.Use(middleware.RoleAuthMiddleware("admin", "staff"))
	{
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupTransactionRoutes sets up the sale transaction routes.
func SetupTransactionRoutes(authenticatedGroup *gin.RouterGroup, transactionHandler *handlers.TransactionHandler) {
	transactionRoutes := authenticatedGroup.Group("/transactions")
	transactionRoutes.Use(middleware.RoleAuthMiddleware("admin", "staff"))
	{
		transactionRoutes.POST("", transactionHandler.CreateTransaction)
		transactionRoutes.GET("", transactionHandler.GetTransactions)
		transactionRoutes.GET("/:id", transactionHandler.GetTransactionByID)
		transactionRoutes.PUT("/:id", transactionHandler.UpdateTransaction)
		transactionRoutes.DELETE("/:id", transactionHandler.DeleteTransaction)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware("admin", "staff"))
	{
		dashboardRoutes.GET("/summary", reportHandler.GetDashboardSummary)
		dashboardRoutes.GET("/sales-chart", reportHandler.GetSalesChart)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware("admin", "staff"))
	{
		reportRoutes.GET("/sales", reportHandler.GetSalesReport)
	}
}

// SetupSettingsRoutes sets up the shop settings routes. Writes are
// admin-only.
func SetupSettingsRoutes(authenticatedGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	settingsRoutes := authenticatedGroup.Group("/settings")
	{
		settingsRoutes.GET("", middleware.RoleAuthMiddleware("admin", "staff"), settingHandler.GetSettings)
		settingsRoutes.PUT("", middleware.RoleAuthMiddleware("admin"), settingHandler.UpdateSettings)
	}
}
