// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"ferropos/internal/domain/audit"
	"ferropos/internal/domain/auth"
	"ferropos/internal/domain/catalog"
	"ferropos/internal/domain/reports"
	"ferropos/internal/domain/sales"
	"ferropos/internal/infrastructure/http/v1/handlers"
	"ferropos/internal/infrastructure/http/v1/middleware"
	"ferropos/internal/infrastructure/storage/postgres"
	"ferropos/pkg/logger"
)

// RouterConfig holds the wired services the router exposes.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService    *auth.Service
	CatalogService *catalog.Service
	SalesService   *sales.Service
	ReportService  *reports.Service
	AuditReader    audit.Reader

	// LowStockThreshold is the default for the low stock report.
	LowStockThreshold int64
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	productHandler := handlers.NewProductHandler(base, cfg.CatalogService, cfg.AuditReader)
	salesHandler := handlers.NewSalesHandler(base, cfg.SalesService)
	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportService, cfg.LowStockThreshold)

	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	apiV1 := router.Group("/api/v1")
	{
		// Login is the only unauthenticated endpoint
		apiV1.POST("/auth/login", authHandler.Login)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		protected.GET("/auth/me", authHandler.Me)

		users := protected.Group("/users", adminOnly)
		{
			users.POST("", authHandler.Register)
			users.GET("", authHandler.List)
		}

		products := protected.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.POST("", adminOnly, productHandler.Create)
			products.PUT("/:id", adminOnly, productHandler.Update)
			products.POST("/:id/deactivate", adminOnly, productHandler.Deactivate)
			products.POST("/:id/reactivate", adminOnly, productHandler.Reactivate)
			products.PUT("/:id/stock", adminOnly, productHandler.AdjustStock)
			products.GET("/:id/audit", adminOnly, productHandler.AuditHistory)
		}

		salesGroup := protected.Group("/sales")
		{
			salesGroup.POST("", salesHandler.Commit)
			salesGroup.GET("", salesHandler.History)
			salesGroup.DELETE("", adminOnly, salesHandler.Purge)
		}

		reportsGroup := protected.Group("/reports")
		{
			reportsGroup.GET("/daily", reportsHandler.GetDailyHistory)
			reportsGroup.GET("/low-stock", reportsHandler.GetLowStock)
		}
	}

	return router
}
