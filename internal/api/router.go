package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/api/handlers"
	"github.com/addictonline/orderprint/internal/api/middleware"
	"github.com/addictonline/orderprint/internal/config"
)

// Services bundles the service layer the router exposes.
type Services struct {
	Orders  handlers.OrderService
	Reports handlers.ReportService
	Labels  handlers.LabelService
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, svcs Services, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Staff routes (require authentication)
	apiRoutes := router.Group("/api")
	apiRoutes.Use(middleware.AuthMiddleware(cfg.API, logger))
	{
		apiRoutes.POST("/ordersList", handlers.HandleOrdersList(svcs.Orders, logger))
		apiRoutes.POST("/phoneSearch", handlers.HandlePhoneSearch(svcs.Orders, logger))
		apiRoutes.POST("/reportsList", handlers.HandleReportsList(svcs.Reports, logger))
		apiRoutes.POST("/downloadExcel", handlers.HandleDownloadExcel(svcs.Reports, logger))
		apiRoutes.POST("/fulfillmentOrders", handlers.HandleFulfillmentOrders(svcs.Labels, logger))
		apiRoutes.POST("/printLabel", handlers.HandlePrintLabel(svcs.Labels, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		)
	}
}
