package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/service"
	"github.com/addictonline/orderprint/internal/shopify"
)

// OrderService is the aggregation surface the order handlers consume.
type OrderService interface {
	ListOrders(ctx context.Context, vars shopify.OrderListVariables) (*shopify.OrdersConnection, error)
	Counts(ctx context.Context, createdAtMin string) (service.OrderCounts, error)
	PhoneSearch(ctx context.Context, query, phone string) ([]shopify.OrderEdge, error)
}

// HandleOrdersList handles POST /api/ordersList
func HandleOrdersList(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.OrderListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		orders, err := svc.ListOrders(c.Request.Context(), req.Variables)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to query order store"})
			return
		}

		counts, err := svc.Counts(c.Request.Context(), req.CreatedAt)
		if err != nil {
			logger.Error("Failed to count orders", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to query order counts"})
			return
		}

		c.JSON(http.StatusOK, service.OrderListResponse{
			Orders:          orders,
			AllCount:        counts.All,
			ProcessingCount: counts.Processing,
			FulfilledCount:  counts.Fulfilled,
		})
	}
}

// HandlePhoneSearch handles POST /api/phoneSearch
func HandlePhoneSearch(svc OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PhoneSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
			return
		}

		edges, err := svc.PhoneSearch(c.Request.Context(), req.Variables.Query, req.Phone)
		if err != nil {
			logger.Error("Failed to search orders by phone", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to query order store"})
			return
		}

		c.JSON(http.StatusOK, service.PhoneSearchResponse{Orders: edges})
	}
}
