package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/service"
)

// LabelService is the label issuance surface the label handlers consume.
type LabelService interface {
	IssueLabels(ctx context.Context, ids []int64) (string, []service.IssueFailure, error)
	FulfillOrders(ctx context.Context, fulfillmentOrderGIDs []string) []service.IssueFailure
}

// HandlePrintLabel handles POST /api/printLabel
func HandlePrintLabel(svc LabelService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PrintLabelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if len(req.SelIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no orders selected"})
			return
		}

		ids := make([]int64, 0, len(req.SelIDs))
		for _, sel := range req.SelIDs {
			id, err := service.ParseOrderID(sel.ID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ids = append(ids, id)
		}

		content, failures, err := svc.IssueLabels(c.Request.Context(), ids)
		if err != nil {
			logger.Error("Failed to issue labels", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to issue labels"})
			return
		}
		if len(failures) > 0 {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":    "label issuance failed for some orders",
				"failures": failures,
			})
			return
		}

		c.JSON(http.StatusOK, service.PrintLabelResponse{Content: content})
	}
}

// HandleFulfillmentOrders handles POST /api/fulfillmentOrders
func HandleFulfillmentOrders(svc LabelService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.FulfillmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if len(req.FulfillmentIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fulfillment orders selected"})
			return
		}

		if failures := svc.FulfillOrders(c.Request.Context(), req.FulfillmentIDs); len(failures) > 0 {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":    "fulfillment failed for some orders",
				"failures": failures,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "fulfilled"})
	}
}
