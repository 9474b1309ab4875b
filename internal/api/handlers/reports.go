package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/service"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
const excelFileName = "reports.xlsx"

// ReportService is the report surface the report handlers consume.
type ReportService interface {
	ListReport(ctx context.Context, req service.ReportListRequest) (*service.ReportListResponse, error)
	ExportExcel(ctx context.Context, req service.ReportListRequest) (*excelize.File, error)
}

// HandleReportsList handles POST /api/reportsList
func HandleReportsList(svc ReportService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ReportListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		resp, err := svc.ListReport(c.Request.Context(), req)
		if err != nil {
			logger.Error("Failed to build report", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to query order store"})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}

// HandleDownloadExcel handles POST /api/downloadExcel
func HandleDownloadExcel(svc ReportService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ReportListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		workbook, err := svc.ExportExcel(c.Request.Context(), req)
		if err != nil {
			logger.Error("Failed to export report", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to build report workbook"})
			return
		}

		c.Header("Content-Type", excelContentType)
		c.Header("Content-Disposition", "attachment; filename="+excelFileName)
		c.Status(http.StatusOK)

		if err := workbook.Write(c.Writer); err != nil {
			// Headers are gone already; all we can do is log.
			logger.Error("Failed to stream report workbook", zap.Error(err))
		}
	}
}
