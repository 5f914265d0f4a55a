package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranapos/kirana-api/internal/application/service"
	"github.com/kiranapos/kirana-api/internal/presentation/http/dto/response"
)

// ReportHandler handles the financial report and insight HTTP requests
type ReportHandler struct {
	reportService  *service.ReportService
	insightService *service.InsightService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, insightService *service.InsightService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		insightService: insightService,
	}
}

// Get handles building the financial report for a period. Without explicit
// dates the report covers the current month to date.
func (h *ReportHandler) Get(c *gin.Context) {
	start, end, ok := parsePeriod(c)
	if !ok {
		return
	}
	if c.Query("start_date") == "" {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	report, err := h.reportService.GetReport(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved successfully", report)
}

// Insights handles building the month's advisories
func (h *ReportHandler) Insights(c *gin.Context) {
	insights, err := h.insightService.GetInsights(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Insights retrieved successfully", insights)
}
