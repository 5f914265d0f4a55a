package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranapos/kirana-api/internal/application/service"
	"github.com/kiranapos/kirana-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles the overview HTTP request
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles building the dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", dashboard)
}
