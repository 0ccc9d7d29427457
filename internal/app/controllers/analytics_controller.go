package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fulafia/esp-portal/internal/app/models/dto"
	"github.com/fulafia/esp-portal/internal/app/services"
	"github.com/fulafia/esp-portal/internal/middleware"
)

// AnalyticsController handles the admin analytics endpoint
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// Summary returns application volume aggregates
// @Summary Analytics summary
// @Description Returns application counts grouped by status, skill and department plus roster totals
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AnalyticsSummary} "Summary retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/analytics [get]
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	resp, err := c.analyticsService.Summary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
