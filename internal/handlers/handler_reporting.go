package handlers

import (
	"net/http"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	rg.GET("/dashboard", h.dashboard)
	reports := rg.Group("/reports")
	{
		reports.GET("/distribution", h.distribution)
		reports.GET("/monthly", h.monthly)
	}
}

// dashboard godoc
// @Summary Dashboard summary
// @Description Last 30 days against the 30 before them, the top expense category and a 180 day expense series, all in the user's display currency.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := h.reportingService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build dashboard")
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}

// distribution godoc
// @Summary Distribution report
// @Tags reports
// @Produce json
// @Param kind query string true "INCOME or EXPENSE"
// @Param groupBy query string false "category or source"
// @Param windowDays query int false "Trailing window" default(30)
// @Success 200 {object} dto.DistributionResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/distribution [get]
func (h *reportingHandler) distribution(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.DistributionParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	kind := domain.RecordKind(strings.ToUpper(params.Kind))
	dist, err := h.reportingService.Distribution(c.Request.Context(), userID, kind, params.GroupBy, params.WindowDays)
	if err != nil {
		respondError(c, err, "Failed to build distribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToDistributionResponse(dist))
}

// monthly godoc
// @Summary Monthly series
// @Tags reports
// @Produce json
// @Param kind query string true "INCOME or EXPENSE"
// @Param windowDays query int false "Trailing window" default(180)
// @Success 200 {object} dto.MonthlySeriesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) monthly(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.MonthlySeriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	kind := domain.RecordKind(strings.ToUpper(params.Kind))
	series, err := h.reportingService.MonthlySeries(c.Request.Context(), userID, kind, params.WindowDays)
	if err != nil {
		respondError(c, err, "Failed to build monthly series")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlySeriesResponse(series))
}
