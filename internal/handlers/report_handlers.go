package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/internal/services"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

// ReportHandler serves dashboard summaries and sales reports.
type ReportHandler struct {
	metricsService services.MetricsService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(ms services.MetricsService) *ReportHandler {
	return &ReportHandler{metricsService: ms}
}

// GetDashboardSummary provides the summary card metrics.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	summary, err := h.metricsService.GetDashboardSummary(c.Request.Context(), time.Now())
	if err != nil {
		respondStorageOrInternal(c, err, "GetDashboardSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// maxChartDays bounds the chart window so a single request cannot ask
// for an unbounded series.
const maxChartDays = 366

// GetSalesChart returns the trailing daily sales/profit series for the
// dashboard chart. Defaults to 7 days, capped at a year.
func (h *ReportHandler) GetSalesChart(c *gin.Context) {
	days := 7
	if daysStr := c.Query("days"); daysStr != "" {
		if n, err := strconv.Atoi(daysStr); err == nil && n > 0 {
			days = n
		}
	}
	if days > maxChartDays {
		days = maxChartDays
	}

	points, err := h.metricsService.GetSalesSeries(c.Request.Context(), time.Now(), days)
	if err != nil {
		respondStorageOrInternal(c, err, "GetSalesChart")
		return
	}
	c.JSON(http.StatusOK, points)
}

// GetSalesReport returns the daily series over an explicit date range
// plus totals, for the reports page.
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	var params models.ReportRequestParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	start, end, err := parseReportRange(params)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid report date range.", err.Error()))
		return
	}

	report, err := h.metricsService.GetSalesReport(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReportRange) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid report date range.", err.Error()))
			return
		}
		respondStorageOrInternal(c, err, "GetSalesReport")
		return
	}
	c.JSON(http.StatusOK, report)
}

// parseReportRange parses start/end query dates, defaulting to the
// trailing 7 days inclusive of today.
func parseReportRange(params models.ReportRequestParams) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -6)
	end := now

	if params.StartDate != "" {
		parsed, err := time.ParseInLocation(services.ReportDateLayout, params.StartDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = parsed
	}
	if params.EndDate != "" {
		parsed, err := time.ParseInLocation(services.ReportDateLayout, params.EndDate, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = parsed
	}
	return start, end, nil
}
