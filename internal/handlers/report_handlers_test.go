package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/internal/services"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
)

func newReportTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := NewReportHandler(services.NewMetricsService(store.NewMemStore()))

	engine := gin.New()
	engine.GET("/dashboard/summary", handler.GetDashboardSummary)
	engine.GET("/dashboard/sales-chart", handler.GetSalesChart)
	engine.GET("/reports/sales", handler.GetSalesReport)
	return engine
}

func chartPoints(t *testing.T, engine *gin.Engine, path string) []models.SalesPoint {
	t.Helper()
	rec := doJSON(t, engine, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var points []models.SalesPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	return points
}

func TestReportHandlerGetSalesChart(t *testing.T) {
	engine := newReportTestServer(t)

	t.Run("Defaults to seven days", func(t *testing.T) {
		assert.Len(t, chartPoints(t, engine, "/dashboard/sales-chart"), 7)
	})

	t.Run("Honors an explicit window", func(t *testing.T) {
		assert.Len(t, chartPoints(t, engine, "/dashboard/sales-chart?days=30"), 30)
	})

	t.Run("Caps an oversized window", func(t *testing.T) {
		assert.Len(t, chartPoints(t, engine, "/dashboard/sales-chart?days=1000000000"), maxChartDays)
	})

	t.Run("Ignores a malformed window", func(t *testing.T) {
		assert.Len(t, chartPoints(t, engine, "/dashboard/sales-chart?days=abc"), 7)
		assert.Len(t, chartPoints(t, engine, "/dashboard/sales-chart?days=-3"), 7)
	})
}

func TestReportHandlerGetSalesReport(t *testing.T) {
	engine := newReportTestServer(t)

	t.Run("Explicit range", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/reports/sales?start_date=2024-05-01&end_date=2024-05-07", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var report models.SalesReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "2024-05-01", report.StartDate)
		assert.Equal(t, "2024-05-07", report.EndDate)
		assert.Len(t, report.Points, 7)
	})

	t.Run("Inverted range", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/reports/sales?start_date=2024-05-07&end_date=2024-05-01", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed date", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodGet, "/reports/sales?start_date=May-1", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
