package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
)

var metricsNow = time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC)

func metricsProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Buku Tulis", BuyPrice: 1000, SellPrice: 1500, CurrentStock: 10, MinimumStock: 3},
		{ID: "p2", Name: "Pulpen", BuyPrice: 2000, SellPrice: 3000, CurrentStock: 2, MinimumStock: 2},
	}
}

func saleOn(date time.Time, productID string, quantity int, price int64) models.Transaction {
	subtotal := price * int64(quantity)
	return models.Transaction{
		Items: []models.TransactionItem{
			{ProductID: productID, Price: price, Quantity: quantity, Subtotal: subtotal},
		},
		Total: subtotal,
		Date:  date,
	}
}

func TestSummarize(t *testing.T) {
	products := metricsProducts()

	t.Run("Buckets sales by window", func(t *testing.T) {
		transactions := []models.Transaction{
			saleOn(metricsNow.Add(-2*time.Hour), "p1", 4, 1500),              // today, 6000
			saleOn(metricsNow.Add(2*time.Hour), "p2", 1, 3000),               // later today, 3000
			saleOn(metricsNow.AddDate(0, 0, -3), "p1", 2, 1500),              // this week, 3000
			saleOn(metricsNow.AddDate(0, 0, -20), "p2", 2, 3000),             // this month, 6000
			saleOn(metricsNow.AddDate(0, 0, -40), "p1", 6, 1500),             // previous month, 9000
			saleOn(metricsNow.AddDate(0, -3, 0), "p1", 100, 1500),            // out of every window
		}

		summary := Summarize(products, transactions, metricsNow)

		assert.Equal(t, int64(9000), summary.SalesToday)
		assert.Equal(t, 2, summary.TransactionsToday)
		assert.Equal(t, int64(12000), summary.SalesWeek)
		assert.Equal(t, int64(18000), summary.SalesMonth)
	})

	t.Run("Profit uses live prices and month over month growth", func(t *testing.T) {
		transactions := []models.Transaction{
			saleOn(metricsNow, "p1", 4, 1500),               // margin 500 x 4 = 2000
			saleOn(metricsNow.AddDate(0, 0, -40), "p2", 1, 3000), // previous month, margin 1000
		}

		summary := Summarize(products, transactions, metricsNow)
		assert.Equal(t, int64(2000), summary.ProfitMonth)
		assert.Equal(t, 100, summary.ProfitGrowth)
	})

	t.Run("Profit shifts when catalog prices change", func(t *testing.T) {
		transactions := []models.Transaction{saleOn(metricsNow, "p1", 4, 1500)}

		repriced := metricsProducts()
		repriced[0].SellPrice = 2000

		before := Summarize(products, transactions, metricsNow)
		after := Summarize(repriced, transactions, metricsNow)
		assert.Equal(t, int64(2000), before.ProfitMonth)
		assert.Equal(t, int64(4000), after.ProfitMonth)
	})

	t.Run("Dangling items contribute zero profit", func(t *testing.T) {
		transactions := []models.Transaction{saleOn(metricsNow, "ghost", 5, 9000)}
		summary := Summarize(products, transactions, metricsNow)
		assert.Equal(t, int64(45000), summary.SalesToday)
		assert.Equal(t, int64(0), summary.ProfitMonth)
	})

	t.Run("Counts low stock products", func(t *testing.T) {
		summary := Summarize(products, nil, metricsNow)
		assert.Equal(t, 1, summary.LowStockCount)
	})

	t.Run("Idempotent over the same inputs", func(t *testing.T) {
		transactions := []models.Transaction{
			saleOn(metricsNow, "p1", 2, 1500),
			saleOn(metricsNow.AddDate(0, 0, -5), "p2", 1, 3000),
		}
		first := Summarize(products, transactions, metricsNow)
		second := Summarize(products, transactions, metricsNow)
		assert.Equal(t, first, second)
	})
}

func TestProfitGrowth(t *testing.T) {
	assert.Equal(t, 50, profitGrowth(1500, 1000))
	assert.Equal(t, -50, profitGrowth(500, 1000))
	assert.Equal(t, 100, profitGrowth(1, 0))
	assert.Equal(t, 0, profitGrowth(0, 0))
	assert.Equal(t, -100, profitGrowth(0, 1000))
	assert.Equal(t, 33, profitGrowth(4000, 3000))
}

func TestDailySeries(t *testing.T) {
	products := metricsProducts()
	start := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	t.Run("One point per day with zero fill", func(t *testing.T) {
		transactions := []models.Transaction{
			saleOn(time.Date(2024, 5, 13, 10, 0, 0, 0, time.UTC), "p1", 2, 1500),
			saleOn(time.Date(2024, 5, 13, 16, 0, 0, 0, time.UTC), "p1", 1, 1500),
			saleOn(time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC), "p2", 1, 3000),
			saleOn(time.Date(2024, 5, 12, 9, 0, 0, 0, time.UTC), "p2", 9, 3000), // outside range
		}

		points := DailySeries(products, transactions, start, end)
		require.Len(t, points, 3)

		assert.Equal(t, "2024-05-13", points[0].Date)
		assert.Equal(t, int64(4500), points[0].Sales)
		assert.Equal(t, int64(1500), points[0].Profit)

		assert.Equal(t, "2024-05-14", points[1].Date)
		assert.Zero(t, points[1].Sales)
		assert.Zero(t, points[1].Profit)

		assert.Equal(t, "2024-05-15", points[2].Date)
		assert.Equal(t, int64(3000), points[2].Sales)
		assert.Equal(t, int64(1000), points[2].Profit)
	})

	t.Run("Single day range", func(t *testing.T) {
		points := DailySeries(products, nil, end, end)
		require.Len(t, points, 1)
		assert.Equal(t, "2024-05-15", points[0].Date)
	})
}

func TestMetricsService(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) *store.MemStore {
		t.Helper()
		st := store.NewMemStore()
		require.NoError(t, st.SaveProducts(ctx, metricsProducts()))
		require.NoError(t, st.SaveTransactions(ctx, []models.Transaction{
			saleOn(metricsNow, "p1", 2, 1500),
			saleOn(metricsNow.AddDate(0, 0, -2), "p2", 1, 3000),
		}))
		return st
	}

	t.Run("GetDashboardSummary", func(t *testing.T) {
		svc := NewMetricsService(newStore(t))
		summary, err := svc.GetDashboardSummary(ctx, metricsNow)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), summary.SalesToday)
		assert.Equal(t, int64(6000), summary.SalesWeek)
	})

	t.Run("GetSalesSeries defaults to seven days", func(t *testing.T) {
		svc := NewMetricsService(newStore(t))
		points, err := svc.GetSalesSeries(ctx, metricsNow, 0)
		require.NoError(t, err)
		require.Len(t, points, 7)
		assert.Equal(t, "2024-05-09", points[0].Date)
		assert.Equal(t, "2024-05-15", points[6].Date)
	})

	t.Run("GetSalesReport totals the range", func(t *testing.T) {
		svc := NewMetricsService(newStore(t))
		report, err := svc.GetSalesReport(ctx,
			metricsNow.AddDate(0, 0, -6), metricsNow)
		require.NoError(t, err)
		assert.Equal(t, "2024-05-09", report.StartDate)
		assert.Equal(t, "2024-05-15", report.EndDate)
		assert.Equal(t, int64(6000), report.TotalSales)
		assert.Equal(t, int64(2000), report.TotalProfit)
	})

	t.Run("GetSalesReport rejects inverted range", func(t *testing.T) {
		svc := NewMetricsService(newStore(t))
		_, err := svc.GetSalesReport(ctx, metricsNow, metricsNow.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, ErrInvalidReportRange)
	})
}
