package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
)

// ErrInvalidReportRange is returned for a report range whose end precedes
// its start.
var ErrInvalidReportRange = errors.New("invalid report date range")

// ReportDateLayout is the wire format for report dates.
const ReportDateLayout = "2006-01-02"

// MetricsService derives dashboard summaries and daily sales/profit
// series from the transaction log and the live product catalog. All
// operations are read-only and safe to recompute on every refresh.
type MetricsService interface {
	GetDashboardSummary(ctx context.Context, now time.Time) (*models.DashboardSummary, error)
	// GetSalesSeries returns the trailing daily series ending today,
	// one point per calendar day, days long.
	GetSalesSeries(ctx context.Context, now time.Time, days int) ([]models.SalesPoint, error)
	// GetSalesReport covers an explicit inclusive date range.
	GetSalesReport(ctx context.Context, start, end time.Time) (*models.SalesReport, error)
}

type metricsService struct {
	store store.RecordStore
}

// NewMetricsService creates a new instance of MetricsService.
func NewMetricsService(st store.RecordStore) MetricsService {
	return &metricsService{store: st}
}

func (s *metricsService) GetDashboardSummary(ctx context.Context, now time.Time) (*models.DashboardSummary, error) {
	products, transactions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	summary := Summarize(products, transactions, now)
	return &summary, nil
}

func (s *metricsService) GetSalesSeries(ctx context.Context, now time.Time, days int) ([]models.SalesPoint, error) {
	if days <= 0 {
		days = 7
	}
	products, transactions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	end := truncateToDay(now)
	start := end.AddDate(0, 0, -(days - 1))
	return DailySeries(products, transactions, start, end), nil
}

func (s *metricsService) GetSalesReport(ctx context.Context, start, end time.Time) (*models.SalesReport, error) {
	start, end = truncateToDay(start), truncateToDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s precedes start date %s",
			ErrInvalidReportRange, end.Format(ReportDateLayout), start.Format(ReportDateLayout))
	}

	products, transactions, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	points := DailySeries(products, transactions, start, end)
	report := &models.SalesReport{
		StartDate: start.Format(ReportDateLayout),
		EndDate:   end.Format(ReportDateLayout),
		Points:    points,
	}
	for _, p := range points {
		report.TotalSales += p.Sales
		report.TotalProfit += p.Profit
	}
	return report, nil
}

func (s *metricsService) load(ctx context.Context) ([]models.Product, []models.Transaction, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading products: %w", err)
	}
	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading transactions: %w", err)
	}
	return products, transactions, nil
}

// Summarize computes the dashboard summary for a reference time. Pure
// over its inputs; time-window comparisons use midnight-truncated dates.
func Summarize(products []models.Product, transactions []models.Transaction, now time.Time) models.DashboardSummary {
	today := truncateToDay(now)
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, -1, 0)
	twoMonthsAgo := today.AddDate(0, -2, 0)

	index := indexProducts(products)

	var summary models.DashboardSummary
	var profitPrevMonth int64
	for _, tx := range transactions {
		day := truncateToDay(tx.Date)
		if day.Equal(today) {
			summary.SalesToday += tx.Total
			summary.TransactionsToday++
		}
		if !day.Before(weekAgo) {
			summary.SalesWeek += tx.Total
		}
		switch {
		case !day.Before(monthAgo):
			summary.SalesMonth += tx.Total
			summary.ProfitMonth += transactionProfit(tx, products, index)
		case !day.Before(twoMonthsAgo):
			profitPrevMonth += transactionProfit(tx, products, index)
		}
	}

	summary.ProfitGrowth = profitGrowth(summary.ProfitMonth, profitPrevMonth)

	for _, p := range products {
		if p.IsLowStock() {
			summary.LowStockCount++
		}
	}
	return summary
}

// DailySeries produces one zero-initialized point per calendar day in
// [start, end] and accumulates matching transactions by truncated-date
// equality.
func DailySeries(products []models.Product, transactions []models.Transaction, start, end time.Time) []models.SalesPoint {
	start, end = truncateToDay(start), truncateToDay(end)

	days := int(end.Sub(start).Hours()/24) + 1
	points := make([]models.SalesPoint, 0, days)
	offsets := make(map[string]int, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(ReportDateLayout)
		offsets[key] = len(points)
		points = append(points, models.SalesPoint{Date: key})
	}

	index := indexProducts(products)
	for _, tx := range transactions {
		key := truncateToDay(tx.Date).Format(ReportDateLayout)
		i, ok := offsets[key]
		if !ok {
			continue
		}
		points[i].Sales += tx.Total
		points[i].Profit += transactionProfit(tx, products, index)
	}
	return points
}

// transactionProfit prices margin from the live product record, not the
// item snapshot: reported historical profit deliberately tracks current
// pricing, while receipts keep the snapshot. Dangling items contribute
// zero.
func transactionProfit(tx models.Transaction, products []models.Product, index map[string]int) int64 {
	var profit int64
	for _, item := range tx.Items {
		i, ok := index[item.ProductID]
		if !ok {
			continue
		}
		profit += (products[i].SellPrice - products[i].BuyPrice) * int64(item.Quantity)
	}
	return profit
}

// profitGrowth is the month-over-month percentage: rounded ratio when the
// previous month had profit, 100 when growth appeared from nothing, 0
// otherwise.
func profitGrowth(current, previous int64) int {
	switch {
	case previous > 0:
		return int(math.Round(float64(current-previous) / float64(previous) * 100))
	case current > 0:
		return 100
	default:
		return 0
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
