package models

// DashboardSummary holds the key metrics shown on the dashboard summary
// cards. Sales figures are rupiah sums of transaction totals.
type DashboardSummary struct {
	SalesToday        int64 `json:"salesToday"`
	SalesWeek         int64 `json:"salesWeek"`
	SalesMonth        int64 `json:"salesMonth"`
	TransactionsToday int   `json:"transactionsToday"`
	LowStockCount     int   `json:"lowStockCount"`
	ProfitMonth       int64 `json:"profitMonth"`
	ProfitGrowth      int   `json:"profitGrowth"` // percent vs previous month
}

// SalesPoint is one calendar day of the sales/profit series.
type SalesPoint struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Sales  int64  `json:"sales"`
	Profit int64  `json:"profit"`
}

// SalesReport is a daily series over an explicit date range plus totals.
type SalesReport struct {
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Points      []SalesPoint `json:"points"`
	TotalSales  int64        `json:"totalSales"`
	TotalProfit int64        `json:"totalProfit"`
}

// ReportRequestParams holds the query parameters for report endpoints.
type ReportRequestParams struct {
	StartDate string `form:"start_date"` // YYYY-MM-DD
	EndDate   string `form:"end_date"`   // YYYY-MM-DD
}
