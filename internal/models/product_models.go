package models

// DefaultMinimumStock is used when a product has no explicit minimum
// stock threshold configured.
const DefaultMinimumStock = 5

// StockLevel is the urgency band a product's stock level falls into.
type StockLevel string

const (
	StockOut    StockLevel = "out"
	StockLow    StockLevel = "low"
	StockMedium StockLevel = "medium"
	StockHigh   StockLevel = "high"
)

// Product represents a catalog item. Prices are whole rupiah.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	BuyPrice     int64  `json:"buyPrice"`
	SellPrice    int64  `json:"sellPrice"`
	CurrentStock int    `json:"currentStock"`
	MinimumStock int    `json:"minimumStock,omitempty"`
}

// EffectiveMinimumStock returns the product's minimum-stock threshold,
// falling back to DefaultMinimumStock when none is set.
func (p Product) EffectiveMinimumStock() int {
	if p.MinimumStock <= 0 {
		return DefaultMinimumStock
	}
	return p.MinimumStock
}

// ClassifyStock maps a stock level to its band given the minimum-stock
// threshold. Ties resolve to the more urgent band.
func ClassifyStock(currentStock, minimumStock int) StockLevel {
	switch {
	case currentStock == 0:
		return StockOut
	case currentStock <= minimumStock:
		return StockLow
	case currentStock <= 2*minimumStock:
		return StockMedium
	default:
		return StockHigh
	}
}

// StockLevel classifies the product using its effective threshold.
func (p Product) StockLevel() StockLevel {
	return ClassifyStock(p.CurrentStock, p.EffectiveMinimumStock())
}

// IsLowStock reports whether the product counts toward the dashboard
// low-stock figure (at or below its effective threshold).
func (p Product) IsLowStock() bool {
	return p.CurrentStock <= p.EffectiveMinimumStock()
}
