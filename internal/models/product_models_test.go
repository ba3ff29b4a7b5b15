package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyStock(t *testing.T) {
	t.Run("Band thresholds", func(t *testing.T) {
		assert.Equal(t, StockOut, ClassifyStock(0, 5))
		assert.Equal(t, StockLow, ClassifyStock(1, 5))
		assert.Equal(t, StockLow, ClassifyStock(5, 5))
		assert.Equal(t, StockMedium, ClassifyStock(6, 5))
		assert.Equal(t, StockMedium, ClassifyStock(10, 5))
		assert.Equal(t, StockHigh, ClassifyStock(11, 5))
	})

	t.Run("Urgency never increases as stock grows", func(t *testing.T) {
		urgency := map[StockLevel]int{StockOut: 3, StockLow: 2, StockMedium: 1, StockHigh: 0}
		const minimum = 7
		prev := urgency[ClassifyStock(0, minimum)]
		for stock := 1; stock <= 3*minimum; stock++ {
			cur := urgency[ClassifyStock(stock, minimum)]
			assert.LessOrEqual(t, cur, prev, "stock %d", stock)
			prev = cur
		}
	})
}

func TestProductStockLevel(t *testing.T) {
	t.Run("Uses fallback minimum when unset", func(t *testing.T) {
		p := Product{CurrentStock: 5}
		assert.Equal(t, DefaultMinimumStock, p.EffectiveMinimumStock())
		assert.Equal(t, StockLow, p.StockLevel())
		assert.True(t, p.IsLowStock())
	})

	t.Run("Uses configured minimum", func(t *testing.T) {
		p := Product{CurrentStock: 5, MinimumStock: 2}
		assert.Equal(t, StockHigh, p.StockLevel())
		assert.False(t, p.IsLowStock())
	})
}
