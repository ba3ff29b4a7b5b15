package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
)

func ledgerFixture() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Buku Tulis", CurrentStock: 10},
		{ID: "p2", Name: "Pulpen", CurrentStock: 4},
	}
}

func TestStockLedgerApplySale(t *testing.T) {
	ledger := NewStockLedger()

	t.Run("Decrements matched products", func(t *testing.T) {
		products := ledgerFixture()
		adjusted, err := ledger.ApplySale(products, []models.TransactionItem{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 4},
		})
		require.NoError(t, err)
		assert.Equal(t, 7, adjusted[0].CurrentStock)
		assert.Equal(t, 0, adjusted[1].CurrentStock)
	})

	t.Run("Leaves input untouched", func(t *testing.T) {
		products := ledgerFixture()
		_, err := ledger.ApplySale(products, []models.TransactionItem{{ProductID: "p1", Quantity: 3}})
		require.NoError(t, err)
		assert.Equal(t, 10, products[0].CurrentStock)
	})

	t.Run("Rejects oversell", func(t *testing.T) {
		adjusted, err := ledger.ApplySale(ledgerFixture(), []models.TransactionItem{
			{ProductID: "p2", Quantity: 5},
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Nil(t, adjusted)
	})

	t.Run("Skips dangling product references", func(t *testing.T) {
		adjusted, err := ledger.ApplySale(ledgerFixture(), []models.TransactionItem{
			{ProductID: "ghost", Quantity: 99},
			{ProductID: "p1", Quantity: 1},
		})
		require.NoError(t, err)
		assert.Equal(t, 9, adjusted[0].CurrentStock)
		assert.Equal(t, 4, adjusted[1].CurrentStock)
	})
}

func TestStockLedgerRevertSale(t *testing.T) {
	ledger := NewStockLedger()

	t.Run("Restores matched products", func(t *testing.T) {
		restored := ledger.RevertSale(ledgerFixture(), []models.TransactionItem{
			{ProductID: "p1", Quantity: 3},
		})
		assert.Equal(t, 13, restored[0].CurrentStock)
	})

	t.Run("Skips dangling product references", func(t *testing.T) {
		restored := ledger.RevertSale(ledgerFixture(), []models.TransactionItem{
			{ProductID: "ghost", Quantity: 2},
		})
		assert.Equal(t, ledgerFixture(), restored)
	})

	t.Run("Round trips with ApplySale", func(t *testing.T) {
		products := ledgerFixture()
		items := []models.TransactionItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 1},
		}
		adjusted, err := ledger.ApplySale(products, items)
		require.NoError(t, err)
		assert.Equal(t, products, ledger.RevertSale(adjusted, items))
	})
}
