package services

import (
	"errors"
	"fmt"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

var (
	// ErrInsufficientStock is returned when a sale would drive a product's
	// stock below zero. The whole operation is rejected rather than
	// clamping silently.
	ErrInsufficientStock = errors.New("insufficient stock for item")
)

// StockLedger translates transaction line items into stock deltas over
// the product collection. Both operations are pure: they return an
// adjusted copy and leave persistence to the caller, so the transaction
// lifecycle can stage product and transaction writes as one unit of work.
type StockLedger interface {
	// ApplySale decrements stock for each resolvable item. Items whose
	// productId no longer resolves are skipped; that product was deleted
	// after being sold and the miss is not an error.
	ApplySale(products []models.Product, items []models.TransactionItem) ([]models.Product, error)

	// RevertSale is the inverse of ApplySale, used when a transaction is
	// edited or deleted. Unresolvable items are skipped the same way.
	RevertSale(products []models.Product, items []models.TransactionItem) []models.Product
}

type stockLedger struct{}

// NewStockLedger creates a new instance of StockLedger.
func NewStockLedger() StockLedger {
	return stockLedger{}
}

func (stockLedger) ApplySale(products []models.Product, items []models.TransactionItem) ([]models.Product, error) {
	out := cloneProducts(products)
	index := indexProducts(out)
	for _, item := range items {
		i, ok := index[item.ProductID]
		if !ok {
			logDanglingItem("apply", item)
			continue
		}
		if out[i].CurrentStock < item.Quantity {
			return nil, fmt.Errorf("%w: %s (available: %d, requested: %d)",
				ErrInsufficientStock, out[i].Name, out[i].CurrentStock, item.Quantity)
		}
		out[i].CurrentStock -= item.Quantity
	}
	return out, nil
}

func (stockLedger) RevertSale(products []models.Product, items []models.TransactionItem) []models.Product {
	out := cloneProducts(products)
	index := indexProducts(out)
	for _, item := range items {
		i, ok := index[item.ProductID]
		if !ok {
			logDanglingItem("revert", item)
			continue
		}
		out[i].CurrentStock += item.Quantity
	}
	return out
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	return out
}

func indexProducts(products []models.Product) map[string]int {
	index := make(map[string]int, len(products))
	for i, p := range products {
		if p.ID != "" {
			index[p.ID] = i
		}
	}
	return index
}

// logDanglingItem records a skipped line item whose product has since
// been deleted, so dangling references stay visible in logs.
func logDanglingItem(op string, item models.TransactionItem) {
	utils.LogDebug("Skipped stock "+op+" for dangling product reference", map[string]interface{}{
		"product_id":   item.ProductID,
		"product_name": item.ProductName,
		"quantity":     item.Quantity,
	})
}
