package models

import "time"

// TransactionItem is a single line of a sale. ProductName and Price are
// snapshots taken at sale time; ProductID is a weak reference that may
// dangle once the product is deleted from the catalog.
type TransactionItem struct {
	ProductID   string `json:"productId,omitempty"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Subtotal    int64  `json:"subtotal"`
}

// Transaction is a committed sale: line items, the payment tendered and
// the change returned. Date is the completion time, or the time of the
// last edit for updated transactions.
type Transaction struct {
	ID           string            `json:"id"`
	Items        []TransactionItem `json:"items"`
	Total        int64             `json:"total"`
	CashReceived int64             `json:"cashReceived"`
	Change       int64             `json:"change"`
	Date         time.Time         `json:"date"`
}

// ItemsTotal sums the line subtotals. A committed transaction's Total
// always equals this sum.
func (t Transaction) ItemsTotal() int64 {
	var sum int64
	for _, it := range t.Items {
		sum += it.Subtotal
	}
	return sum
}
