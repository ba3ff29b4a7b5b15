package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionItemsTotal(t *testing.T) {
	tx := Transaction{Items: []TransactionItem{
		{Subtotal: 4500},
		{Subtotal: 1500},
	}}
	assert.Equal(t, int64(6000), tx.ItemsTotal())

	assert.Equal(t, int64(0), Transaction{}.ItemsTotal())
}
