package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/internal/store"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmptyCart           = errors.New("transaction must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be positive")
	ErrInsufficientPayment = errors.New("cash received is less than the transaction total")
)

// TransactionItemRequest is one requested line of a sale. Name, price and
// subtotal are snapshotted from the live product at commit time, never
// taken from the client.
type TransactionItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// TransactionRequest is used for creating or replacing a transaction.
type TransactionRequest struct {
	Items        []TransactionItemRequest `json:"items" binding:"required,dive"`
	CashReceived int64                    `json:"cashReceived"`
	Date         *time.Time               `json:"date"` // defaults to now
}

// TransactionService manages the transaction lifecycle together with the
// compensating stock adjustments, keeping the two collections consistent.
type TransactionService interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, req TransactionRequest) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error)
}

type transactionService struct {
	store  store.RecordStore
	ledger StockLedger
	now    func() time.Time
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(st store.RecordStore, ledger StockLedger) TransactionService {
	return &transactionService{store: st, ledger: ledger, now: time.Now}
}

// CreateTransaction commits a new sale: snapshot items from the live
// catalog, decrement stock, persist both collections as a unit of work.
func (s *transactionService) CreateTransaction(ctx context.Context, req TransactionRequest) (*models.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Held across the whole read-modify-write cycle: a concurrent commit
	// reading the same snapshot would have its writes overwritten.
	s.store.Lock()
	defer s.store.Unlock()

	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	items, total, err := buildItems(products, req.Items)
	if err != nil {
		return nil, err
	}
	if req.CashReceived < total {
		return nil, fmt.Errorf("%w: total %d, received %d", ErrInsufficientPayment, total, req.CashReceived)
	}

	adjusted, err := s.ledger.ApplySale(products, items)
	if err != nil {
		return nil, err
	}

	seq, err := s.store.NextTransactionSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("assigning transaction id: %w", err)
	}

	tx := models.Transaction{
		ID:           utils.FormatTransactionID(seq),
		Items:        items,
		Total:        total,
		CashReceived: req.CashReceived,
		Change:       req.CashReceived - total,
		Date:         s.txDate(req),
	}

	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}

	if err := s.commit(ctx, products, adjusted, append(transactions, tx)); err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction replaces a transaction in place, keeping its id.
// Stock for the original items is reverted before the new items are
// applied; applying first would double-count any product common to both
// item sets.
func (s *transactionService) UpdateTransaction(ctx context.Context, id string, req TransactionRequest) (*models.Transaction, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	s.store.Lock()
	defer s.store.Unlock()

	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	idx := findTransaction(transactions, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}

	reverted := s.ledger.RevertSale(products, transactions[idx].Items)

	items, total, err := buildItems(reverted, req.Items)
	if err != nil {
		return nil, err
	}
	if req.CashReceived < total {
		return nil, fmt.Errorf("%w: total %d, received %d", ErrInsufficientPayment, total, req.CashReceived)
	}

	adjusted, err := s.ledger.ApplySale(reverted, items)
	if err != nil {
		return nil, err
	}

	tx := models.Transaction{
		ID:           id,
		Items:        items,
		Total:        total,
		CashReceived: req.CashReceived,
		Change:       req.CashReceived - total,
		Date:         s.txDate(req),
	}
	transactions[idx] = tx

	if err := s.commit(ctx, products, adjusted, transactions); err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction and restores the stock its
// items consumed.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}
	idx := findTransaction(transactions, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	products, err := s.store.Products(ctx)
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}

	reverted := s.ledger.RevertSale(products, transactions[idx].Items)
	remaining := append(transactions[:idx:idx], transactions[idx+1:]...)

	return s.commit(ctx, products, reverted, remaining)
}

func (s *transactionService) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	return transactions, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	transactions, err := s.store.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	idx := findTransaction(transactions, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return &transactions[idx], nil
}

// commit persists the adjusted product collection and the new transaction
// collection as one logical unit. If the transaction write fails after the
// stock write succeeded, the pre-mutation product snapshot is written back
// so the two collections never drift apart.
func (s *transactionService) commit(ctx context.Context, original, adjusted []models.Product, transactions []models.Transaction) error {
	if err := s.store.SaveProducts(ctx, adjusted); err != nil {
		return fmt.Errorf("persisting stock update: %w", err)
	}
	if err := s.store.SaveTransactions(ctx, transactions); err != nil {
		if rbErr := s.store.SaveProducts(ctx, original); rbErr != nil {
			utils.LogError(rbErr, "Compensating stock rollback failed; collections may be inconsistent")
		}
		return fmt.Errorf("persisting transactions: %w", err)
	}
	return nil
}

func (s *transactionService) txDate(req TransactionRequest) time.Time {
	if req.Date != nil {
		return *req.Date
	}
	return s.now()
}

// buildItems resolves requested lines against the live catalog, taking
// name/price snapshots and computing subtotals server-side.
func buildItems(products []models.Product, reqs []TransactionItemRequest) ([]models.TransactionItem, int64, error) {
	index := indexProducts(products)
	items := make([]models.TransactionItem, 0, len(reqs))
	var total int64
	for _, r := range reqs {
		if r.Quantity <= 0 {
			return nil, 0, fmt.Errorf("%w: product %s, quantity %d", ErrInvalidQuantity, r.ProductID, r.Quantity)
		}
		i, ok := index[r.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: product %s", ErrProductNotFound, r.ProductID)
		}
		p := products[i]
		subtotal := p.SellPrice * int64(r.Quantity)
		items = append(items, models.TransactionItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Price:       p.SellPrice,
			Quantity:    r.Quantity,
			Subtotal:    subtotal,
		})
		total += subtotal
	}
	return items, total, nil
}

func findTransaction(transactions []models.Transaction, id string) int {
	for i, t := range transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}
