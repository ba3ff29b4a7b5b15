package store

import (
	"context"
	"sync"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
)

// MemStore is an in-process RecordStore. All writers go through a single
// mutex, which is the serialization model recommended for a
// non-distributed deployment. Used by tests and the memory backend.
type MemStore struct {
	notifier

	rmw          sync.Mutex
	mu           sync.Mutex
	products     []models.Product
	transactions []models.Transaction
	settings     models.ShopSettings
	seq          int64
}

var _ RecordStore = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store with default settings.
func NewMemStore() *MemStore {
	return &MemStore{settings: models.DefaultShopSettings()}
}

// Lock acquires the read-modify-write lock. Distinct from mu: mu guards
// the collection data during a single call, rmw spans a whole commit
// cycle.
func (s *MemStore) Lock() { s.rmw.Lock() }

func (s *MemStore) Unlock() { s.rmw.Unlock() }

func (s *MemStore) Products(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemStore) SaveProducts(ctx context.Context, products []models.Product) error {
	s.mu.Lock()
	s.products = make([]models.Product, len(products))
	copy(s.products, products)
	s.mu.Unlock()
	s.broadcast(CollectionProducts)
	return nil
}

func (s *MemStore) Transactions(ctx context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Transaction, len(s.transactions))
	for i, t := range s.transactions {
		out[i] = cloneTransaction(t)
	}
	return out, nil
}

func (s *MemStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	s.mu.Lock()
	s.transactions = make([]models.Transaction, len(transactions))
	for i, t := range transactions {
		s.transactions[i] = cloneTransaction(t)
	}
	s.mu.Unlock()
	s.broadcast(CollectionTransactions)
	return nil
}

func (s *MemStore) Settings(ctx context.Context) (models.ShopSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

func (s *MemStore) SaveSettings(ctx context.Context, settings models.ShopSettings) error {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.broadcast(CollectionSettings)
	return nil
}

func (s *MemStore) NextTransactionSeq(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq, nil
}

// cloneTransaction deep-copies the item slice so callers cannot mutate
// stored state through a returned transaction.
func cloneTransaction(t models.Transaction) models.Transaction {
	items := make([]models.TransactionItem, len(t.Items))
	copy(items, t.Items)
	t.Items = items
	return t
}
