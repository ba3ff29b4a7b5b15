// Package store implements the record store the POS core persists into:
// two whole-collection documents (products, transactions), a singleton
// settings record, a persisted transaction counter and a "collection
// changed" notification feed.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
)

// Collection names.
const (
	CollectionProducts     = "products"
	CollectionTransactions = "transactions"
	CollectionSettings     = "settings"
)

var (
	// ErrStorageFailure is returned when an underlying read or write fails.
	// Callers must treat the whole operation as failed.
	ErrStorageFailure = errors.New("record store read/write failed")
)

// RecordStore is the persistence contract for the POS core. Reads return
// full collections; writes replace them whole and emit a change signal.
// Writers are serialized by the implementation (single logical writer).
type RecordStore interface {
	// Lock serializes one read-modify-write cycle over the collections.
	// A writer holds it from its first read to its last write, so two
	// concurrent commits cannot both read the same snapshot and have the
	// later write discard the earlier one.
	sync.Locker

	Products(ctx context.Context) ([]models.Product, error)
	SaveProducts(ctx context.Context, products []models.Product) error

	Transactions(ctx context.Context) ([]models.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []models.Transaction) error

	Settings(ctx context.Context) (models.ShopSettings, error)
	SaveSettings(ctx context.Context, settings models.ShopSettings) error

	// NextTransactionSeq returns the next value of the monotonic counter
	// persisted alongside the transaction collection. Sequence numbers are
	// never reused, so display ids survive deletions without colliding.
	NextTransactionSeq(ctx context.Context) (int64, error)

	// Subscribe returns a channel that receives a coalesced signal after
	// every successful write to the named collection. Receivers re-fetch
	// and recompute; the signal carries no diff.
	Subscribe(collection string) <-chan struct{}
}

// notifier fans change signals out to subscribers. Channels are buffered
// with capacity one so repeated writes coalesce instead of blocking the
// writer.
type notifier struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

func (n *notifier) Subscribe(collection string) <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[string][]chan struct{})
	}
	ch := make(chan struct{}, 1)
	n.subs[collection] = append(n.subs[collection], ch)
	return ch
}

func (n *notifier) broadcast(collection string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
