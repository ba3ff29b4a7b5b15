package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/khoirulmuhlisin/unitproduksi/internal/models"
	"github.com/khoirulmuhlisin/unitproduksi/pkg/utils"
)

// notifyChannel is the Postgres NOTIFY channel carrying collection names.
const notifyChannel = "records_changed"

const pgSchema = `
CREATE TABLE IF NOT EXISTS records (
    collection TEXT    NOT NULL,
    position   INTEGER NOT NULL,
    payload    JSONB   NOT NULL,
    PRIMARY KEY (collection, position)
);
CREATE TABLE IF NOT EXISTS counters (
    name  TEXT   PRIMARY KEY,
    value BIGINT NOT NULL
);`

// PGStore is a Postgres-backed RecordStore. Each collection is stored as
// ordered JSONB document rows and replaced whole inside one SQL
// transaction. Writers in this process are serialized by a mutex; change
// signals cross process boundaries via LISTEN/NOTIFY.
type PGStore struct {
	notifier

	db       *sql.DB
	rmw      sync.Mutex
	mu       sync.Mutex
	listener *pq.Listener
}

// Lock acquires the read-modify-write lock spanning a whole commit
// cycle. In-process only: a multi-writer deployment needs a single
// writer process in front of this store.
func (s *PGStore) Lock() { s.rmw.Lock() }

func (s *PGStore) Unlock() { s.rmw.Unlock() }

var _ RecordStore = (*PGStore)(nil)

// NewPGStore wraps a connected database and ensures the schema exists.
func NewPGStore(db *sql.DB) (*PGStore, error) {
	if _, err := db.Exec(pgSchema); err != nil {
		return nil, fmt.Errorf("%w: applying schema: %v", ErrStorageFailure, err)
	}
	return &PGStore{db: db}, nil
}

// Listen starts forwarding NOTIFY events for the records channel into
// this store's subscribers, so writes from other processes reach local
// readers too. The goroutine runs until the listener is closed.
func (s *PGStore) Listen(connStr string) error {
	listener := pq.NewListener(connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			utils.LogError(err, "Record store listener event")
		}
	})
	if err := listener.Listen(notifyChannel); err != nil {
		return fmt.Errorf("%w: listening on %s: %v", ErrStorageFailure, notifyChannel, err)
	}
	s.listener = listener
	go func() {
		for n := range listener.Notify {
			// n is nil when the connection was re-established; readers
			// should re-fetch everything in that case.
			if n == nil {
				s.broadcast(CollectionProducts)
				s.broadcast(CollectionTransactions)
				s.broadcast(CollectionSettings)
				continue
			}
			s.broadcast(n.Extra)
		}
	}()
	return nil
}

// Close stops the notification listener, ending its forwarding
// goroutine. Safe to call when Listen was never started.
func (s *PGStore) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *PGStore) Products(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.readAll(ctx, CollectionProducts, func(payload []byte) error {
		var p models.Product
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		products = append(products, p)
		return nil
	}); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *PGStore) SaveProducts(ctx context.Context, products []models.Product) error {
	payloads := make([]interface{}, len(products))
	for i := range products {
		payloads[i] = products[i]
	}
	return s.replaceAll(ctx, CollectionProducts, payloads)
}

func (s *PGStore) Transactions(ctx context.Context) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if err := s.readAll(ctx, CollectionTransactions, func(payload []byte) error {
		var t models.Transaction
		if err := json.Unmarshal(payload, &t); err != nil {
			return err
		}
		transactions = append(transactions, t)
		return nil
	}); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *PGStore) SaveTransactions(ctx context.Context, transactions []models.Transaction) error {
	payloads := make([]interface{}, len(transactions))
	for i := range transactions {
		payloads[i] = transactions[i]
	}
	return s.replaceAll(ctx, CollectionTransactions, payloads)
}

func (s *PGStore) Settings(ctx context.Context) (models.ShopSettings, error) {
	settings := models.DefaultShopSettings()
	found := false
	err := s.readAll(ctx, CollectionSettings, func(payload []byte) error {
		found = true
		return json.Unmarshal(payload, &settings)
	})
	if err != nil {
		return models.ShopSettings{}, err
	}
	if !found {
		return models.DefaultShopSettings(), nil
	}
	return settings, nil
}

func (s *PGStore) SaveSettings(ctx context.Context, settings models.ShopSettings) error {
	return s.replaceAll(ctx, CollectionSettings, []interface{}{settings})
}

func (s *PGStore) NextTransactionSeq(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var seq int64
	query := `INSERT INTO counters (name, value) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
	          RETURNING value`
	if err := s.db.QueryRowContext(ctx, query, CollectionTransactions).Scan(&seq); err != nil {
		return 0, fmt.Errorf("%w: advancing transaction counter: %v", ErrStorageFailure, err)
	}
	return seq, nil
}

// readAll streams every record of a collection, in insertion order,
// through the scan callback.
func (s *PGStore) readAll(ctx context.Context, collection string, scan func(payload []byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM records WHERE collection = $1 ORDER BY position`, collection)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrStorageFailure, collection, err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("%w: scanning %s record: %v", ErrStorageFailure, collection, err)
		}
		if err := scan(payload); err != nil {
			return fmt.Errorf("%w: decoding %s record: %v", ErrStorageFailure, collection, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: iterating %s: %v", ErrStorageFailure, collection, err)
	}
	return nil
}

// replaceAll swaps a collection's full contents in one SQL transaction
// and notifies listeners in every connected process.
func (s *PGStore) replaceAll(ctx context.Context, collection string, payloads []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: starting write for %s: %v", ErrStorageFailure, collection, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE collection = $1`, collection); err != nil {
		return s.wrapPQ(err, collection)
	}
	for i, payload := range payloads {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encoding %s record: %v", ErrStorageFailure, collection, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO records (collection, position, payload) VALUES ($1, $2, $3)`,
			collection, i, body); err != nil {
			return s.wrapPQ(err, collection)
		}
	}
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, notifyChannel, collection); err != nil {
		return s.wrapPQ(err, collection)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing %s: %v", ErrStorageFailure, collection, err)
	}

	// Local subscribers get the signal directly; the listener delivers a
	// duplicate that coalesces away.
	s.broadcast(collection)
	return nil
}

func (s *PGStore) wrapPQ(err error, collection string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w: writing %s (%s): %v", ErrStorageFailure, collection, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("%w: writing %s: %v", ErrStorageFailure, collection, err)
}
