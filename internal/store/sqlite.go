// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "spread-trader/internal/errors"
	"spread-trader/internal/models"
)

// SQLiteStore implements OrderStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based order journal.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Orders journal of assembled documents
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		broker_order_id TEXT NOT NULL DEFAULT '',
		symbol TEXT NOT NULL,
		strategy TEXT NOT NULL,
		order_type TEXT NOT NULL,
		price_type TEXT NOT NULL,
		price TEXT NOT NULL DEFAULT '',
		quantity INTEGER NOT NULL,
		status TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol);
	CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveOrder inserts or replaces a journal record.
func (s *SQLiteStore) SaveOrder(ctx context.Context, record *OrderRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("order record requires an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO orders
			(id, broker_order_id, symbol, strategy, order_type, price_type, price, quantity, status, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.BrokerOrderID, record.Symbol, string(record.Strategy), string(record.OrderType),
		string(record.PriceType), record.Price, record.Quantity, record.Status, string(record.Payload),
		record.CreatedAt.UTC(), record.UpdatedAt.UTC())
	if err != nil {
		return apperrors.NewDataError("order", record.ID, "failed to save order", fmt.Errorf("%w: %v", apperrors.ErrDatabaseError, err))
	}
	return nil
}

const orderColumns = `id, broker_order_id, symbol, strategy, order_type, price_type, price, quantity, status, payload, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*OrderRecord, error) {
	var r OrderRecord
	var strategy, orderType, priceType, payload string
	if err := row.Scan(&r.ID, &r.BrokerOrderID, &r.Symbol, &strategy, &orderType, &priceType,
		&r.Price, &r.Quantity, &r.Status, &payload, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Strategy = models.ComplexOrderStrategyType(strategy)
	r.OrderType = models.OrderType(orderType)
	r.PriceType = models.NetPriceType(priceType)
	r.Payload = []byte(payload)
	return &r, nil
}

// GetOrder retrieves a journal record by id.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	record, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewDataError("order", id, "order not found", apperrors.ErrDataNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return record, nil
}

// ListOrders retrieves journal records matching filter, newest first.
func (s *SQLiteStore) ListOrders(ctx context.Context, filter OrderFilter) ([]OrderRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	var args []interface{}

	if filter.Symbol != "" {
		query += " AND symbol = ?"
		args = append(args, strings.ToUpper(filter.Symbol))
	}
	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, string(filter.Strategy))
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if !filter.StartDate.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.StartDate.UTC())
	}
	if !filter.EndDate.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.EndDate.UTC())
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var records []OrderRecord
	for rows.Next() {
		record, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

// UpdateOrderStatus records the submission outcome of a journaled order.
func (s *SQLiteStore) UpdateOrderStatus(ctx context.Context, id, status, brokerOrderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, broker_order_id = ?, updated_at = ? WHERE id = ?
	`, status, brokerOrderID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NewDataError("order", id, "order not found", apperrors.ErrDataNotFound)
	}

	return nil
}
