package nvs

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/xtxerr/templog/config"
	"github.com/xtxerr/templog/internal/errors"
)

// DuckDBConfig holds DuckDB store configuration options.
type DuckDBConfig struct {
	// Path is the database file path.
	Path string

	// QueryTimeout is the default timeout for individual operations.
	QueryTimeout time.Duration
}

// DefaultDuckDBConfig returns a DuckDBConfig with sensible defaults.
func DefaultDuckDBConfig(path string) DuckDBConfig {
	return DuckDBConfig{
		Path:         path,
		QueryTimeout: config.DefaultStoreQueryTimeout,
	}
}

// DuckDBStore is a Store backed by a DuckDB database file. Records
// live in a single key/value table.
//
// DuckDBStore is safe for concurrent use.
type DuckDBStore struct {
	db     *sql.DB
	config DuckDBConfig
	mu     sync.RWMutex
	closed bool
}

// OpenDuckDB opens (creating if necessary) the record store at the
// configured path.
func OpenDuckDB(cfg DuckDBConfig) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single writer keeps record writes serial, matching the
	// flash-style store this models.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			key   INTEGER PRIMARY KEY,
			value BLOB NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}

	return &DuckDBStore{db: db, config: cfg}, nil
}

// Read returns the record stored under key, or ErrNotFound.
func (s *DuckDBStore) Read(ctx context.Context, key Key, expectedSize int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errors.ErrStoreClosed
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	value := make([]byte, 0, expectedSize)
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, int64(key)).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %d", key)
	}
	if err != nil {
		return nil, fmt.Errorf("read key %d: %w", key, err)
	}
	return value, nil
}

// Write stores data under key. When the stored bytes already match,
// Write reports 0 bytes written ("no change needed") without touching
// the database.
func (s *DuckDBStore) Write(ctx context.Context, key Key, data []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, errors.ErrStoreClosed
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	var existing []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE key = ?`, int64(key)).Scan(&existing)
	if err == nil && bytes.Equal(existing, data) {
		return 0, nil
	}
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("write key %d: %w", key, err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		int64(key), data); err != nil {
		return 0, fmt.Errorf("write key %d: %w", key, err)
	}
	return len(data), nil
}

// Close closes the underlying database.
func (s *DuckDBStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// opContext bounds an operation with the configured query timeout.
func (s *DuckDBStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.config.QueryTimeout)
}
