package distcache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // pure-Go sqlite driver
)

const createPairTable = `
CREATE TABLE IF NOT EXISTS pair_distance (
	from_node INTEGER NOT NULL,
	to_node   INTEGER NOT NULL,
	meters    REAL    NOT NULL,
	PRIMARY KEY (from_node, to_node)
)`

// SQLite is a durable Cache backed by a single-file SQLite database.
type SQLite struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// OpenSQLite opens (and if needed initializes) a cache database at path.
// Use ":memory:" for an ephemeral database.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("distcache: open %s: %w", path, err)
	}
	if _, err = db.Exec(createPairTable); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("distcache: init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get implements Cache.
func (s *SQLite) Get(ctx context.Context, from, to int64) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, false, ErrClosed
	}

	const q = `SELECT meters FROM pair_distance WHERE from_node = ? AND to_node = ?`

	var meters float64
	err := s.db.QueryRowContext(ctx, q, from, to).Scan(&meters)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("distcache: get %d→%d: %w", from, to, err)
	}

	return meters, true, nil
}

// SetBatch implements Cache. All entries are written in one transaction.
func (s *SQLite) SetBatch(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("distcache: begin tx: %w", err)
	}
	defer tx.Rollback()

	const q = `INSERT OR REPLACE INTO pair_distance (from_node, to_node, meters) VALUES (?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("distcache: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err = stmt.ExecContext(ctx, e.From, e.To, e.Meters); err != nil {
			return fmt.Errorf("distcache: insert %d→%d: %w", e.From, e.To, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("distcache: commit: %w", err)
	}

	return nil
}

// Clear implements Cache.
func (s *SQLite) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pair_distance`); err != nil {
		return fmt.Errorf("distcache: clear: %w", err)
	}

	return nil
}

// Close implements Cache.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return s.db.Close()
}
