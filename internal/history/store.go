// Package history keeps a SQLite log of converted colors and the strings
// that were rendered for them.
package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/MeKo-Tech/colorsync/internal/colormodel"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// DefaultBatchSize is the number of entries buffered before they are
	// written to the database.
	DefaultBatchSize = 32
)

// Entry is one accepted edit.
type Entry struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Input     string    `json:"input"`
	Hex       string    `json:"hex"`
	RGB       string    `json:"rgb"`
	HSL       string    `json:"hsl"`
}

// Store writes entries to a SQLite database in batches.
type Store struct {
	db        *sql.DB
	path      string
	batch     []Entry
	batchSize int
	now       func() time.Time
	mu        sync.Mutex
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{
		db:        db,
		path:      path,
		batch:     make([]Entry, 0, DefaultBatchSize),
		batchSize: DefaultBatchSize,
		now:       time.Now,
	}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at INTEGER NOT NULL,
			kind TEXT NOT NULL,
			input TEXT NOT NULL,
			hex TEXT NOT NULL,
			rgb TEXT NOT NULL,
			hsl TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS entries_created ON entries (created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record buffers one entry. A full batch is flushed immediately.
// It satisfies converter.Recorder.
func (s *Store) Record(kind, input string, c colormodel.Color) error {
	css := c.CSS()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.batch = append(s.batch, Entry{
		CreatedAt: s.now().UTC(),
		Kind:      kind,
		Input:     input,
		Hex:       css.Hex,
		RGB:       css.RGB,
		HSL:       css.HSL,
	})

	if len(s.batch) >= s.batchSize {
		return s.flushLocked()
	}
	return nil
}

// Flush writes any buffered entries to the database.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// flushLocked must be called with s.mu held.
func (s *Store) flushLocked() error {
	if len(s.batch) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	stmt, err := tx.Prepare("INSERT INTO entries (created_at, kind, input, hex, rgb, hsl) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range s.batch {
		if _, err := stmt.Exec(e.CreatedAt.UnixNano(), e.Kind, e.Input, e.Hex, e.RGB, e.HSL); err != nil {
			return fmt.Errorf("failed to insert entry %q: %w", e.Input, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.batch = s.batch[:0]
	return nil
}

// Recent returns up to limit entries, newest first. Buffered entries are
// flushed first so they are included.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		"SELECT id, created_at, kind, input, hex, rgb, hsl FROM entries ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &created, &e.Kind, &e.Input, &e.Hex, &e.RGB, &e.HSL); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.CreatedAt = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

// Clear deletes all entries, including buffered ones.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batch = s.batch[:0]
	if _, err := s.db.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}

// Close flushes remaining entries and closes the database.
func (s *Store) Close() error {
	if err := s.Flush(); err != nil {
		s.db.Close()
		return err
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
