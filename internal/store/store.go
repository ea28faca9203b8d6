// Package store persists lookbook state in SQLite: the profile key-value
// pairs and the conversation history archive. The database lives at
// ~/.lookbook/lookbook.db.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"lookbook/internal/logging"
	"lookbook/internal/session"
)

// Store wraps the SQLite database. Safe for concurrent use, though lookbook
// only touches it from one goroutine at a time.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// New opens (creating if needed) the database at path.
func New(path string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "New")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logging.StoreDebug("Opened store at %s", path)
	return s, nil
}

func (s *Store) initialize() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS history (
			id        TEXT PRIMARY KEY,
			title     TEXT NOT NULL,
			user_name TEXT NOT NULL,
			body_type TEXT NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Get returns the value for key, or "" when the key is absent.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set writes a key-value pair, replacing any prior value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.StoreDebug("Set %q", key)
	_, err := s.db.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// SaveEntry upserts a history entry. The id is the primary key, so
// re-archiving a session replaces its prior entry.
func (s *Store) SaveEntry(e session.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.StoreDebug("SaveEntry %s %q", e.ID, e.Title)
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO history (id, title, user_name, body_type, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.UserName, e.BodyType, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("save history entry %s: %w", e.ID, err)
	}
	return nil
}

// DeleteEntry removes a history entry by id.
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete history entry %s: %w", id, err)
	}
	return nil
}

// LoadHistory returns all history entries, most recently archived first.
func (s *Store) LoadHistory() ([]session.HistoryEntry, error) {
	timer := logging.StartTimer(logging.CategoryStore, "LoadHistory")
	defer timer.Stop()

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, title, user_name, body_type, timestamp
		 FROM history
		 ORDER BY timestamp DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var entries []session.HistoryEntry
	for rows.Next() {
		var e session.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.UserName, &e.BodyType, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
