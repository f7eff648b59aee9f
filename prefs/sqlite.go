package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrClosed is returned by writes after Close
var ErrClosed = errors.New("prefs: store closed")

const schema = `CREATE TABLE IF NOT EXISTS prefs (
	key TEXT PRIMARY KEY,
	value INTEGER NOT NULL
)`

const upsert = `INSERT INTO prefs (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

// SQLiteStore persists values in a single-table SQLite database
// Reads are served from a cache loaded at open; writes go through to disk immediately
type SQLiteStore struct {
	mu    sync.RWMutex
	db    *sql.DB // nil after Close
	cache map[string]int
}

// OpenSQLite opens or creates the database at path, creating parent directories
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY between pool members
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create prefs table: %w", err)
	}

	s := &SQLiteStore{db: db, cache: make(map[string]int)}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) load() error {
	rows, err := s.db.Query(`SELECT key, value FROM prefs`)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		var v int
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scan prefs row: %w", err)
		}
		s.cache[k] = v
	}
	return rows.Err()
}

func (s *SQLiteStore) GetInt(key string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.cache[key]; ok {
		return v
	}
	return def
}

// SetInt writes through to disk; the cache is updated only when the write succeeds
func (s *SQLiteStore) SetInt(key string, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return fmt.Errorf("write %s: %w", key, ErrClosed)
	}
	if _, err := s.db.Exec(upsert, key, v); err != nil {
		log.Printf("prefs: write %s failed: %v", key, err)
		return fmt.Errorf("write %s: %w", key, err)
	}
	s.cache[key] = v
	return nil
}

func (s *SQLiteStore) GetBool(key string, def bool) bool {
	return s.GetInt(key, boolToInt(def)) != 0
}

func (s *SQLiteStore) SetBool(key string, v bool) error {
	return s.SetInt(key, boolToInt(v))
}

// Close releases the database handle; cached reads keep working
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}
