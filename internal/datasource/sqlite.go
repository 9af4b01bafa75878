package datasource

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const slotSchema = `CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
)`

// SQLiteSlot stores a slot as a row in an SQLite database shared by all keys.
type SQLiteSlot struct {
	db   *sql.DB
	path string
	key  string
}

// NewSQLiteSlot opens (creating if needed) the database at path.
func NewSQLiteSlot(path, key string) (*SQLiteSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	// One writer at a time keeps read-modify-write sequences from this
	// process serialized on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(slotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating slots table: %w", err)
	}

	return &SQLiteSlot{db: db, path: path, key: key}, nil
}

// Read returns the row's value; a missing row is not an error.
func (s *SQLiteSlot) Read() ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading slot %s: %w", s.key, err)
	}
	return []byte(value), true, nil
}

// Write upserts the row.
func (s *SQLiteSlot) Write(raw []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`,
		s.key, string(raw))
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", s.key, err)
	}
	return nil
}

// Path returns "": WAL writes touch several files, so the database is not
// watched for changes.
func (s *SQLiteSlot) Path() string {
	return ""
}

// DBPath returns the database file.
func (s *SQLiteSlot) DBPath() string {
	return s.path
}

// Close closes the database connection
func (s *SQLiteSlot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
