package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/christopherklint97/hebdo/internal/ledger"
	_ "modernc.org/sqlite"
)

const weekStateKey = "week"

// DB keeps the record in a sqlite key/value table, encoded the same way
// as the file backend.
type DB struct {
	*sql.DB
}

func OpenDB(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	store := &DB{db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	return nil
}

// GetState returns "" when key has never been set.
func (db *DB) GetState(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (db *DB) SetState(key, value string) error {
	_, err := db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}

func (db *DB) Load() (ledger.Record, error) {
	value, err := db.GetState(weekStateKey)
	if err != nil {
		return nil, fmt.Errorf("reading week state: %w", err)
	}
	if value == "" {
		return nil, ErrNotFound
	}

	rec, err := decodeRecord([]byte(value))
	if err != nil {
		return nil, fmt.Errorf("parsing week state: %w", err)
	}
	return rec, nil
}

func (db *DB) Save(rec ledger.Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := db.SetState(weekStateKey, string(data)); err != nil {
		return fmt.Errorf("writing week state: %w", err)
	}
	return nil
}
