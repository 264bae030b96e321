// Package store persists the ledger in a single SQLite database. It is
// the only shared mutable resource in the system; every multi-row chain
// write goes through WithTx so a chain is applied entirely or not at all.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// DateFormat is how transaction dates are stored. ISO order keeps the
// text column sortable.
const DateFormat = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL,
	parent_id INTEGER,
	date TEXT NOT NULL,
	kind TEXT NOT NULL,
	category TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL,
	currency TEXT NOT NULL,
	payment_method TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	FOREIGN KEY(account_id) REFERENCES accounts(id),
	FOREIGN KEY(parent_id) REFERENCES transactions(id)
);

CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id);
CREATE INDEX IF NOT EXISTS idx_transactions_parent ON transactions(parent_id);

CREATE TABLE IF NOT EXISTS rates (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tx exposes the store's row helpers inside a SQLite transaction.
type Tx struct {
	tx *sql.Tx
}

// WithTx runs fn inside a transaction. Any error rolls back the whole
// unit, leaving the ledger exactly as before the call.
func (s *Store) WithTx(fn func(*Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
