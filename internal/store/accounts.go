package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/branchbook-dev/branchbook/internal/model"
)

// SeedAccount inserts an account by name if it does not already exist.
// Safe to re-run on every startup.
func (s *Store) SeedAccount(name string) error {
	_, err := s.db.Exec("INSERT INTO accounts (name) SELECT ? WHERE NOT EXISTS (SELECT 1 FROM accounts WHERE name = ?)", name, name)
	if err != nil {
		return fmt.Errorf("seeding account %q: %w", name, err)
	}
	return nil
}

// Accounts returns all accounts in insertion order.
func (s *Store) Accounts() ([]model.Account, error) {
	rows, err := s.db.Query("SELECT id, name FROM accounts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// AccountByName looks up an account by its natural key.
func (s *Store) AccountByName(name string) (model.Account, error) {
	var a model.Account
	err := s.db.QueryRow("SELECT id, name FROM accounts WHERE name = ?", name).Scan(&a.ID, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("querying account %q: %w", name, err)
	}
	return a, nil
}
