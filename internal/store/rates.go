package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SeedRate inserts a rate key with its default value if absent. It
// never overwrites an existing value, so re-seeding on startup cannot
// clobber a rate the user has changed.
func (s *Store) SeedRate(key string, value decimal.Decimal) error {
	_, err := s.db.Exec("INSERT INTO rates (key, value) SELECT ?, ? WHERE NOT EXISTS (SELECT 1 FROM rates WHERE key = ?)", key, value.String(), key)
	if err != nil {
		return fmt.Errorf("seeding rate %q: %w", key, err)
	}
	return nil
}

// Rate returns the stored value for a rate key.
func (s *Store) Rate(key string) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM rates WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, ErrNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying rate %q: %w", key, err)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate %q value %q: %w", key, raw, err)
	}
	return value, nil
}

// SetRate overwrites a rate value. Historical transactions are not
// affected; derived amounts are baked in at derivation time.
func (s *Store) SetRate(key string, value decimal.Decimal) error {
	res, err := s.db.Exec("UPDATE rates SET value = ? WHERE key = ?", value.String(), key)
	if err != nil {
		return fmt.Errorf("updating rate %q: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating rate %q: %w", key, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
