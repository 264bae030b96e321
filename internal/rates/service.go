// Package rates provides the mutable rate configuration the derivation
// engine reads. Values are percentages except the exchange rate, which
// is an LBP-per-USD factor.
package rates

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/store"
)

// ErrInvalidRate is returned when a rate update carries a value the
// derivation engine could not safely divide or multiply by.
var ErrInvalidRate = errors.New("rate must be positive")

// Rate keys.
const (
	KeyMain       = "main_rate"
	KeyTax        = "tax_rate"
	KeyCommission = "commission_rate"
	KeyFreight    = "freight_rate"
	KeyExchange   = "exchange_rate"
)

// Keys returns all rate keys in seeding order.
func Keys() []string {
	return []string{KeyMain, KeyTax, KeyCommission, KeyFreight, KeyExchange}
}

// Defaults returns the seed value for each rate key.
func Defaults() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		KeyMain:       decimal.NewFromFloat(15.0),
		KeyTax:        decimal.NewFromFloat(7.0),
		KeyCommission: decimal.NewFromFloat(3.0),
		KeyFreight:    decimal.NewFromFloat(33.0),
		KeyExchange:   decimal.NewFromFloat(89500.0),
	}
}

// Seed inserts missing rate keys with their defaults. Existing values
// are never overwritten.
func Seed(st *store.Store) error {
	defaults := Defaults()
	for _, key := range Keys() {
		if err := st.SeedRate(key, defaults[key]); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot holds every rate read once at the start of a derivation.
// Amounts computed from a snapshot are baked into the stored legs; a
// rate change never rewrites history.
type Snapshot struct {
	Main       decimal.Decimal
	Tax        decimal.Decimal
	Commission decimal.Decimal
	Freight    decimal.Decimal
	Exchange   decimal.Decimal
}

// Validate rejects a snapshot holding a non-positive rate. Set refuses
// such values, so this only trips on a row written behind the service's
// back, and it trips before a conversion can divide by zero.
func (s Snapshot) Validate() error {
	values := []struct {
		key   string
		value decimal.Decimal
	}{
		{KeyMain, s.Main},
		{KeyTax, s.Tax},
		{KeyCommission, s.Commission},
		{KeyFreight, s.Freight},
		{KeyExchange, s.Exchange},
	}
	for _, v := range values {
		if !v.value.IsPositive() {
			return fmt.Errorf("rate %q = %s: %w", v.key, v.value, ErrInvalidRate)
		}
	}
	return nil
}

// Service reads and updates rates with a small in-memory cache,
// invalidated on Set.
type Service struct {
	store *store.Store
	cache map[string]decimal.Decimal
}

// NewService creates a rate Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st, cache: make(map[string]decimal.Decimal)}
}

// Get returns the current value for a rate key.
func (s *Service) Get(key string) (decimal.Decimal, error) {
	if v, ok := s.cache[key]; ok {
		return v, nil
	}
	v, err := s.store.Rate(key)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate %q: %w", key, err)
	}
	s.cache[key] = v
	return v, nil
}

// Set updates a rate and invalidates the cached value. Only future
// derivations see the new value. Non-positive values are rejected: a
// zero exchange rate would be a division by zero on the next LBP
// conversion, and a negative percentage would emit negative legs.
func (s *Service) Set(key string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return fmt.Errorf("rate %q = %s: %w", key, value, ErrInvalidRate)
	}
	if err := s.store.SetRate(key, value); err != nil {
		return fmt.Errorf("rate %q: %w", key, err)
	}
	delete(s.cache, key)
	return nil
}

// Snapshot reads all rates once.
func (s *Service) Snapshot() (Snapshot, error) {
	var snap Snapshot
	var err error
	if snap.Main, err = s.Get(KeyMain); err != nil {
		return Snapshot{}, err
	}
	if snap.Tax, err = s.Get(KeyTax); err != nil {
		return Snapshot{}, err
	}
	if snap.Commission, err = s.Get(KeyCommission); err != nil {
		return Snapshot{}, err
	}
	if snap.Freight, err = s.Get(KeyFreight); err != nil {
		return Snapshot{}, err
	}
	if snap.Exchange, err = s.Get(KeyExchange); err != nil {
		return Snapshot{}, err
	}
	if err := snap.Validate(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
