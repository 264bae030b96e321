package ledger

import "errors"

var (
	// ErrInvalidAmount is returned for negative amounts before any
	// persistence is attempted.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAccountNotFound aborts a whole chain write when a referenced
	// account name does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrLockedRecord is returned when a derived leg is edited or
	// deleted directly instead of through its chain's primary.
	ErrLockedRecord = errors.New("locked record")

	// ErrReconciliationMiss means a legacy delete found no matching row
	// for an expected derived leg. Non-fatal: it is logged and the
	// remaining legs are still processed.
	ErrReconciliationMiss = errors.New("reconciliation miss")
)
