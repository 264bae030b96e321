package ledger

import (
	"errors"
	"fmt"

	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// reconcileLegacy removes the derived legs of a chain recorded before
// parent linkage existed. It reconstructs the expected legs from the
// primary's stored values and current rates, then deletes at most one
// exact match per expected leg (account, date, category, amount,
// currency, payment method). Best-effort and idempotent: a second run
// finds nothing because the matches already disappeared. Misses are
// logged and the remaining legs are still processed.
func (s *Service) reconcileLegacy(tx *store.Tx, primary model.Transaction) error {
	snap, err := s.rates.Snapshot()
	if err != nil {
		return err
	}

	source, ok := s.accounts.ByID(primary.AccountID)
	if !ok {
		return fmt.Errorf("account %d: %w", primary.AccountID, ErrAccountNotFound)
	}

	// The legacy path predates the skip-main option, so the full set is
	// expected; a skipped main pair simply shows up as two misses.
	specs := deriveLegs(source.Name, primary.Kind, primary.Category, primary.Amount, primary.Currency, false, primary.PaymentMethod == model.MethodCard, snap)

	for _, spec := range specs {
		dest, ok := s.accounts.Get(spec.Account)
		if !ok {
			s.log.Warn("reconciliation skipped leg", "primary", primary.ID, "account", spec.Account, "error", ErrAccountNotFound)
			continue
		}

		matchID, err := tx.FindLeg(dest.ID, primary.Date, spec.Kind, spec.Category, spec.Amount, primary.Currency, primary.PaymentMethod)
		if errors.Is(err, store.ErrNotFound) {
			s.log.Warn("reconciliation miss",
				"primary", primary.ID, "account", spec.Account, "role", spec.Role,
				"amount", spec.Amount.String(), "error", ErrReconciliationMiss)
			continue
		}
		if err != nil {
			return err
		}

		if err := tx.DeleteTransaction(matchID); err != nil {
			return err
		}
		s.log.Info("reconciliation removed leg", "primary", primary.ID, "leg", matchID, "account", spec.Account, "role", spec.Role)
	}
	return nil
}
