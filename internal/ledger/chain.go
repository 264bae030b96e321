package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/rates"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// EditParams holds the editable fields of a primary transaction. Kind,
// currency and payment method are fixed at recording time.
type EditParams struct {
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Description string
}

// EditPrimary updates a primary transaction and keeps its chain
// consistent. The new date propagates to every child unconditionally.
// If the amount changed, each derived leg is recomputed from current
// rates and overwritten in place; ids and parent links never change, so
// re-running the same edit is idempotent. This applies to exchange
// pairs too: the partner leg is re-converted at the configured
// exchange_rate even if the pair was recorded with an explicit rate.
func (s *Service) EditPrimary(id int64, p EditParams) error {
	t, err := s.store.Transaction(id)
	if err != nil {
		return fmt.Errorf("transaction %d: %w", id, err)
	}
	if !t.IsPrimary() {
		return fmt.Errorf("transaction %d is a derived leg: %w", id, ErrLockedRecord)
	}
	if p.Amount.IsNegative() {
		return fmt.Errorf("amount %s: %w", p.Amount, ErrInvalidAmount)
	}

	newAmount := model.Round(p.Amount, t.Currency)
	amountChanged := !newAmount.Equal(t.Amount)

	children, err := s.store.Children(id)
	if err != nil {
		return err
	}

	var snap rates.Snapshot
	if amountChanged && len(children) > 0 {
		if snap, err = s.rates.Snapshot(); err != nil {
			return err
		}
	}

	err = s.store.WithTx(func(tx *store.Tx) error {
		t.Date = p.Date
		t.Category = p.Category
		t.Amount = newAmount
		t.Description = p.Description
		if err := tx.UpdateTransaction(t); err != nil {
			return err
		}

		for _, child := range children {
			child.Date = p.Date
			if amountChanged {
				child.Amount = legAmount(child, t, snap)
			}
			if err := tx.UpdateTransaction(child); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("edited transaction", "id", id, "amount", newAmount.String(), "children", len(children), "recomputed", amountChanged)
	return nil
}

// legAmount recomputes a derived leg's amount from its role and the
// primary's new amount. Both sides of a smart pair share a role and a
// formula, so they always land on the identical value.
func legAmount(child, primary model.Transaction, snap rates.Snapshot) decimal.Decimal {
	switch child.Role {
	case model.RoleMain:
		return percentOf(primary.Amount, snap.Main, child.Currency)
	case model.RoleTax:
		return percentOf(primary.Amount, snap.Tax, child.Currency)
	case model.RoleCommission:
		return percentOf(primary.Amount, snap.Commission, child.Currency)
	case model.RoleFreight:
		return percentOf(primary.Amount, snap.Freight, child.Currency)
	case model.RoleGoods:
		return model.Round(primary.Amount, child.Currency)
	case model.RoleExchange:
		return convert(primary.Amount, primary.Currency, child.Currency, snap.Exchange)
	default:
		return child.Amount
	}
}

// Delete removes a primary transaction and its entire chain atomically.
// Deleting a derived leg directly is refused; it only disappears with
// its chain. Chains recorded before parent linkage existed fall back to
// value-match reconciliation.
func (s *Service) Delete(id int64) error {
	t, err := s.store.Transaction(id)
	if err != nil {
		return fmt.Errorf("transaction %d: %w", id, err)
	}
	if !t.IsPrimary() {
		return fmt.Errorf("transaction %d is a derived leg: %w", id, ErrLockedRecord)
	}

	children, err := s.store.Children(id)
	if err != nil {
		return err
	}

	err = s.store.WithTx(func(tx *store.Tx) error {
		if len(children) > 0 {
			if _, err := tx.DeleteByParent(id); err != nil {
				return err
			}
		} else if err := s.reconcileLegacy(tx, t); err != nil {
			return err
		}
		return tx.DeleteTransaction(id)
	})
	if err != nil {
		return err
	}

	s.log.Info("deleted transaction", "id", id, "children", len(children))
	return nil
}
