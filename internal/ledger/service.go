// Package ledger implements the derivation engine and the chain
// consistency manager: recording a primary transaction generates its
// linked counter-entries across other accounts, and edits or deletes of
// the primary keep that chain consistent.
package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/accounts"
	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/rates"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// Service provides the chain-mutating operations of the ledger.
type Service struct {
	store    *store.Store
	accounts *accounts.Directory
	rates    *rates.Service
	log      *slog.Logger
}

// NewService creates a ledger Service. A nil logger falls back to the
// process default.
func NewService(st *store.Store, dir *accounts.Directory, rt *rates.Service, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: st, accounts: dir, rates: rt, log: log}
}

// RecordParams holds parameters for recording a primary transaction.
type RecordParams struct {
	Account       string
	Date          time.Time
	Kind          model.Kind
	Category      string
	Amount        decimal.Decimal
	Currency      model.Currency
	PaymentMethod model.PaymentMethod
	Description   string

	// SkipMain suppresses only the main-rate deduction pair; tax and
	// commission legs are emitted regardless.
	SkipMain bool
}

// RecordPrimary persists a primary transaction together with its full
// derived chain in one atomic unit and returns the primary's id.
func (s *Service) RecordPrimary(p RecordParams) (int64, error) {
	if p.Amount.IsNegative() {
		return 0, fmt.Errorf("amount %s: %w", p.Amount, ErrInvalidAmount)
	}

	source, ok := s.accounts.Get(p.Account)
	if !ok {
		return 0, fmt.Errorf("account %q: %w", p.Account, ErrAccountNotFound)
	}

	snap, err := s.rates.Snapshot()
	if err != nil {
		return 0, err
	}

	amount := model.Round(p.Amount, p.Currency)
	specs := deriveLegs(source.Name, p.Kind, p.Category, amount, p.Currency, p.SkipMain, p.PaymentMethod == model.MethodCard, snap)

	// Resolve every destination before writing anything: an unknown
	// account aborts the whole chain.
	legAccounts := make([]model.Account, len(specs))
	for i, spec := range specs {
		acct, ok := s.accounts.Get(spec.Account)
		if !ok {
			return 0, fmt.Errorf("account %q: %w", spec.Account, ErrAccountNotFound)
		}
		legAccounts[i] = acct
	}

	primary := model.Transaction{
		AccountID:     source.ID,
		Date:          p.Date,
		Kind:          p.Kind,
		Category:      p.Category,
		Amount:        amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		Description:   p.Description,
	}

	err = s.store.WithTx(func(tx *store.Tx) error {
		if err := tx.InsertTransaction(&primary); err != nil {
			return err
		}
		for i, spec := range specs {
			leg := model.Transaction{
				AccountID:     legAccounts[i].ID,
				ParentID:      primary.ID,
				Date:          p.Date,
				Kind:          spec.Kind,
				Category:      spec.Category,
				Role:          spec.Role,
				Amount:        spec.Amount,
				Currency:      p.Currency,
				PaymentMethod: p.PaymentMethod,
			}
			if err := tx.InsertTransaction(&leg); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("recorded transaction",
		"id", primary.ID, "account", source.Name, "kind", p.Kind,
		"amount", amount.String(), "currency", p.Currency, "legs", len(specs))
	return primary.ID, nil
}

// ExchangeParams holds parameters for a currency exchange or an
// inter-method transfer on one account.
type ExchangeParams struct {
	Account     string
	Date        time.Time
	Amount      decimal.Decimal // in the source representation
	From        model.Currency
	To          model.Currency
	FromMethod  model.PaymentMethod
	ToMethod    model.PaymentMethod
	Rate        decimal.Decimal // zero = configured exchange rate
	Description string
}

// RecordExchange persists a two-leg primary pair with no further
// derivation: an expense on the source representation and an income on
// the destination, linked via the second leg's parent reference.
// Returns the first leg's id.
func (s *Service) RecordExchange(p ExchangeParams) (int64, error) {
	if p.Amount.IsNegative() {
		return 0, fmt.Errorf("amount %s: %w", p.Amount, ErrInvalidAmount)
	}
	if p.From == p.To && p.FromMethod == p.ToMethod {
		return 0, fmt.Errorf("source and destination are identical")
	}

	acct, ok := s.accounts.Get(p.Account)
	if !ok {
		return 0, fmt.Errorf("account %q: %w", p.Account, ErrAccountNotFound)
	}

	rate := p.Rate
	if rate.IsNegative() {
		return 0, fmt.Errorf("rate %s: %w", rate, rates.ErrInvalidRate)
	}
	if rate.IsZero() && p.From != p.To {
		snap, err := s.rates.Snapshot()
		if err != nil {
			return 0, err
		}
		rate = snap.Exchange
	}
	// A cross-currency conversion divides by the rate on the LBP→USD
	// side, so zero is never allowed to reach it.
	if p.From != p.To && !rate.IsPositive() {
		return 0, fmt.Errorf("exchange rate %s: %w", rate, rates.ErrInvalidRate)
	}

	category := CategoryTransfer
	if p.From != p.To {
		category = CategoryExchange
	}

	outAmount := model.Round(p.Amount, p.From)
	inAmount := convert(outAmount, p.From, p.To, rate)

	out := model.Transaction{
		AccountID:     acct.ID,
		Date:          p.Date,
		Kind:          model.KindExpense,
		Category:      category,
		Amount:        outAmount,
		Currency:      p.From,
		PaymentMethod: p.FromMethod,
		Description:   p.Description,
	}

	err := s.store.WithTx(func(tx *store.Tx) error {
		if err := tx.InsertTransaction(&out); err != nil {
			return err
		}
		in := model.Transaction{
			AccountID:     acct.ID,
			ParentID:      out.ID,
			Date:          p.Date,
			Kind:          model.KindIncome,
			Category:      category,
			Role:          model.RoleExchange,
			Amount:        inAmount,
			Currency:      p.To,
			PaymentMethod: p.ToMethod,
			Description:   p.Description,
		}
		return tx.InsertTransaction(&in)
	})
	if err != nil {
		return 0, err
	}

	s.log.Info("recorded exchange",
		"id", out.ID, "account", acct.Name, "category", category,
		"out", outAmount.String(), "from", p.From, "in", inAmount.String(), "to", p.To)
	return out.ID, nil
}
