// Package report computes filtered transaction views and per-bucket
// running balances. It is a pure, stateless query over the store,
// executed fresh on every call.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/accounts"
	"github.com/branchbook-dev/branchbook/internal/ledger"
	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// Filter narrows which rows are shown and summed. Zero values mean
// "all"; a zero From/To leaves that end of the date range open.
type Filter struct {
	Kind          model.Kind
	Category      string
	Currency      model.Currency
	PaymentMethod model.PaymentMethod
	From          time.Time
	To            time.Time
}

// Balances are the four running totals, split by each row's own
// currency and payment method regardless of the filter's currency or
// method selection. Income adds, expense subtracts.
type Balances struct {
	USDCash decimal.Decimal
	USDCard decimal.Decimal
	LBPCash decimal.Decimal
	LBPCard decimal.Decimal
}

func (b *Balances) apply(t model.Transaction) {
	amount := t.Amount
	if t.Kind == model.KindExpense {
		amount = amount.Neg()
	}

	switch {
	case t.Currency == model.CurrencyUSD && t.PaymentMethod == model.MethodCash:
		b.USDCash = b.USDCash.Add(amount)
	case t.Currency == model.CurrencyUSD && t.PaymentMethod == model.MethodCard:
		b.USDCard = b.USDCard.Add(amount)
	case t.Currency == model.CurrencyLBP && t.PaymentMethod == model.MethodCash:
		b.LBPCash = b.LBPCash.Add(amount)
	case t.Currency == model.CurrencyLBP && t.PaymentMethod == model.MethodCard:
		b.LBPCard = b.LBPCard.Add(amount)
	}
}

// Engine runs queries against the ledger store.
type Engine struct {
	store    *store.Store
	accounts *accounts.Directory
}

// NewEngine creates a report Engine.
func NewEngine(st *store.Store, dir *accounts.Directory) *Engine {
	return &Engine{store: st, accounts: dir}
}

// Query returns an account's matching transactions, newest date first,
// plus the four balances summed over exactly those rows.
func (e *Engine) Query(account string, f Filter) ([]model.Transaction, Balances, error) {
	acct, ok := e.accounts.Get(account)
	if !ok {
		return nil, Balances{}, fmt.Errorf("account %q: %w", account, ledger.ErrAccountNotFound)
	}

	rows, err := e.store.ByAccount(acct.ID)
	if err != nil {
		return nil, Balances{}, err
	}

	system := model.IsSystemAccount(acct.Name)

	var matched []model.Transaction
	var balances Balances
	for _, t := range rows {
		if !matches(t, f, system) {
			continue
		}
		matched = append(matched, t)
		balances.apply(t)
	}
	return matched, balances, nil
}

func matches(t model.Transaction, f Filter, system bool) bool {
	if f.Kind != "" && t.Kind != f.Kind {
		return false
	}
	if f.Currency != "" && t.Currency != f.Currency {
		return false
	}
	if f.PaymentMethod != "" && t.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.Category != "" && !categoryMatches(t.Category, f.Category, system) {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// categoryMatches is context-sensitive on system accounts: their
// inbound legs are labelled "from <branch>" rather than with the
// expense taxonomy, so a filter value matches either the literal
// category or the synthetic source label.
func categoryMatches(category, want string, system bool) bool {
	if category == want {
		return true
	}
	return system && category == "from "+want
}

// Categories returns the distinct category values present on an
// account, sorted, for populating a filter list. On system accounts
// this includes the synthetic "from <branch>" labels.
func (e *Engine) Categories(account string) ([]string, error) {
	acct, ok := e.accounts.Get(account)
	if !ok {
		return nil, fmt.Errorf("account %q: %w", account, ledger.ErrAccountNotFound)
	}

	rows, err := e.store.ByAccount(acct.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var categories []string
	for _, t := range rows {
		if !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
