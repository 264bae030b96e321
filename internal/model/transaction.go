package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money in or money out.
type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// Currency is one of the two currencies the ledger tracks.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyLBP Currency = "LBP"
)

// PaymentMethod distinguishes cash from card settlement.
type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash"
	MethodCard PaymentMethod = "Card"
)

// Role tags a derived leg with its position in the chain. Primaries
// carry an empty role. Roles let the consistency manager locate a leg
// by (parent, account, role) instead of guessing from category text.
type Role string

const (
	RoleNone       Role = ""
	RoleMain       Role = "main"
	RoleTax        Role = "tax"
	RoleCommission Role = "commission"
	RoleGoods      Role = "goods"
	RoleFreight    Role = "freight"
	RoleExchange   Role = "exchange"
)

// Transaction is a single ledger row. ParentID is zero for primary
// (user-entered) transactions and points at the chain's primary for
// derived legs. Chains are exactly one level deep.
type Transaction struct {
	ID            int64
	AccountID     int64
	ParentID      int64 // 0 = primary
	Date          time.Time
	Kind          Kind
	Category      string
	Role          Role
	Amount        decimal.Decimal // non-negative, pre-rounded
	Currency      Currency
	PaymentMethod PaymentMethod
	Description   string
}

// IsPrimary reports whether the transaction heads its own chain.
func (t Transaction) IsPrimary() bool { return t.ParentID == 0 }

// Round snaps an amount to the storage precision for a currency:
// two decimal places for USD, whole units for LBP. Every leg of a
// chain goes through this so linked amounts never drift.
func Round(amount decimal.Decimal, currency Currency) decimal.Decimal {
	if currency == CurrencyLBP {
		return amount.Round(0)
	}
	return amount.Round(2)
}
