package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// Presentation-side validation: bad flag values are rejected here,
// before the engine is invoked.

func parseKind(s string) (model.Kind, error) {
	switch model.Kind(s) {
	case model.KindIncome, model.KindExpense:
		return model.Kind(s), nil
	}
	return "", fmt.Errorf("kind must be %q or %q, got %q", model.KindIncome, model.KindExpense, s)
}

func parseCurrency(s string) (model.Currency, error) {
	switch model.Currency(s) {
	case model.CurrencyUSD, model.CurrencyLBP:
		return model.Currency(s), nil
	}
	return "", fmt.Errorf("currency must be %q or %q, got %q", model.CurrencyUSD, model.CurrencyLBP, s)
}

func parseMethod(s string) (model.PaymentMethod, error) {
	switch model.PaymentMethod(s) {
	case model.MethodCash, model.MethodCard:
		return model.PaymentMethod(s), nil
	}
	return "", fmt.Errorf("payment method must be %q or %q, got %q", model.MethodCash, model.MethodCard, s)
}

// parseDate accepts YYYY-MM-DD; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(store.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD, got %q", s)
	}
	return d, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount must be a number, got %q", s)
	}
	return amount, nil
}
