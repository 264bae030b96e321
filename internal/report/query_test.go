package report

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchbook-dev/branchbook/internal/accounts"
	"github.com/branchbook-dev/branchbook/internal/ledger"
	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/rates"
	"github.com/branchbook-dev/branchbook/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func newTestEnv(t *testing.T) (*Engine, *ledger.Service) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, accounts.Seed(st, nil))
	require.NoError(t, rates.Seed(st))

	dir, err := accounts.Load(st)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := ledger.NewService(st, dir, rates.NewService(st), log)
	return NewEngine(st, dir), svc
}

func record(t *testing.T, svc *ledger.Service, p ledger.RecordParams) {
	t.Helper()
	_, err := svc.RecordPrimary(p)
	require.NoError(t, err)
}

func TestQuery_BucketsSplitByRowAttributes(t *testing.T) {
	engine, svc := newTestEnv(t)

	record(t, svc, ledger.RecordParams{
		Account: "City Center", Date: date(2025, 5, 1), Kind: model.KindIncome,
		Category: "Various", Amount: dec("1000"), Currency: model.CurrencyUSD,
		PaymentMethod: model.MethodCash, SkipMain: true,
	})
	record(t, svc, ledger.RecordParams{
		Account: "City Center", Date: date(2025, 5, 2), Kind: model.KindExpense,
		Category: "Rent", Amount: dec("200"), Currency: model.CurrencyUSD,
		PaymentMethod: model.MethodCard,
	})
	record(t, svc, ledger.RecordParams{
		Account: "City Center", Date: date(2025, 5, 3), Kind: model.KindIncome,
		Category: "Various", Amount: dec("500000"), Currency: model.CurrencyLBP,
		PaymentMethod: model.MethodCash, SkipMain: true,
	})

	_, balances, err := engine.Query("City Center", Filter{})
	require.NoError(t, err)

	// USD cash: +1000 income, -70 tax withholding.
	assert.True(t, balances.USDCash.Equal(dec("930")), "got %s", balances.USDCash)
	assert.True(t, balances.USDCard.Equal(dec("-200")), "got %s", balances.USDCard)
	// LBP cash: +500000 income, -35000 tax withholding.
	assert.True(t, balances.LBPCash.Equal(dec("465000")), "got %s", balances.LBPCash)
	assert.True(t, balances.LBPCard.IsZero())
}

func TestQuery_NewestFirst(t *testing.T) {
	engine, svc := newTestEnv(t)

	for _, day := range []int{5, 20, 12} {
		record(t, svc, ledger.RecordParams{
			Account: "City Mall", Date: date(2025, 1, day), Kind: model.KindExpense,
			Category: "Rent", Amount: dec("10"), Currency: model.CurrencyUSD,
			PaymentMethod: model.MethodCash,
		})
	}

	rows, _, err := engine.Query("City Mall", Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, date(2025, 1, 20), rows[0].Date)
	assert.Equal(t, date(2025, 1, 12), rows[1].Date)
	assert.Equal(t, date(2025, 1, 5), rows[2].Date)
}

func TestQuery_KindAndCategoryFilters(t *testing.T) {
	engine, svc := newTestEnv(t)

	record(t, svc, ledger.RecordParams{
		Account: "City Center", Date: date(2025, 5, 1), Kind: model.KindIncome,
		Category: "Various", Amount: dec("100"), Currency: model.CurrencyUSD,
		PaymentMethod: model.MethodCash, SkipMain: true,
	})
	record(t, svc, ledger.RecordParams{
		Account: "City Center", Date: date(2025, 5, 2), Kind: model.KindExpense,
		Category: "Rent", Amount: dec("40"), Currency: model.CurrencyUSD,
		PaymentMethod: model.MethodCash,
	})

	rows, balances, err := engine.Query("City Center", Filter{Kind: model.KindExpense})
	require.NoError(t, err)
	require.Len(t, rows, 2, "rent plus the derived tax withholding")
	assert.True(t, balances.USDCash.Equal(dec("-47")), "filter narrows what is summed, got %s", balances.USDCash)

	rows, _, err = engine.Query("City Center", Filter{Category: "Rent"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rent", rows[0].Category)
}

func TestQuery_CurrencyAndMethodFilters(t *testing.T) {
	engine, svc := newTestEnv(t)

	record(t, svc, ledger.RecordParams{
		Account: "Koura Branch", Date: date(2025, 5, 1), Kind: model.KindExpense,
		Category: "Rent", Amount: dec("100"), Currency: model.CurrencyUSD,
		PaymentMethod: model.MethodCard,
	})
	record(t, svc, ledger.RecordParams{
		Account: "Koura Branch", Date: date(2025, 5, 1), Kind: model.KindExpense,
		Category: "Rent", Amount: dec("9000000"), Currency: model.CurrencyLBP,
		PaymentMethod: model.MethodCash,
	})

	rows, balances, err := engine.Query("Koura Branch", Filter{Currency: model.CurrencyLBP})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, balances.USDCard.IsZero(), "filtered-out rows do not reach the totals")
	assert.True(t, balances.LBPCash.Equal(dec("-9000000")))

	rows, _, err = engine.Query("Koura Branch", Filter{PaymentMethod: model.MethodCard})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.CurrencyUSD, rows[0].Currency)
}

func TestQuery_SystemAccountCategoryLabel(t *testing.T) {
	engine, svc := newTestEnv(t)

	record(t, svc, ledger.RecordParams{
		Account: "City Center", Date: date(2025, 5, 1), Kind: model.KindIncome,
		Category: "Various", Amount: dec("1000"), Currency: model.CurrencyUSD,
		PaymentMethod: model.MethodCash,
	})

	// The vault's inbound leg is labelled by source, so filtering the
	// vault by the branch name matches it.
	rows, _, err := engine.Query(string(model.SystemVault), Filter{Category: "City Center"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "from City Center", rows[0].Category)

	// The literal label matches too.
	rows, _, err = engine.Query(string(model.SystemVault), Filter{Category: "from City Center"})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// On an operating account the synthetic form does not apply.
	rows, _, err = engine.Query("City Center", Filter{Category: "from City Center"})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestQuery_DateRange(t *testing.T) {
	engine, svc := newTestEnv(t)

	for _, day := range []int{1, 15, 28} {
		record(t, svc, ledger.RecordParams{
			Account: "City Mall", Date: date(2025, 3, day), Kind: model.KindExpense,
			Category: "Rent", Amount: dec("10"), Currency: model.CurrencyUSD,
			PaymentMethod: model.MethodCash,
		})
	}

	rows, _, err := engine.Query("City Mall", Filter{From: date(2025, 3, 10), To: date(2025, 3, 20)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, date(2025, 3, 15), rows[0].Date)

	rows, _, err = engine.Query("City Mall", Filter{From: date(2025, 3, 15)})
	require.NoError(t, err)
	assert.Len(t, rows, 2, "open-ended ranges include the boundary")
}

func TestQuery_UnknownAccount(t *testing.T) {
	engine, _ := newTestEnv(t)

	// The same sentinel the engine uses, so callers match one error
	// across recording and reporting.
	_, _, err := engine.Query("No Such Branch", Filter{})
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)

	_, err = engine.Categories("No Such Branch")
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestCategories(t *testing.T) {
	engine, svc := newTestEnv(t)

	record(t, svc, ledger.RecordParams{
		Account: "City Center", Date: date(2025, 5, 1), Kind: model.KindIncome,
		Category: "Various", Amount: dec("1000"), Currency: model.CurrencyUSD,
		PaymentMethod: model.MethodCash,
	})

	cats, err := engine.Categories(string(model.SystemVault))
	require.NoError(t, err)
	assert.Contains(t, cats, "from City Center")

	cats, err = engine.Categories("City Center")
	require.NoError(t, err)
	assert.Contains(t, cats, "Various")
	assert.Contains(t, cats, "Main Deduction")
}
