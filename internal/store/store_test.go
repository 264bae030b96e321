package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchbook-dev/branchbook/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestSeedAccount_Idempotent(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.SeedAccount("City Center"))
	require.NoError(t, st.SeedAccount("City Center"))

	accounts, err := st.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "City Center", accounts[0].Name)
}

func TestAccountByName(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedAccount("Koura Branch"))

	a, err := st.AccountByName("Koura Branch")
	require.NoError(t, err)
	assert.NotZero(t, a.ID)

	_, err = st.AccountByName("No Such Branch")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeedRate_NeverOverwrites(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.SeedRate("main_rate", dec("15")))
	require.NoError(t, st.SetRate("main_rate", dec("20")))
	require.NoError(t, st.SeedRate("main_rate", dec("15")))

	v, err := st.Rate("main_rate")
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("20")), "re-seeding must not clobber a changed rate")
}

func TestSetRate_UnknownKey(t *testing.T) {
	st := newTestStore(t)
	assert.ErrorIs(t, st.SetRate("no_such_rate", dec("1")), ErrNotFound)
}

func TestInsertTransaction_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedAccount("City Mall"))
	acct, err := st.AccountByName("City Mall")
	require.NoError(t, err)

	txn := model.Transaction{
		AccountID:     acct.ID,
		Date:          date(2025, 6, 15),
		Kind:          model.KindIncome,
		Category:      "Various",
		Amount:        dec("1234.56"),
		Currency:      model.CurrencyUSD,
		PaymentMethod: model.MethodCard,
		Description:   "walk-in sales",
	}
	require.NoError(t, st.WithTx(func(tx *Tx) error {
		return tx.InsertTransaction(&txn)
	}))
	require.NotZero(t, txn.ID)

	got, err := st.Transaction(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.AccountID, got.AccountID)
	assert.True(t, got.IsPrimary())
	assert.Equal(t, date(2025, 6, 15), got.Date)
	assert.True(t, got.Amount.Equal(dec("1234.56")))
	assert.Equal(t, model.MethodCard, got.PaymentMethod)
	assert.Equal(t, "walk-in sales", got.Description)
}

func TestChildrenAndDeleteByParent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedAccount("City Center"))
	acct, err := st.AccountByName("City Center")
	require.NoError(t, err)

	parent := model.Transaction{
		AccountID: acct.ID, Date: date(2025, 3, 1), Kind: model.KindIncome,
		Category: "Various", Amount: dec("100"), Currency: model.CurrencyUSD, PaymentMethod: model.MethodCash,
	}
	require.NoError(t, st.WithTx(func(tx *Tx) error {
		if err := tx.InsertTransaction(&parent); err != nil {
			return err
		}
		for _, role := range []model.Role{model.RoleMain, model.RoleTax} {
			child := model.Transaction{
				AccountID: acct.ID, ParentID: parent.ID, Date: date(2025, 3, 1),
				Kind: model.KindExpense, Category: "x", Role: role,
				Amount: dec("10"), Currency: model.CurrencyUSD, PaymentMethod: model.MethodCash,
			}
			if err := tx.InsertTransaction(&child); err != nil {
				return err
			}
		}
		return nil
	}))

	children, err := st.Children(parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, parent.ID, children[0].ParentID)

	var removed int64
	require.NoError(t, st.WithTx(func(tx *Tx) error {
		removed, err = tx.DeleteByParent(parent.ID)
		return err
	}))
	assert.EqualValues(t, 2, removed)

	children, err = st.Children(parent.ID)
	require.NoError(t, err)
	assert.Empty(t, children)
}

func TestByAccount_NewestFirst(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedAccount("City Center"))
	acct, err := st.AccountByName("City Center")
	require.NoError(t, err)

	days := []int{10, 25, 3}
	require.NoError(t, st.WithTx(func(tx *Tx) error {
		for _, d := range days {
			txn := model.Transaction{
				AccountID: acct.ID, Date: date(2025, 1, d), Kind: model.KindIncome,
				Category: "Various", Amount: dec("1"), Currency: model.CurrencyUSD, PaymentMethod: model.MethodCash,
			}
			if err := tx.InsertTransaction(&txn); err != nil {
				return err
			}
		}
		return nil
	}))

	rows, err := st.ByAccount(acct.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, date(2025, 1, 25), rows[0].Date)
	assert.Equal(t, date(2025, 1, 10), rows[1].Date)
	assert.Equal(t, date(2025, 1, 3), rows[2].Date)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedAccount("City Center"))
	acct, err := st.AccountByName("City Center")
	require.NoError(t, err)

	boom := assert.AnError
	err = st.WithTx(func(tx *Tx) error {
		txn := model.Transaction{
			AccountID: acct.ID, Date: date(2025, 1, 1), Kind: model.KindIncome,
			Category: "Various", Amount: dec("50"), Currency: model.CurrencyUSD, PaymentMethod: model.MethodCash,
		}
		if err := tx.InsertTransaction(&txn); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rows, err := st.ByAccount(acct.ID)
	require.NoError(t, err)
	assert.Empty(t, rows, "failed unit must leave the ledger untouched")
}

func TestFindLeg(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.SeedAccount("City Center"))
	acct, err := st.AccountByName("City Center")
	require.NoError(t, err)

	txn := model.Transaction{
		AccountID: acct.ID, Date: date(2025, 2, 2), Kind: model.KindExpense,
		Category: "Main Deduction", Amount: dec("165"), Currency: model.CurrencyUSD, PaymentMethod: model.MethodCash,
	}
	require.NoError(t, st.WithTx(func(tx *Tx) error {
		return tx.InsertTransaction(&txn)
	}))

	require.NoError(t, st.WithTx(func(tx *Tx) error {
		// Amount compares numerically, so a different text rendering
		// still matches.
		id, err := tx.FindLeg(acct.ID, date(2025, 2, 2), model.KindExpense, "Main Deduction", dec("165.00"), model.CurrencyUSD, model.MethodCash)
		require.NoError(t, err)
		assert.Equal(t, txn.ID, id)

		_, err = tx.FindLeg(acct.ID, date(2025, 2, 2), model.KindExpense, "Main Deduction", dec("999"), model.CurrencyUSD, model.MethodCash)
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	}))
}
