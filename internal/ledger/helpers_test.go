package ledger

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/branchbook-dev/branchbook/internal/accounts"
	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/rates"
	"github.com/branchbook-dev/branchbook/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, accounts.Seed(st, nil))
	require.NoError(t, rates.Seed(st))

	dir, err := accounts.Load(st)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(st, dir, rates.NewService(st), log)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// accountID resolves a name through the service's directory.
func accountID(t *testing.T, s *Service, name string) int64 {
	t.Helper()
	a, ok := s.accounts.Get(name)
	require.True(t, ok, "account %q must exist", name)
	return a.ID
}

// legOn returns the single child on the given account with the given
// role, failing the test if there is not exactly one.
func legOn(t *testing.T, children []model.Transaction, accountID int64, role model.Role) model.Transaction {
	t.Helper()
	var found []model.Transaction
	for _, c := range children {
		if c.AccountID == accountID && c.Role == role {
			found = append(found, c)
		}
	}
	require.Len(t, found, 1, "expected one %s leg on account %d", role, accountID)
	return found[0]
}
