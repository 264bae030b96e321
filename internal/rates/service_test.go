package rates

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/branchbook-dev/branchbook/internal/store"
)

func newSeededService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, Seed(st))
	return NewService(st)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSeedDefaults(t *testing.T) {
	svc := newSeededService(t)

	tests := []struct {
		key  string
		want string
	}{
		{KeyMain, "15"},
		{KeyTax, "7"},
		{KeyCommission, "3"},
		{KeyFreight, "33"},
		{KeyExchange, "89500"},
	}
	for _, tt := range tests {
		v, err := svc.Get(tt.key)
		require.NoError(t, err)
		assert.True(t, v.Equal(dec(tt.want)), "%s = %s, want %s", tt.key, v, tt.want)
	}
}

func TestSetInvalidatesCache(t *testing.T) {
	svc := newSeededService(t)

	v, err := svc.Get(KeyMain)
	require.NoError(t, err)
	require.True(t, v.Equal(dec("15")))

	require.NoError(t, svc.Set(KeyMain, dec("20")))

	v, err = svc.Get(KeyMain)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("20")))
}

func TestSetRejectsNonPositive(t *testing.T) {
	svc := newSeededService(t)

	for _, bad := range []string{"0", "-1", "-89500"} {
		err := svc.Set(KeyExchange, dec(bad))
		assert.ErrorIs(t, err, ErrInvalidRate, "value %s", bad)
	}

	// The stored value survives the rejected updates.
	v, err := svc.Get(KeyExchange)
	require.NoError(t, err)
	assert.True(t, v.Equal(dec("89500")))
}

func TestGet_UnknownKey(t *testing.T) {
	svc := newSeededService(t)
	_, err := svc.Get("no_such_rate")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSnapshot_RejectsCorruptStoredRate(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, Seed(st))

	// Written at the store level, below the service's validation.
	require.NoError(t, st.SetRate(KeyExchange, dec("0")))

	_, err = NewService(st).Snapshot()
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestSnapshot(t *testing.T) {
	svc := newSeededService(t)
	require.NoError(t, svc.Set(KeyFreight, dec("40")))

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.Main.Equal(dec("15")))
	assert.True(t, snap.Tax.Equal(dec("7")))
	assert.True(t, snap.Commission.Equal(dec("3")))
	assert.True(t, snap.Freight.Equal(dec("40")))
	assert.True(t, snap.Exchange.Equal(dec("89500")))
}
