// Package accounts provides the account directory: seeded branch and
// system accounts with cached name lookup.
package accounts

import (
	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// Directory provides in-memory lookup over the seeded accounts. The
// account set never changes during an engine session, so the cache is
// loaded once and lives for the directory's lifetime.
type Directory struct {
	accounts []model.Account
	byName   map[string]model.Account
	byID     map[int64]model.Account
}

// Load reads all accounts from the store and returns a Directory.
func Load(st *store.Store) (*Directory, error) {
	accts, err := st.Accounts()
	if err != nil {
		return nil, err
	}
	return NewDirectory(accts), nil
}

// NewDirectory creates a Directory from a slice of accounts.
func NewDirectory(accounts []model.Account) *Directory {
	byName := make(map[string]model.Account, len(accounts))
	byID := make(map[int64]model.Account, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = a
		byID[a.ID] = a
	}
	return &Directory{accounts: accounts, byName: byName, byID: byID}
}

// All returns all accounts in seeding order.
func (d *Directory) All() []model.Account {
	return d.accounts
}

// Get returns an account by name.
func (d *Directory) Get(name string) (model.Account, bool) {
	a, ok := d.byName[name]
	return a, ok
}

// Exists reports whether an account name exists.
func (d *Directory) Exists(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// ByID returns an account by its numeric id.
func (d *Directory) ByID(id int64) (model.Account, bool) {
	a, ok := d.byID[id]
	return a, ok
}

// System returns the account row backing a system account.
func (d *Directory) System(sa model.SystemAccount) (model.Account, bool) {
	return d.Get(string(sa))
}

// Operating returns the non-system accounts.
func (d *Directory) Operating() []model.Account {
	var result []model.Account
	for _, a := range d.accounts {
		if !model.IsSystemAccount(a.Name) {
			result = append(result, a)
		}
	}
	return result
}
