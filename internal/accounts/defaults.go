package accounts

import (
	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// DefaultBranches returns the operating branches seeded on first run.
func DefaultBranches() []string {
	return []string{
		"LeMall Dbayye",
		"City Center",
		"City Mall",
		"Koura Branch",
	}
}

// Seed inserts the default branches, any extra configured branches, and
// the fixed system accounts, skipping names that already exist. Safe to
// re-run on every startup.
func Seed(st *store.Store, extraBranches []string) error {
	names := append(DefaultBranches(), extraBranches...)
	for _, sa := range model.SystemAccounts() {
		names = append(names, string(sa))
	}

	for _, name := range names {
		if err := st.SeedAccount(name); err != nil {
			return err
		}
	}
	return nil
}
