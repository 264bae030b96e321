package model

// Account represents a row in the accounts table. Name is the natural
// key used throughout the engine.
type Account struct {
	ID   int64
	Name string
}

// SystemAccount names one of the fixed non-operating accounts the
// derivation engine routes counter-entries to.
type SystemAccount string

const (
	SystemVault      SystemAccount = "Main Vault"
	SystemTax        SystemAccount = "Tax Account"
	SystemCommission SystemAccount = "Bank Commission"
	SystemGoods      SystemAccount = "Cost of goods"
	SystemFreight    SystemAccount = "Freight"
)

// SystemAccounts returns the fixed set in seeding order.
func SystemAccounts() []SystemAccount {
	return []SystemAccount{
		SystemVault,
		SystemTax,
		SystemCommission,
		SystemGoods,
		SystemFreight,
	}
}

// IsSystemAccount reports whether name belongs to the fixed system set.
func IsSystemAccount(name string) bool {
	switch SystemAccount(name) {
	case SystemVault, SystemTax, SystemCommission, SystemGoods, SystemFreight:
		return true
	}
	return false
}
