package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/rates"
)

// Categories carried by primaries and derived legs. CategoryCostOfGoods
// on an expense primary is what triggers the goods/freight flow.
const (
	CategoryCostOfGoods    = "Cost of goods"
	CategoryMainDeduction  = "Main Deduction"
	CategoryTaxWithholding = "Tax Withholding"
	CategoryCardCommission = "Card Commission"
	CategoryFreight        = "Freight"
	CategoryExchange       = "Exchange"
	CategoryTransfer       = "Transfer"
)

// InboundCategory is the synthetic label carried by a system account's
// inbound legs, naming the source branch instead of an expense category.
func InboundCategory(source string) string {
	return "from " + source
}

// legSpec describes a derived transaction before account resolution.
// Date, currency and payment method are inherited from the primary.
type legSpec struct {
	Account  string
	Kind     model.Kind
	Category string
	Role     model.Role
	Amount   decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// percentOf applies a percentage rate and rounds to the currency's
// precision, so both sides of a smart pair carry the identical amount.
func percentOf(amount, rate decimal.Decimal, currency model.Currency) decimal.Decimal {
	return model.Round(amount.Mul(rate).Div(oneHundred), currency)
}

// deriveLegs computes the canonical secondary set for a primary
// transaction. Rates come from a snapshot taken once at the start of
// the operation. The rules are independently applicable and evaluated
// in a fixed order so chains are deterministic.
func deriveLegs(source string, kind model.Kind, category string, amount decimal.Decimal, currency model.Currency, skipMain bool, card bool, rs rates.Snapshot) []legSpec {
	var legs []legSpec

	if kind == model.KindExpense && category == CategoryCostOfGoods {
		freight := percentOf(amount, rs.Freight, currency)
		legs = append(legs,
			legSpec{Account: string(model.SystemGoods), Kind: model.KindIncome, Category: InboundCategory(source), Role: model.RoleGoods, Amount: amount},
			legSpec{Account: source, Kind: model.KindExpense, Category: CategoryFreight, Role: model.RoleFreight, Amount: freight},
			legSpec{Account: string(model.SystemFreight), Kind: model.KindIncome, Category: InboundCategory(source), Role: model.RoleFreight, Amount: freight},
		)
	}

	if kind == model.KindIncome {
		if !skipMain {
			main := percentOf(amount, rs.Main, currency)
			legs = append(legs,
				legSpec{Account: source, Kind: model.KindExpense, Category: CategoryMainDeduction, Role: model.RoleMain, Amount: main},
				legSpec{Account: string(model.SystemVault), Kind: model.KindIncome, Category: InboundCategory(source), Role: model.RoleMain, Amount: main},
			)
		}

		// Tax is never skippable.
		tax := percentOf(amount, rs.Tax, currency)
		legs = append(legs,
			legSpec{Account: source, Kind: model.KindExpense, Category: CategoryTaxWithholding, Role: model.RoleTax, Amount: tax},
			legSpec{Account: string(model.SystemTax), Kind: model.KindIncome, Category: InboundCategory(source), Role: model.RoleTax, Amount: tax},
		)

		if card {
			commission := percentOf(amount, rs.Commission, currency)
			legs = append(legs,
				legSpec{Account: source, Kind: model.KindExpense, Category: CategoryCardCommission, Role: model.RoleCommission, Amount: commission},
				legSpec{Account: string(model.SystemCommission), Kind: model.KindIncome, Category: InboundCategory(source), Role: model.RoleCommission, Amount: commission},
			)
		}
	}

	return legs
}

// convert applies the exchange rate between currencies: USD to LBP
// multiplies, LBP to USD divides, same currency passes through 1:1.
// The result is rounded to the destination currency's precision.
func convert(amount decimal.Decimal, from, to model.Currency, rate decimal.Decimal) decimal.Decimal {
	switch {
	case from == to:
		return model.Round(amount, to)
	case from == model.CurrencyUSD && to == model.CurrencyLBP:
		return model.Round(amount.Mul(rate), to)
	default:
		return model.Round(amount.Div(rate), to)
	}
}
