package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/export"
	"github.com/branchbook-dev/branchbook/internal/model"
	"github.com/branchbook-dev/branchbook/internal/report"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// filterFlags are the shared query flags of list and export.
type filterFlags struct {
	kind     string
	category string
	currency string
	method   string
	from     string
	to       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.kind, "kind", "", "filter by kind (Income or Expense)")
	cmd.Flags().StringVar(&f.category, "filter-category", "", "filter by category")
	cmd.Flags().StringVar(&f.currency, "filter-currency", "", "filter by currency (USD or LBP)")
	cmd.Flags().StringVar(&f.method, "filter-method", "", "filter by payment method (Cash or Card)")
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD, inclusive)")
}

func (f *filterFlags) build() (report.Filter, error) {
	var filter report.Filter
	var err error

	if f.kind != "" {
		if filter.Kind, err = parseKind(f.kind); err != nil {
			return report.Filter{}, err
		}
	}
	if f.currency != "" {
		if filter.Currency, err = parseCurrency(f.currency); err != nil {
			return report.Filter{}, err
		}
	}
	if f.method != "" {
		if filter.PaymentMethod, err = parseMethod(f.method); err != nil {
			return report.Filter{}, err
		}
	}
	if f.from != "" {
		if filter.From, err = parseDate(f.from); err != nil {
			return report.Filter{}, err
		}
	}
	if f.to != "" {
		if filter.To, err = parseDate(f.to); err != nil {
			return report.Filter{}, err
		}
	}
	filter.Category = f.category
	return filter, nil
}

func newListCommand() *cobra.Command {
	var configPath string
	var account string
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an account's transactions with running balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filters.build()
			if err != nil {
				return err
			}

			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			rows, balances, err := env.report.Query(account, filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tKIND\tCATEGORY\tAMOUNT\tCURRENCY\tMETHOD\tDESCRIPTION")
			for _, t := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.Format(store.DateFormat), t.Kind, t.Category,
					export.FormatAmount(t.Amount, t.Currency), t.Currency, t.PaymentMethod, t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\nUSD Cash: $%s | USD Card: $%s\nLBP Cash: %s L.L | LBP Card: %s L.L\n",
				balances.USDCash.StringFixed(2), balances.USDCard.StringFixed(2),
				balances.LBPCash.StringFixed(0), balances.LBPCard.StringFixed(0))
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")
	cmd.Flags().StringVar(&account, "account", "", "account name (required)")
	_ = cmd.MarkFlagRequired("account")
	filters.register(cmd)

	return cmd
}

func newAccountsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE")
			for _, a := range env.accounts.All() {
				kind := "branch"
				if model.IsSystemAccount(a.Name) {
					kind = "system"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", a.ID, a.Name, kind)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")

	return cmd
}
