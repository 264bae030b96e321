package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/ledger"
)

func newAddCommand() *cobra.Command {
	var configPath string
	var account, kind, category, amount, currency, method, date, description string
	var skipMain bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a primary transaction and derive its chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(kind)
			if err != nil {
				return err
			}
			cur, err := parseCurrency(currency)
			if err != nil {
				return err
			}
			m, err := parseMethod(method)
			if err != nil {
				return err
			}
			d, err := parseDate(date)
			if err != nil {
				return err
			}
			amt, err := parseAmount(amount)
			if err != nil {
				return err
			}

			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			id, err := env.ledger.RecordPrimary(ledger.RecordParams{
				Account:       account,
				Date:          d,
				Kind:          k,
				Category:      category,
				Amount:        amt,
				Currency:      cur,
				PaymentMethod: m,
				Description:   description,
				SkipMain:      skipMain,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Recorded transaction %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")
	cmd.Flags().StringVar(&account, "account", "", "account name (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&kind, "kind", "Income", "Income or Expense")
	cmd.Flags().StringVar(&category, "category", "", "category (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&currency, "currency", "USD", "USD or LBP")
	cmd.Flags().StringVar(&method, "method", "Cash", "Cash or Card")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	cmd.Flags().BoolVar(&skipMain, "skip-main", false, "suppress the main-rate deduction pair")

	return cmd
}
