package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/ledger"
)

func newExchangeCommand() *cobra.Command {
	var configPath string
	var account, amount, from, to, fromMethod, toMethod, rate, date, description string

	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Record a currency exchange or an inter-method transfer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromCur, err := parseCurrency(from)
			if err != nil {
				return err
			}
			toCur, err := parseCurrency(to)
			if err != nil {
				return err
			}
			fm, err := parseMethod(fromMethod)
			if err != nil {
				return err
			}
			tm, err := parseMethod(toMethod)
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

			r := decimal.Zero
			if rate != "" {
				if r, err = parseAmount(rate); err != nil {
					return fmt.Errorf("rate: %w", err)
				}
			}

			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			id, err := env.ledger.RecordExchange(ledger.ExchangeParams{
				Account:     account,
				Date:        d,
				Amount:      amt,
				From:        fromCur,
				To:          toCur,
				FromMethod:  fm,
				ToMethod:    tm,
				Rate:        r,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Recorded exchange %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")
	cmd.Flags().StringVar(&account, "account", "", "account name (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in the source representation (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&from, "from", "USD", "source currency")
	cmd.Flags().StringVar(&to, "to", "LBP", "destination currency")
	cmd.Flags().StringVar(&fromMethod, "from-method", "Cash", "source payment method")
	cmd.Flags().StringVar(&toMethod, "to-method", "Cash", "destination payment method")
	cmd.Flags().StringVar(&rate, "rate", "", "exchange rate (default: configured exchange_rate)")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")

	return cmd
}
