package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/export"
)

func newExportCommand() *cobra.Command {
	var configPath string
	var account, out string
	var filters filterFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an account's transactions to CSV",
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

			rows, _, err := env.report.Query(account, filter)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()

			if err := export.WriteTransactions(f, rows); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Printf("Exported %d rows to %s\n", len(rows), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")
	cmd.Flags().StringVar(&account, "account", "", "account name (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&out, "out", "", "output file (required)")
	_ = cmd.MarkFlagRequired("out")
	filters.register(cmd)

	return cmd
}
