package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/ledger"
)

func newEditCommand() *cobra.Command {
	var configPath string
	var category, amount, date, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a primary transaction and recompute its chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			// Unset flags keep the stored values.
			current, err := env.store.Transaction(id)
			if err != nil {
				return fmt.Errorf("transaction %d: %w", id, err)
			}

			params := ledger.EditParams{
				Date:        current.Date,
				Category:    current.Category,
				Amount:      current.Amount,
				Description: current.Description,
			}

			if cmd.Flags().Changed("date") {
				if params.Date, err = parseDate(date); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("category") {
				params.Category = category
			}
			if cmd.Flags().Changed("amount") {
				if params.Amount, err = parseAmount(amount); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("description") {
				params.Description = description
			}

			if err := env.ledger.EditPrimary(id, params); err != nil {
				return err
			}

			fmt.Printf("Edited transaction %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a primary transaction and its chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.ledger.Delete(id); err != nil {
				return err
			}

			fmt.Printf("Deleted transaction %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")

	return cmd
}
