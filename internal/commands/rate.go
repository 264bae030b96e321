package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/rates"
)

func newRateCommand() *cobra.Command {
	rateCmd := &cobra.Command{
		Use:   "rate",
		Short: "Inspect and change derivation rates",
	}
	rateCmd.AddCommand(newRateListCommand(), newRateGetCommand(), newRateSetCommand())
	return rateCmd
}

func newRateListCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tVALUE")
			for _, key := range rates.Keys() {
				value, err := env.rates.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", key, value.String())
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")

	return cmd
}

func newRateGetCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Show one rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			value, err := env.rates.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")

	return cmd
}

func newRateSetCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a rate for future derivations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(args[1])
			if err != nil {
				return fmt.Errorf("rate value: %w", err)
			}

			env, err := openEnv(configPath)
			if err != nil {
				return err
			}
			defer env.Close()

			if err := env.rates.Set(args[0], value); err != nil {
				return err
			}

			fmt.Printf("Set %s = %s\n", args[0], value.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "config file")

	return cmd
}
