package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "branchbook",
		Short:   "Branch accounting with derived counter-entries",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCommand(),
		newAccountsCommand(),
		newAddCommand(),
		newExchangeCommand(),
		newEditCommand(),
		newDeleteCommand(),
		newListCommand(),
		newRateCommand(),
		newExportCommand(),
	)

	return rootCmd
}
