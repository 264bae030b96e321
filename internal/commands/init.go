package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/branchbook-dev/branchbook/internal/accounts"
	"github.com/branchbook-dev/branchbook/internal/config"
	"github.com/branchbook-dev/branchbook/internal/rates"
	"github.com/branchbook-dev/branchbook/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var dbPath string
	var branches []string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new branchbook project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, dbPath, branches)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&dbPath, "db", "store.db", "database file, relative to the project directory")
	cmd.Flags().StringSliceVar(&branches, "branch", nil, "extra operating branch (repeatable)")

	return cmd
}

func runInit(dir, name, dbPath string, branches []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name)
	cfg.Database.Path = filepath.Join(dir, dbPath)
	cfg.Branches = branches
	if err := config.Save(filepath.Join(dir, defaultConfigPath), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := accounts.Seed(st, branches); err != nil {
		return fmt.Errorf("seeding accounts: %w", err)
	}
	if err := rates.Seed(st); err != nil {
		return fmt.Errorf("seeding rates: %w", err)
	}

	seeded, err := st.Accounts()
	if err != nil {
		return err
	}

	fmt.Printf("Initialized branchbook project at %s (%d accounts)\n", dir, len(seeded))
	return nil
}
