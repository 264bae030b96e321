package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/branchbook-dev/branchbook/internal/accounts"
	"github.com/branchbook-dev/branchbook/internal/config"
	"github.com/branchbook-dev/branchbook/internal/ledger"
	"github.com/branchbook-dev/branchbook/internal/logging"
	"github.com/branchbook-dev/branchbook/internal/rates"
	"github.com/branchbook-dev/branchbook/internal/report"
	"github.com/branchbook-dev/branchbook/internal/store"
)

// defaultConfigPath is where commands look for the project config.
const defaultConfigPath = "branchbook.yaml"

// env bundles the open store and services behind a command invocation.
type env struct {
	cfg      *config.Config
	store    *store.Store
	accounts *accounts.Directory
	rates    *rates.Service
	ledger   *ledger.Service
	report   *report.Engine
	log      *slog.Logger
}

// openEnv loads the config, opens the database and re-runs the
// idempotent seeding before wiring up the services.
func openEnv(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s (run 'branchbook init' first?): %w", configPath, err)
	}

	log := logging.New(os.Stderr, cfg.Logging.Level)

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := accounts.Seed(st, cfg.Branches); err != nil {
		_ = st.Close()
		return nil, err
	}
	if err := rates.Seed(st); err != nil {
		_ = st.Close()
		return nil, err
	}

	dir, err := accounts.Load(st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	rt := rates.NewService(st)

	return &env{
		cfg:      cfg,
		store:    st,
		accounts: dir,
		rates:    rt,
		ledger:   ledger.NewService(st, dir, rt, log),
		report:   report.NewEngine(st, dir),
		log:      log,
	}, nil
}

// Close releases the database.
func (e *env) Close() error {
	return e.store.Close()
}
