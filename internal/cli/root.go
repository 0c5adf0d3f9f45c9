// Package cli implements the diamond-intel command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/prajan97/diamond-intel/internal/paths"
	"github.com/prajan97/diamond-intel/pkg/sqlite"
	"github.com/prajan97/diamond-intel/pkg/types"
)

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
)

// app carries the global flags and the state PersistentPreRunE loads for
// every subcommand.
type app struct {
	configDir string
	dataDir   string

	// resolvedConfigDir is where config.yaml was read from.
	resolvedConfigDir string
	settings          *Settings
	logger            *zap.Logger
}

// NewRootCmd creates the top-level "diamond-intel" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "diamond-intel",
		Short: "Inventory, contacts and deal tracking for a diamond brokerage",
		Long: `diamond-intel keeps a broker's stones, contacts, deals and market price
log in a single database file and serves them to the web app over a JSON API.`,
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory holding the store file (default: $(CWD)/data)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
	os.Exit(exitSuccess)
}

// load reads .env, config.yaml and the environment, then builds the logger.
func (a *app) load() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	settings, err := loadSettings(configDir)
	if err != nil {
		return err
	}
	logger, err := newLogger(settings.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.resolvedConfigDir = configDir
	a.settings = settings
	a.logger = logger
	return nil
}

// storeConfig resolves where the store file lives: --data-dir flag >
// config.yaml data_dir > DIAMOND_INTEL_DATA_DIR > $(CWD)/data.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.settings.DataDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		DataDir:      dataDir,
		DatabaseFile: a.settings.Database.File,
	}, nil
}

// openLedger attaches the store. The caller must Detach it.
func (a *app) openLedger() (sqlite.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	store, err := sqlite.Open(cfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.Path(), err)
	}
	return store, nil
}
