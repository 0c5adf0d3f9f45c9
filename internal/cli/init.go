package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write config.yaml and create an empty store",
		Long: `Write the effective configuration to config.yaml, pinning the resolved
data directory, then create the store file if it does not exist yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, a)
		},
	}
}

func runInit(cmd *cobra.Command, a *app) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}

	settings := *a.settings
	settings.DataDir = cfg.DataDir
	configPath := filepath.Join(a.resolvedConfigDir, configFileExt)
	if err := writeSettings(configPath, settings); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	ledger, err := a.openLedger()
	if err != nil {
		return err
	}
	if err := ledger.Detach(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "config: %s\nstore:  %s\n", configPath, cfg.Path())
	return nil
}

// writeSettings replaces config.yaml with s.
func writeSettings(path string, s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
