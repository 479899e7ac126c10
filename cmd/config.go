package cmd

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-fireball/engine/config"
	"github.com/spf13/cobra"
)

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: "config prints the configuration loaded from --config (defaults when the file is missing). " +
		"With --write the defaults are written to --config instead, unless the file already exists.",
	Args: cobra.NoArgs,
	RunE: PrintConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVarP(&writeConfig, "write", "w", false, "write the default configuration to --config")
}

func PrintConfig(cmd *cobra.Command, args []string) error {
	if writeConfig {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config %s already exists", configPath)
		}
		if err := config.Default().Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	return cfg.Encode(cmd.OutOrStdout())
}
