package cmd

import (
	"github.com/Carmen-Shannon/oxy-fireball/engine/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "fireball",
	Short:        "Real-time animated fireball",
	Long:         "fireball renders a layered, procedurally animated fireball with live-tunable controls.",
	SilenceUsage: true,
	RunE:         Run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the TOML config file")
}

// Execute runs the root command. With no subcommand the fireball window opens.
func Execute() error {
	return rootCmd.Execute()
}
