package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rds-cost/internal/config"
)

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), current.cfg.String())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to path. The extension selects the
format: .json, .yaml/.yml or .toml.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		cfg.AWS.Region = current.cfg.AWS.Region
		cfg.AWS.Profile = current.cfg.AWS.Profile
		if err := cfg.Save(args[0]); err != nil {
			return err
		}
		current.stderr.Success("Wrote %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
