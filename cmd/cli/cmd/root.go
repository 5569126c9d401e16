// Package cmd provides the CLI commands for rds-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rds-cost/core/ui"
	"rds-cost/internal/config"
	"rds-cost/internal/logging"
)

// Version is set at build time with -ldflags
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	region  string
	profile string
)

// app is the state resolved once per invocation in PersistentPreRunE.
// Commands pass its values into components explicitly.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	runID  string
	stderr *ui.Writer
}

var current *app

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rds-cost",
	Short: "Report Aurora cluster costs from the AWS price list",
	Long: `rds-cost reconciles the Aurora clusters running in a region against the
AWS pricing catalog and reports, per instance class, how many instances run,
which clusters use them and what they cost on demand or reserved.

Examples:
  rds-cost report --region us-east-1
  rds-cost report -r eu-west-1 --pricing-option reserved --ignore-cluster legacy-db
  rds-cost catalog download -r us-east-1 --output pricing/us-east-1.json
  rds-cost report -r us-east-1 --catalog-source file --catalog-file pricing/us-east-1.json`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.json, .yaml, .toml or .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to inventory and price")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS shared config profile")

	rootCmd.AddCommand(versionCmd)
}

// initApp loads configuration, applies persistent flag overrides and sets up logging
func initApp(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if region != "" {
		cfg.AWS.Region = region
	}
	if profile != "" {
		cfg.AWS.Profile = profile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		logging.InitializeDefault()
	}

	runID := uuid.NewString()
	stderr := ui.NewWriter(cmd.ErrOrStderr(), false)
	if verbose {
		stderr.SetVerbosity(2)
	}

	current = &app{
		cfg:    cfg,
		logger: logging.With(zap.String("run_id", runID), zap.String("command", cmd.Name())),
		runID:  runID,
		stderr: stderr,
	}
	current.logger.Debug("configuration resolved",
		zap.String("config_file", cfgFile),
		zap.String("region", cfg.AWS.Region),
	)
	return nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rds-cost version %s\n", Version)
	},
}
