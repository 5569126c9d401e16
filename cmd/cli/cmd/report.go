package cmd

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rds-cost/core/cost"
	"rds-cost/core/engine"
	"rds-cost/core/inventory"
	"rds-cost/core/output"
	"rds-cost/internal/config"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report the cost of the Aurora clusters in a region",
	Long: `Scan the Aurora clusters of a region, group their instances by instance
class and price every class from the region's pricing catalog.

on-demand prints the hourly rate and the annual on-demand cost per class.
reserved adds the aggregate upfront cost of the selected reserved term and
the annual saving against on-demand.

Classes without a catalog match and serverless classes are reported with
zero figures.`,
	Example: `  rds-cost report -r us-east-1
  rds-cost report -r us-east-1 -p reserved --lease 3yr
  rds-cost report -r us-east-1 --ignore-cluster staging-db,scratch --format json`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportPricingOption  string
	reportIgnoreClusters []string
	reportFormat         string
	reportCatalogSource  string
	reportCatalogFile    string
	reportEngine         string
	reportStorage        string
	reportLease          string
	reportPurchaseOption string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportPricingOption, "pricing-option", "p", "", "pricing option: on-demand or reserved (default on-demand)")
	reportCmd.Flags().StringSliceVar(&reportIgnoreClusters, "ignore-cluster", nil, "cluster identifiers to exclude (repeatable, comma separated)")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "output format: table or json")
	reportCmd.Flags().StringVar(&reportCatalogSource, "catalog-source", "", "pricing catalog source: bulk, api or file")
	reportCmd.Flags().StringVar(&reportCatalogFile, "catalog-file", "", "local catalog document for --catalog-source file")
	reportCmd.Flags().StringVar(&reportEngine, "engine", "", "catalog database engine to match, e.g. aurora-mysql")
	reportCmd.Flags().StringVar(&reportStorage, "storage", "", "catalog storage value to match, e.g. \"Aurora IO Optimization Mode\"")
	reportCmd.Flags().StringVar(&reportLease, "lease", "", "reserved lease contract length, e.g. 1yr or 3yr")
	reportCmd.Flags().StringVar(&reportPurchaseOption, "purchase-option", "", "reserved purchase option, e.g. \"All Upfront\"")
}

// applyFlagOverrides overrides configuration with the flags set on cmd.
// Flags a command does not define never report Changed.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("pricing-option") {
		cfg.Report.PricingOption = reportPricingOption
	}
	if flags.Changed("ignore-cluster") {
		cfg.Report.IgnoreClusters = append(cfg.Report.IgnoreClusters, config.SplitList(reportIgnoreClusters)...)
	}
	if flags.Changed("format") {
		cfg.Report.Format = strings.ToLower(reportFormat)
	}
	if flags.Changed("catalog-file") {
		cfg.Catalog.File = reportCatalogFile
		if !flags.Changed("catalog-source") {
			cfg.Catalog.Source = config.SourceFile
		}
	}
	if flags.Changed("catalog-source") {
		cfg.Catalog.Source = strings.ToLower(reportCatalogSource)
	}
	if flags.Changed("engine") {
		cfg.Match.Engine = reportEngine
	}
	if flags.Changed("storage") {
		cfg.Match.Storage = reportStorage
	}
	if flags.Changed("lease") {
		cfg.Reserved.LeaseContractLength = reportLease
	}
	if flags.Changed("purchase-option") {
		cfg.Reserved.PurchaseOption = reportPurchaseOption
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := current.cfg
	logger := current.logger
	applyFlagOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	mode, err := cfg.Mode()
	if err != nil {
		return err
	}
	formatter, err := output.NewFormatter(output.Format(cfg.Report.Format))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return err
	}

	reader := inventory.NewReader(rds.NewFromConfig(awsCfg), inventory.Options{
		Ignore:           cfg.IgnoreSet(),
		ServerlessMarker: cfg.Match.ServerlessMarker,
	}, logger)

	source, err := newCatalogSource(cfg, awsCfg, logger)
	if err != nil {
		return err
	}

	aggregator := cost.NewAggregator(newResolver(cfg, logger), aggregatorOptions(cfg), logger)
	eng := engine.NewEngine(reader, source, aggregator, logger)

	spinner := current.stderr.NewSpinner("Pricing Aurora clusters in " + cfg.AWS.Region)
	spinner.Start()
	report, err := eng.Run(ctx, engine.Request{Region: cfg.AWS.Region, Mode: mode})
	spinner.Stop(err == nil)
	if err != nil {
		return err
	}

	if err := formatter.Render(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if missing := report.Unresolved(); len(missing) > 0 {
		current.stderr.Debug("no catalog match for: %s", strings.Join(missing, ", "))
	}
	logger.Info("report complete",
		zap.String("mode", string(mode)),
		zap.Int("instance_classes", len(report.Records)),
	)
	return nil
}
