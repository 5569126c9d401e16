package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rds-cost/core/catalog"
	"rds-cost/core/determinism"
	"rds-cost/core/pricing"
	"rds-cost/core/ui"
	"rds-cost/internal/errors"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Pricing catalog operations",
	Long: `Pricing catalog operations.

download saves a region's pricing document so reports can run offline
with --catalog-source file. show-sku explains how one instance class
resolves against the match criteria.`,
}

var catalogDownloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the region's pricing document to a file",
	Args:  cobra.NoArgs,
	RunE:  runCatalogDownload,
}

var catalogShowSKUCmd = &cobra.Command{
	Use:   "show-sku <instance-class>",
	Short: "Resolve an instance class and print its prices",
	Example: `  rds-cost catalog show-sku db.r6g.large -r us-east-1
  rds-cost catalog show-sku db.r6g.large -r us-east-1 --engine aurora-mysql --lease 3yr`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogShowSKU,
}

var catalogOutput string

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogDownloadCmd)
	catalogCmd.AddCommand(catalogShowSKUCmd)

	catalogDownloadCmd.Flags().StringVarP(&catalogOutput, "output", "o", "", "destination file (default <service>-<region>.json)")

	catalogShowSKUCmd.Flags().StringVar(&reportCatalogSource, "catalog-source", "", "pricing catalog source: bulk, api or file")
	catalogShowSKUCmd.Flags().StringVar(&reportCatalogFile, "catalog-file", "", "local catalog document for --catalog-source file")
	catalogShowSKUCmd.Flags().StringVar(&reportEngine, "engine", "", "catalog database engine to match")
	catalogShowSKUCmd.Flags().StringVar(&reportStorage, "storage", "", "catalog storage value to match")
	catalogShowSKUCmd.Flags().StringVar(&reportLease, "lease", "", "reserved lease contract length")
	catalogShowSKUCmd.Flags().StringVar(&reportPurchaseOption, "purchase-option", "", "reserved purchase option")
}

func runCatalogDownload(cmd *cobra.Command, args []string) error {
	cfg := current.cfg
	if cfg.AWS.Region == "" {
		return errors.Input("region is required (--region or aws.region in the config file)")
	}

	path := catalogOutput
	if path == "" {
		path = fmt.Sprintf("%s-%s.json", cfg.Catalog.ServiceCode, cfg.AWS.Region)
	}

	source := newBulkSource(cfg, current.logger)
	current.stderr.Info("Downloading %s", source.URL(cfg.AWS.Region))

	start := time.Now()
	spinner := current.stderr.NewSpinner("Fetching pricing document")
	spinner.Start()
	data, err := source.Download(cmd.Context(), cfg.AWS.Region)
	spinner.Stop(err == nil)
	if err != nil {
		return err
	}

	// refuse to save something that would fail a later report
	doc, err := catalog.Parse(data, cfg.AWS.Region)
	if err != nil {
		return err
	}
	if err := catalog.WriteFile(data, path); err != nil {
		return err
	}

	hash := determinism.ComputeHash(data)
	current.logger.Info("catalog saved",
		zap.String("path", path),
		zap.String("version", doc.Version),
		zap.String("sha256", hash.Hex()),
		zap.Int("products", doc.Len()),
	)

	current.stderr.Success("Saved %s (%d products, version %s) in %s", path, doc.Len(), doc.Version, ui.FormatDuration(time.Since(start)))
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", hash.Hex(), path)
	return nil
}

func runCatalogShowSKU(cmd *cobra.Command, args []string) error {
	cfg := current.cfg
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return err
	}
	source, err := newCatalogSource(cfg, awsCfg, current.logger)
	if err != nil {
		return err
	}
	doc, err := source.Fetch(ctx, cfg.AWS.Region)
	if err != nil {
		return err
	}

	class := args[0]
	resolver := newResolver(cfg, current.logger)
	criteria := resolver.Criteria()
	out := ui.NewWriter(cmd.OutOrStdout(), true)

	out.Println("Instance class:  %s", class)
	out.Println("Criteria:        %s / %s / %s", criteria.ServiceCode, criteria.Engine, criteria.Storage)
	out.Println("Catalog version: %s", doc.Version)

	if resolver.IsServerless(class) {
		out.Println("SKU:             - (serverless classes are not priced)")
		return nil
	}
	sku, ok := resolver.Resolve(doc, class)
	if !ok {
		out.Println("SKU:             - (no catalog match)")
		return nil
	}

	term := reservedTerm(cfg)
	hourly := determinism.USD(pricing.OnDemandHourly(doc, sku))
	upfront := determinism.USD(pricing.ReservedUpfront(doc, sku, term))

	out.Println("SKU:             %s", sku)
	out.Println("OnDemand/hr:     $%s", hourly)
	out.Println("Upfront (%s %s): $%s", term.LeaseContractLength, term.PurchaseOption, upfront)
	return nil
}
