package cmd

import (
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rds-cost/clouds/aws/dns"
	"rds-cost/core/ui"
	"rds-cost/internal/config"
)

var dnsCmd = &cobra.Command{
	Use:   "dns",
	Short: "Route 53 helpers",
}

var dnsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the records of a hosted zone that point at a value",
	Long: `Walk every record set of a hosted zone and print those whose value or
alias target contains the search value, e.g. a cluster endpoint.`,
	Example: `  rds-cost dns search --zone-id Z0123456789ABC --value orders.cluster-abc.us-east-1.rds.amazonaws.com`,
	Args:    cobra.NoArgs,
	RunE:    runDNSSearch,
}

var (
	dnsZoneID string
	dnsValue  string
	dnsFormat string
)

func init() {
	rootCmd.AddCommand(dnsCmd)
	dnsCmd.AddCommand(dnsSearchCmd)

	dnsSearchCmd.Flags().StringVar(&dnsZoneID, "zone-id", "", "hosted zone id [REQUIRED]")
	dnsSearchCmd.Flags().StringVar(&dnsValue, "value", "", "substring to look for in record values [REQUIRED]")
	dnsSearchCmd.Flags().StringVarP(&dnsFormat, "format", "f", config.FormatTable, "output format: table or json")
	_ = dnsSearchCmd.MarkFlagRequired("zone-id")
	_ = dnsSearchCmd.MarkFlagRequired("value")
}

func runDNSSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	awsCfg, err := loadAWSConfig(ctx, current.cfg)
	if err != nil {
		return err
	}

	searcher := dns.NewRecordSearcher(route53.NewFromConfig(awsCfg), current.logger)
	matches, err := searcher.Search(ctx, dnsZoneID, dnsValue)
	if err != nil {
		return err
	}
	current.logger.Info("record search complete", zap.String("zone", dnsZoneID), zap.Int("matches", len(matches)))

	if dnsFormat == config.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		current.stderr.Warning("No records in %s contain %q", dnsZoneID, dnsValue)
		return nil
	}
	table := ui.NewWriter(cmd.OutOrStdout(), true).NewTable("Name", "Type", "Value")
	for _, m := range matches {
		value := m.Value
		if m.Alias {
			value += " (alias)"
		}
		table.AddRow(m.Name, m.Type, value)
	}
	table.Render()
	return nil
}
