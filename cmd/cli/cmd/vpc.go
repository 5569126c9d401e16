package cmd

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"rds-cost/clouds/aws"
	"rds-cost/clouds/aws/networking"
	"rds-cost/core/ui"
	"rds-cost/internal/config"
)

var vpcCmd = &cobra.Command{
	Use:   "vpc",
	Short: "VPC helpers",
}

var vpcCIDRsCmd = &cobra.Command{
	Use:   "cidrs",
	Short: "List the VPC CIDR blocks of one or every region",
	Long: `List the primary and associated IPv4 CIDR blocks of every VPC.

With --region only that region is listed. Without it the enabled regions
are discovered from us-east-1 and listed in turn; a region that cannot be
listed is reported and does not stop the others.`,
	Args: cobra.NoArgs,
	RunE: runVPCCIDRs,
}

var vpcFormat string

func init() {
	rootCmd.AddCommand(vpcCmd)
	vpcCmd.AddCommand(vpcCIDRsCmd)

	vpcCIDRsCmd.Flags().StringVarP(&vpcFormat, "format", "f", config.FormatTable, "output format: table or json")
}

func runVPCCIDRs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	awsCfg, err := loadAWSConfig(ctx, current.cfg)
	if err != nil {
		return err
	}

	lister := networking.NewCIDRLister(func(region string) networking.EC2API {
		return ec2.NewFromConfig(aws.ForRegion(awsCfg, region))
	}, current.logger)

	regions := []string{current.cfg.AWS.Region}
	if current.cfg.AWS.Region == "" {
		regions, err = lister.Regions(ctx, aws.PricingRegion)
		if err != nil {
			return err
		}
	}

	results := lister.ListAll(ctx, regions)

	if vpcFormat == config.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	table := ui.NewWriter(cmd.OutOrStdout(), true).NewTable("Region", "CIDR")
	for _, r := range results {
		if r.Error != "" {
			current.stderr.Error("%s: %s", r.Region, r.Error)
			continue
		}
		for _, cidr := range r.CIDRs {
			table.AddRow(r.Region, cidr)
		}
	}
	table.Render()
	return nil
}
