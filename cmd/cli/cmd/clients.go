package cmd

import (
	"context"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"go.uber.org/zap"

	"rds-cost/clouds/aws"
	"rds-cost/core/catalog"
	"rds-cost/core/cost"
	corePricing "rds-cost/core/pricing"
	"rds-cost/internal/config"
	"rds-cost/internal/errors"
)

// loadAWSConfig resolves SDK configuration for the configured region
func loadAWSConfig(ctx context.Context, cfg *config.Config) (awssdk.Config, error) {
	return aws.LoadConfig(ctx, aws.Options{
		Region:          cfg.AWS.Region,
		Profile:         cfg.AWS.Profile,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		SessionToken:    cfg.AWS.SessionToken,
	})
}

// newCatalogSource builds the configured pricing document source.
// The api source talks to the Price List endpoint in PricingRegion whatever
// region is being priced.
func newCatalogSource(cfg *config.Config, awsCfg awssdk.Config, logger *zap.Logger) (catalog.Source, error) {
	switch cfg.Catalog.Source {
	case config.SourceBulk, "":
		return newBulkSource(cfg, logger), nil
	case config.SourceAPI:
		client := pricing.NewFromConfig(aws.ForRegion(awsCfg, aws.PricingRegion))
		filters := map[string]string{
			"databaseEngine": corePricing.NormalizeEngine(cfg.Match.Engine),
		}
		return catalog.NewAPISource(client, cfg.Catalog.ServiceCode, filters, logger), nil
	case config.SourceFile:
		return catalog.NewFileSource(cfg.Catalog.File), nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown catalog source %q", cfg.Catalog.Source)
	}
}

func newBulkSource(cfg *config.Config, logger *zap.Logger) *catalog.BulkSource {
	timeout := time.Duration(cfg.Catalog.HTTPTimeoutSeconds) * time.Second
	return catalog.NewBulkSource(cfg.Catalog.BaseURL, cfg.Catalog.ServiceCode, timeout, logger)
}

func newResolver(cfg *config.Config, logger *zap.Logger) *corePricing.Resolver {
	return corePricing.NewResolver(corePricing.Criteria{
		ServiceCode:      cfg.Catalog.ServiceCode,
		Engine:           cfg.Match.Engine,
		Storage:          cfg.Match.Storage,
		ServerlessMarker: cfg.Match.ServerlessMarker,
	}, logger)
}

func reservedTerm(cfg *config.Config) corePricing.ReservedTerm {
	return corePricing.ReservedTerm{
		LeaseContractLength: cfg.Reserved.LeaseContractLength,
		PurchaseOption:      cfg.Reserved.PurchaseOption,
	}
}

func aggregatorOptions(cfg *config.Config) cost.Options {
	return cost.Options{
		HoursPerMonth: cfg.Report.HoursPerMonth,
		MonthsPerYear: cfg.Report.MonthsPerYear,
		Reserved:      reservedTerm(cfg),
	}
}
