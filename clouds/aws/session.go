// Package aws loads AWS SDK configuration for the service clients.
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"rds-cost/internal/errors"
)

// PricingRegion is the region serving the Price List Query API
const PricingRegion = "us-east-1"

// Options select the account and region
type Options struct {
	Region  string
	Profile string

	// Static credentials; when empty the default chain is used
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// LoadConfig loads the SDK configuration for opts
func LoadConfig(ctx context.Context, opts Options) (awssdk.Config, error) {
	var configOptions []func(*config.LoadOptions) error

	if opts.Region != "" {
		configOptions = append(configOptions, config.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		configOptions = append(configOptions, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		staticCredentials := credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			opts.SessionToken,
		)
		configOptions = append(configOptions, config.WithCredentialsProvider(staticCredentials))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOptions...)
	if err != nil {
		return awssdk.Config{}, errors.Config("failed to load AWS config", err).
			WithContext("profile", opts.Profile)
	}
	return cfg, nil
}

// ForRegion returns a copy of cfg bound to region
func ForRegion(cfg awssdk.Config, region string) awssdk.Config {
	regionCfg := cfg.Copy()
	regionCfg.Region = region
	return regionCfg
}
