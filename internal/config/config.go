// Package config provides configuration management.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"rds-cost/core/cost"
	"rds-cost/internal/errors"
	"rds-cost/internal/logging"
)

// Catalog sources
const (
	SourceBulk = "bulk"
	SourceAPI  = "api"
	SourceFile = "file"
)

// Report formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version" toml:"version"`

	// AWS contains account and region settings
	AWS AWSConfig `json:"aws" yaml:"aws" toml:"aws"`

	// Catalog contains pricing document retrieval settings
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" toml:"catalog"`

	// Match contains the fixed SKU selection criteria
	Match MatchConfig `json:"match" yaml:"match" toml:"match"`

	// Reserved selects the reserved term to price
	Reserved ReservedConfig `json:"reserved" yaml:"reserved" toml:"reserved"`

	// Report contains report settings
	Report ReportConfig `json:"report" yaml:"report" toml:"report"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging" toml:"logging"`
}

// AWSConfig contains AWS-specific settings
type AWSConfig struct {
	// Region is the region to inventory and price. There is no default.
	Region string `json:"region" yaml:"region" toml:"region"`

	// Profile is the shared config profile to use
	Profile string `json:"profile,omitempty" yaml:"profile,omitempty" toml:"profile,omitempty"`

	// Static credentials; the default credential chain is used when empty
	AccessKeyID     string `json:"access_key_id,omitempty" yaml:"access_key_id,omitempty" toml:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key,omitempty" toml:"secret_access_key,omitempty"`
	SessionToken    string `json:"session_token,omitempty" yaml:"session_token,omitempty" toml:"session_token,omitempty"`
}

// CatalogConfig contains pricing document settings
type CatalogConfig struct {
	// Source is one of bulk, api, file
	Source string `json:"source" yaml:"source" toml:"source"`

	// File is the local document used by the file source
	File string `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`

	// BaseURL is the bulk price list endpoint
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// ServiceCode is the offer code of the managed database service
	ServiceCode string `json:"service_code" yaml:"service_code" toml:"service_code"`

	// HTTPTimeoutSeconds bounds a single bulk download
	HTTPTimeoutSeconds int `json:"http_timeout_seconds" yaml:"http_timeout_seconds" toml:"http_timeout_seconds"`
}

// MatchConfig contains SKU matching criteria
type MatchConfig struct {
	// Engine is the catalog databaseEngine value, e.g. "Aurora PostgreSQL"
	Engine string `json:"engine" yaml:"engine" toml:"engine"`

	// Storage is the catalog storage value, e.g. "EBS Only"
	Storage string `json:"storage" yaml:"storage" toml:"storage"`

	// ServerlessMarker marks instance classes that are never priced
	ServerlessMarker string `json:"serverless_marker" yaml:"serverless_marker" toml:"serverless_marker"`
}

// ReservedConfig selects a reserved term
type ReservedConfig struct {
	LeaseContractLength string `json:"lease_contract_length" yaml:"lease_contract_length" toml:"lease_contract_length"`
	PurchaseOption      string `json:"purchase_option" yaml:"purchase_option" toml:"purchase_option"`
}

// ReportConfig contains report settings
type ReportConfig struct {
	// PricingOption is on-demand or reserved
	PricingOption string `json:"pricing_option" yaml:"pricing_option" toml:"pricing_option"`

	// Format is table or json
	Format string `json:"format" yaml:"format" toml:"format"`

	// IgnoreClusters are cluster identifiers excluded from the inventory
	IgnoreClusters []string `json:"ignore_clusters,omitempty" yaml:"ignore_clusters,omitempty" toml:"ignore_clusters,omitempty"`

	// HoursPerMonth and MonthsPerYear annualise an hourly rate
	HoursPerMonth int `json:"hours_per_month" yaml:"hours_per_month" toml:"hours_per_month"`
	MonthsPerYear int `json:"months_per_year" yaml:"months_per_year" toml:"months_per_year"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Catalog: CatalogConfig{
			Source:             SourceBulk,
			BaseURL:            "https://pricing.us-east-1.amazonaws.com",
			ServiceCode:        "AmazonRDS",
			HTTPTimeoutSeconds: 300,
		},
		Match: MatchConfig{
			Engine:           "Aurora PostgreSQL",
			Storage:          "EBS Only",
			ServerlessMarker: "serverless",
		},
		Reserved: ReservedConfig{
			LeaseContractLength: "1yr",
			PurchaseOption:      "All Upfront",
		},
		Report: ReportConfig{
			PricingOption: string(cost.ModeOnDemand),
			Format:        FormatTable,
			HoursPerMonth: 720,
			MonthsPerYear: 12,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file. The format follows the extension:
// .yaml/.yml, .toml, .hcl, anything else is read as JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read config file", err).WithContext("path", path)
	}

	config := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	case ".toml":
		err = toml.Unmarshal(data, config)
	case ".hcl":
		err = decodeHCL(path, data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Config("failed to decode config file", err).WithContext("path", path)
	}

	return config, nil
}

// Save saves configuration to a file in the format its extension names
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	case ".hcl":
		return errors.Newf(errors.TypeConfig, "writing HCL config is not supported: %s", path)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Mode returns the validated pricing mode
func (c *Config) Mode() (cost.Mode, error) {
	return cost.ParseMode(c.Report.PricingOption)
}

// Validate checks that the configuration can drive a report run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AWS.Region) == "" {
		return errors.Input("region is required (--region or aws.region in the config file)")
	}
	if _, err := c.Mode(); err != nil {
		return err
	}

	switch c.Catalog.Source {
	case SourceBulk, SourceAPI:
	case SourceFile:
		if c.Catalog.File == "" {
			return errors.Input("catalog source 'file' needs a catalog file")
		}
	default:
		return errors.Newf(errors.TypeInput, "unknown catalog source %q (use bulk, api or file)", c.Catalog.Source)
	}

	switch c.Report.Format {
	case FormatTable, FormatJSON:
	default:
		return errors.Newf(errors.TypeInput, "unknown report format %q (use table or json)", c.Report.Format)
	}

	if c.Report.HoursPerMonth <= 0 || c.Report.MonthsPerYear <= 0 {
		return errors.New(errors.TypeConfig, "hours_per_month and months_per_year must be positive")
	}
	if c.Match.Engine == "" || c.Match.Storage == "" || c.Catalog.ServiceCode == "" {
		return errors.New(errors.TypeConfig, "match.engine, match.storage and catalog.service_code must be set")
	}
	if c.Reserved.LeaseContractLength == "" || c.Reserved.PurchaseOption == "" {
		return errors.New(errors.TypeConfig, "reserved.lease_contract_length and reserved.purchase_option must be set")
	}

	return nil
}

// IgnoreSet returns the excluded cluster identifiers as a set
func (c *Config) IgnoreSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Report.IgnoreClusters))
	for _, id := range c.Report.IgnoreClusters {
		id = strings.TrimSpace(id)
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// SplitList splits comma separated flag values, trimming blanks
func SplitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// String renders the configuration as JSON with secrets masked
func (c *Config) String() string {
	masked := *c
	if masked.AWS.SecretAccessKey != "" {
		masked.AWS.SecretAccessKey = "****"
	}
	if masked.AWS.SessionToken != "" {
		masked.AWS.SessionToken = "****"
	}
	data, err := json.MarshalIndent(&masked, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", masked)
	}
	return string(data)
}
