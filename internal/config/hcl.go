package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// hclFile mirrors Config for HCL documents. Every block and attribute is
// optional; only values present in the file override the defaults.
type hclFile struct {
	Version  string       `hcl:"version,optional"`
	AWS      *hclAWS      `hcl:"aws,block"`
	Catalog  *hclCatalog  `hcl:"catalog,block"`
	Match    *hclMatch    `hcl:"match,block"`
	Reserved *hclReserved `hcl:"reserved,block"`
	Report   *hclReport   `hcl:"report,block"`
	Logging  *hclLogging  `hcl:"logging,block"`
}

type hclAWS struct {
	Region          string `hcl:"region,optional"`
	Profile         string `hcl:"profile,optional"`
	AccessKeyID     string `hcl:"access_key_id,optional"`
	SecretAccessKey string `hcl:"secret_access_key,optional"`
	SessionToken    string `hcl:"session_token,optional"`
}

type hclCatalog struct {
	Source             string `hcl:"source,optional"`
	File               string `hcl:"file,optional"`
	BaseURL            string `hcl:"base_url,optional"`
	ServiceCode        string `hcl:"service_code,optional"`
	HTTPTimeoutSeconds int    `hcl:"http_timeout_seconds,optional"`
}

type hclMatch struct {
	Engine           string `hcl:"engine,optional"`
	Storage          string `hcl:"storage,optional"`
	ServerlessMarker string `hcl:"serverless_marker,optional"`
}

type hclReserved struct {
	LeaseContractLength string `hcl:"lease_contract_length,optional"`
	PurchaseOption      string `hcl:"purchase_option,optional"`
}

type hclReport struct {
	PricingOption  string   `hcl:"pricing_option,optional"`
	Format         string   `hcl:"format,optional"`
	IgnoreClusters []string `hcl:"ignore_clusters,optional"`
	HoursPerMonth  int      `hcl:"hours_per_month,optional"`
	MonthsPerYear  int      `hcl:"months_per_year,optional"`
}

type hclLogging struct {
	Level       string `hcl:"level,optional"`
	Format      string `hcl:"format,optional"`
	Output      string `hcl:"output,optional"`
	Development bool   `hcl:"development,optional"`
}

func decodeHCL(path string, data []byte, cfg *Config) error {
	var file hclFile
	if err := hclsimple.Decode(path, data, nil, &file); err != nil {
		return err
	}
	file.applyTo(cfg)
	return nil
}

func (f *hclFile) applyTo(cfg *Config) {
	set(&cfg.Version, f.Version)

	if f.AWS != nil {
		set(&cfg.AWS.Region, f.AWS.Region)
		set(&cfg.AWS.Profile, f.AWS.Profile)
		set(&cfg.AWS.AccessKeyID, f.AWS.AccessKeyID)
		set(&cfg.AWS.SecretAccessKey, f.AWS.SecretAccessKey)
		set(&cfg.AWS.SessionToken, f.AWS.SessionToken)
	}
	if f.Catalog != nil {
		set(&cfg.Catalog.Source, f.Catalog.Source)
		set(&cfg.Catalog.File, f.Catalog.File)
		set(&cfg.Catalog.BaseURL, f.Catalog.BaseURL)
		set(&cfg.Catalog.ServiceCode, f.Catalog.ServiceCode)
		if f.Catalog.HTTPTimeoutSeconds > 0 {
			cfg.Catalog.HTTPTimeoutSeconds = f.Catalog.HTTPTimeoutSeconds
		}
	}
	if f.Match != nil {
		set(&cfg.Match.Engine, f.Match.Engine)
		set(&cfg.Match.Storage, f.Match.Storage)
		set(&cfg.Match.ServerlessMarker, f.Match.ServerlessMarker)
	}
	if f.Reserved != nil {
		set(&cfg.Reserved.LeaseContractLength, f.Reserved.LeaseContractLength)
		set(&cfg.Reserved.PurchaseOption, f.Reserved.PurchaseOption)
	}
	if f.Report != nil {
		set(&cfg.Report.PricingOption, f.Report.PricingOption)
		set(&cfg.Report.Format, f.Report.Format)
		if len(f.Report.IgnoreClusters) > 0 {
			cfg.Report.IgnoreClusters = f.Report.IgnoreClusters
		}
		if f.Report.HoursPerMonth > 0 {
			cfg.Report.HoursPerMonth = f.Report.HoursPerMonth
		}
		if f.Report.MonthsPerYear > 0 {
			cfg.Report.MonthsPerYear = f.Report.MonthsPerYear
		}
	}
	if f.Logging != nil {
		set(&cfg.Logging.Level, f.Logging.Level)
		set(&cfg.Logging.Format, f.Logging.Format)
		set(&cfg.Logging.Output, f.Logging.Output)
		cfg.Logging.Development = cfg.Logging.Development || f.Logging.Development
	}
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
