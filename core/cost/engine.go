// Package cost combines an instance class grouping with catalog prices into
// per-class cost records.
package cost

import (
	"strings"

	"go.uber.org/zap"

	"rds-cost/core/catalog"
	"rds-cost/core/determinism"
	"rds-cost/core/pricing"
	"rds-cost/internal/errors"
)

// Mode is a purchasing model
type Mode string

const (
	ModeOnDemand Mode = "on-demand"
	ModeReserved Mode = "reserved"
)

// ParseMode validates a pricing mode selector
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeOnDemand), "ondemand":
		return ModeOnDemand, nil
	case string(ModeReserved):
		return ModeReserved, nil
	default:
		return "", errors.Newf(errors.TypeInput, "unknown pricing option %q (use on-demand or reserved)", s)
	}
}

// Inventory is a read-only instance class grouping
type Inventory interface {
	// Classes returns the instance classes in insertion order
	Classes() []string

	// Clusters returns the cluster identifiers running class
	Clusters(class string) []string
}

// Record is the cost of one instance class
type Record struct {
	InstanceClass string `json:"instance_class"`
	Count         int    `json:"count"`

	// SKU is empty when the class could not be resolved
	SKU string `json:"sku,omitempty"`

	HourlyRate     determinism.Money `json:"hourly_rate"`
	AnnualOnDemand determinism.Money `json:"annual_on_demand"`

	// Upfront is the per-instance upfront cost times Count; reserved mode only
	Upfront       determinism.Money `json:"upfront"`
	AnnualSavings determinism.Money `json:"annual_savings"`

	Clusters []string `json:"clusters"`
}

// Resolved reports whether a SKU was found for the class
func (r Record) Resolved() bool {
	return r.SKU != ""
}

// Report is the result of one aggregation
type Report struct {
	Mode           Mode     `json:"mode"`
	Region         string   `json:"region"`
	CatalogVersion string   `json:"catalog_version,omitempty"`
	Records        []Record `json:"records"`
}

// Unresolved returns the instance classes that priced at zero for lack of a SKU
func (r *Report) Unresolved() []string {
	var out []string
	for _, rec := range r.Records {
		if !rec.Resolved() {
			out = append(out, rec.InstanceClass)
		}
	}
	return out
}

// Options configure annualisation and the reserved term
type Options struct {
	HoursPerMonth int
	MonthsPerYear int
	Reserved      pricing.ReservedTerm
}

// DefaultOptions returns 720 hours a month, 12 months, 1yr All Upfront
func DefaultOptions() Options {
	return Options{
		HoursPerMonth: 720,
		MonthsPerYear: 12,
		Reserved: pricing.ReservedTerm{
			LeaseContractLength: "1yr",
			PurchaseOption:      "All Upfront",
		},
	}
}

// Aggregator computes cost records
type Aggregator struct {
	resolver *pricing.Resolver
	opts     Options
	logger   *zap.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(resolver *pricing.Resolver, opts Options, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{resolver: resolver, opts: opts, logger: logger}
}

// Aggregate emits one record per instance class of inv, in inv's order.
// Pricing gaps become zero figures; only an invalid mode is an error.
func (a *Aggregator) Aggregate(doc *catalog.Document, inv Inventory, mode Mode) (*Report, error) {
	if mode != ModeOnDemand && mode != ModeReserved {
		return nil, errors.Newf(errors.TypeInput, "unknown pricing option %q", mode)
	}

	report := &Report{
		Mode:    mode,
		Region:  doc.Region,
		Records: []Record{},
	}
	report.CatalogVersion = doc.Version

	for _, class := range inv.Classes() {
		clusters := inv.Clusters(class)
		if len(clusters) == 0 {
			continue
		}
		rec := a.price(doc, class, clusters, mode)
		report.Records = append(report.Records, rec)

		a.logger.Debug("priced instance class",
			zap.String("instance_class", class),
			zap.Int("count", rec.Count),
			zap.String("sku", rec.SKU),
			zap.String("annual_on_demand", rec.AnnualOnDemand.String()),
			zap.String("annual_savings", rec.AnnualSavings.String()),
		)
	}

	if missing := report.Unresolved(); len(missing) > 0 {
		a.logger.Info("instance classes without a catalog match", zap.Strings("instance_classes", missing))
	}
	return report, nil
}

func (a *Aggregator) price(doc *catalog.Document, class string, clusters []string, mode Mode) Record {
	count := int64(len(clusters))
	rec := Record{
		InstanceClass:  class,
		Count:          len(clusters),
		HourlyRate:     determinism.Zero(),
		AnnualOnDemand: determinism.Zero(),
		Upfront:        determinism.Zero(),
		AnnualSavings:  determinism.Zero(),
		Clusters:       clusters,
	}

	sku, ok := a.resolver.Resolve(doc, class)
	if !ok {
		return rec
	}
	rec.SKU = sku

	rec.HourlyRate = determinism.USD(pricing.OnDemandHourly(doc, sku))
	rec.AnnualOnDemand = a.Annualize(rec.HourlyRate, count)

	if mode != ModeReserved {
		return rec
	}

	upfront := determinism.USD(pricing.ReservedUpfront(doc, sku, a.opts.Reserved))
	rec.Upfront = upfront.MulInt(count)
	rec.AnnualSavings = Savings(rec.AnnualOnDemand, rec.Upfront)
	return rec
}

// Annualize returns hourly x count x hours per month x months per year
func (a *Aggregator) Annualize(hourly determinism.Money, count int64) determinism.Money {
	return hourly.MulInt(count).MulInt(int64(a.opts.HoursPerMonth)).MulInt(int64(a.opts.MonthsPerYear))
}

// Savings returns annualOnDemand minus upfront, or zero when either side
// is missing. A negative result is kept.
func Savings(annualOnDemand, upfront determinism.Money) determinism.Money {
	if annualOnDemand.IsZero() || upfront.IsZero() {
		return determinism.Zero()
	}
	return annualOnDemand.Sub(upfront)
}
