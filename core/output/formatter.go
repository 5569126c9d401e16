// Package output renders cost reports.
// This package produces human and machine-readable outputs.
package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"rds-cost/core/cost"
	"rds-cost/core/ui"
	"rds-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatTable is the fixed-width text table
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes report to w
	Render(w io.Writer, report *cost.Report) error
}

// NewFormatter returns the formatter for format
func NewFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatTable, "":
		return &TableFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{Indent: true}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q", format)
	}
}

// unresolvedSKU is printed in place of a missing SKU
const unresolvedSKU = "-"

// Column layouts of the text report
var (
	onDemandHeaders = []string{"Instance Type", "Count", "SKU", "OnDemand/hr ($)", "OnDemand/year ($)", "Clusters Using This Type"}
	onDemandWidths  = []int{20, 6, 25, 17, 25}

	reservedHeaders = []string{"Instance Type", "Count", "SKU", "Aggregated Upfront Cost ($)", "Annual Savings ($)", "Clusters Using This Type"}
	reservedWidths  = []int{20, 6, 25, 35, 25}
)

// TableFormatter renders one fixed-width row per instance class
type TableFormatter struct{}

// Format implements Formatter
func (f *TableFormatter) Format() Format {
	return FormatTable
}

// Render implements Formatter
func (f *TableFormatter) Render(w io.Writer, report *cost.Report) error {
	writer := ui.NewWriter(w, true)

	var table *ui.Table
	if report.Mode == cost.ModeReserved {
		table = writer.NewFixedTable(reservedWidths, reservedHeaders...)
	} else {
		table = writer.NewFixedTable(onDemandWidths, onDemandHeaders...)
	}

	for _, rec := range report.Records {
		sku := rec.SKU
		if sku == "" {
			sku = unresolvedSKU
		}

		clusters := strings.Join(rec.Clusters, ", ")
		count := strconv.Itoa(rec.Count)
		if report.Mode == cost.ModeReserved {
			table.AddRow(rec.InstanceClass, count, sku, rec.Upfront.String(), rec.AnnualSavings.String(), clusters)
		} else {
			table.AddRow(rec.InstanceClass, count, sku, rec.HourlyRate.String(), rec.AnnualOnDemand.String(), clusters)
		}
	}

	table.Render()
	return nil
}

// JSONFormatter renders the report as a JSON document
type JSONFormatter struct {
	Indent bool
}

// Format implements Formatter
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render implements Formatter
func (f *JSONFormatter) Render(w io.Writer, report *cost.Report) error {
	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return errors.Internal("failed to encode report", err)
	}
	return nil
}
