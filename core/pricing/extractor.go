package pricing

import (
	"github.com/shopspring/decimal"

	"rds-cost/core/catalog"
)

// ReservedTerm selects a reserved offering
type ReservedTerm struct {
	LeaseContractLength string
	PurchaseOption      string
}

// Matches reports whether t carries both term attributes
func (r ReservedTerm) Matches(t catalog.Term) bool {
	return t.LeaseContractLength == r.LeaseContractLength && t.PurchaseOption == r.PurchaseOption
}

// OnDemandHourly returns the hourly on-demand rate of sku, the first hourly
// dimension in term order. Absent terms or dimensions yield zero.
func OnDemandHourly(doc *catalog.Document, sku string) decimal.Decimal {
	for _, term := range doc.OnDemand[sku] {
		if dim, ok := term.Dimension(catalog.UnitHours); ok {
			return dim.USD
		}
	}
	return decimal.Zero
}

// ReservedUpfront returns the one-time charge of the reserved term of sku
// matching want. Terms without a quantity dimension are skipped; when several
// match, the last in term order wins. No match yields zero.
func ReservedUpfront(doc *catalog.Document, sku string, want ReservedTerm) decimal.Decimal {
	upfront := decimal.Zero
	for _, term := range doc.Reserved[sku] {
		if !want.Matches(term) {
			continue
		}
		if dim, ok := term.LastDimension(catalog.UnitQuantity); ok {
			upfront = dim.USD
		}
	}
	return upfront
}
