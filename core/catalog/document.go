// Package catalog holds the validated pricing document for one region and the
// sources that retrieve it.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Canonical units produced by the parser
const (
	UnitHours    = "hours"
	UnitQuantity = "quantity"
)

// Document is an immutable pricing catalog for one service in one region.
// It is built once by Parse and only read afterwards.
type Document struct {
	OfferCode       string
	Version         string
	PublicationDate string
	Region          string

	// Products are ordered by SKU
	Products []Product

	// OnDemand and Reserved map a SKU to its terms ordered by offer term code
	OnDemand map[string][]Term
	Reserved map[string][]Term

	bySKU          map[string]int
	byInstanceType map[string][]int
}

// Product is one priceable configuration
type Product struct {
	SKU              string
	Family           string
	InstanceType     string
	ServiceCode      string
	DatabaseEngine   string
	Storage          string
	DeploymentOption string
	Location         string
	RegionCode       string
}

// Term is one purchasing term of a SKU
type Term struct {
	Code string

	// Reserved term attributes; empty for on-demand terms
	LeaseContractLength string
	PurchaseOption      string
	OfferingClass       string

	// Dimensions are ordered by rate code
	Dimensions []PriceDimension
}

// PriceDimension is one priced unit within a term
type PriceDimension struct {
	RateCode    string
	Unit        string
	Description string
	USD         decimal.Decimal
}

// Product returns the product for sku
func (d *Document) Product(sku string) (Product, bool) {
	i, ok := d.bySKU[sku]
	if !ok {
		return Product{}, false
	}
	return d.Products[i], true
}

// ProductsByInstanceType returns the products whose instanceType equals
// instanceType, in SKU order
func (d *Document) ProductsByInstanceType(instanceType string) []Product {
	idx := d.byInstanceType[instanceType]
	out := make([]Product, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.Products[i])
	}
	return out
}

// Len returns the number of products
func (d *Document) Len() int {
	return len(d.Products)
}

// Dimension returns the first dimension of t with the given unit
func (t Term) Dimension(unit string) (PriceDimension, bool) {
	for _, dim := range t.Dimensions {
		if dim.Unit == unit {
			return dim, true
		}
	}
	return PriceDimension{}, false
}

// LastDimension returns the last dimension of t with the given unit
func (t Term) LastDimension(unit string) (PriceDimension, bool) {
	for i := len(t.Dimensions) - 1; i >= 0; i-- {
		if t.Dimensions[i].Unit == unit {
			return t.Dimensions[i], true
		}
	}
	return PriceDimension{}, false
}
