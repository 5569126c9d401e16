package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rds-cost/internal/errors"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "offer.json"))
	require.NoError(t, err)
	return data
}

func TestParse(t *testing.T) {
	doc, err := Parse(loadFixture(t), "")
	require.NoError(t, err)

	assert.Equal(t, "AmazonRDS", doc.OfferCode)
	assert.Equal(t, "20261001000000", doc.Version)
	assert.Equal(t, "us-east-1", doc.Region, "region falls back to the products' regionCode")
	assert.Equal(t, 8, doc.Len())

	for i := 1; i < len(doc.Products); i++ {
		assert.Less(t, doc.Products[i-1].SKU, doc.Products[i].SKU, "products are ordered by SKU")
	}

	p, ok := doc.Product("ABC123")
	require.True(t, ok)
	assert.Equal(t, Product{
		SKU:              "ABC123",
		Family:           "Database Instance",
		InstanceType:     "db.r6g.large",
		ServiceCode:      "AmazonRDS",
		DatabaseEngine:   "Aurora PostgreSQL",
		Storage:          "EBS Only",
		DeploymentOption: "Single-AZ",
		Location:         "US East (N. Virginia)",
		RegionCode:       "us-east-1",
	}, p)

	_, ok = doc.Product("NOPE")
	assert.False(t, ok)
}

func TestParseRegionLabel(t *testing.T) {
	doc, err := Parse(loadFixture(t), "eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", doc.Region)
}

func TestProductsByInstanceType(t *testing.T) {
	doc, err := Parse(loadFixture(t), "us-east-1")
	require.NoError(t, err)

	var skus []string
	for _, p := range doc.ProductsByInstanceType("db.r6g.large") {
		skus = append(skus, p.SKU)
	}
	assert.Equal(t, []string{"ABC123", "ABC999", "IOO111"}, skus)

	assert.Empty(t, doc.ProductsByInstanceType("db.x2g.16xlarge"))
	assert.Empty(t, doc.ProductsByInstanceType(""), "products without an instance type are not indexed")
}

func TestParseTerms(t *testing.T) {
	doc, err := Parse(loadFixture(t), "us-east-1")
	require.NoError(t, err)

	onDemand := doc.OnDemand["ABC123"]
	require.Len(t, onDemand, 1)
	dim, ok := onDemand[0].Dimension(UnitHours)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("0.5").Equal(dim.USD))
	assert.Equal(t, "ABC123.JRTCKXETXF.6YS6EN2CT7", dim.RateCode)

	reserved := doc.Reserved["ABC123"]
	var codes []string
	for _, term := range reserved {
		codes = append(codes, term.Code)
	}
	assert.Equal(t, []string{
		"ABC123.6QCMYABX3D",
		"ABC123.BADTERM001",
		"ABC123.HU7G6KETJZ",
		"ABC123.MZU6U2429S",
	}, codes)

	assert.Equal(t, "1yr", reserved[0].LeaseContractLength)
	assert.Equal(t, "All Upfront", reserved[0].PurchaseOption)
	assert.Equal(t, "standard", reserved[0].OfferingClass)
	assert.Empty(t, reserved[1].Dimensions, "a dimension without a USD price is dropped")

	upfront, ok := reserved[0].LastDimension(UnitQuantity)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1000).Equal(upfront.USD))
}

func TestParseDropsUnreadableDimensions(t *testing.T) {
	doc, err := Parse(loadFixture(t), "us-east-1")
	require.NoError(t, err)

	terms := doc.OnDemand["DUP002"]
	require.Len(t, terms, 1)
	require.Len(t, terms[0].Dimensions, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(terms[0].Dimensions[0].USD))
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(strings.NewReader(string(loadFixture(t))), "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, 8, doc.Len())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "<html>"},
		{name: "truncated", data: `{"products": {"A": {`},
		{name: "no products", data: `{"offerCode": "AmazonRDS", "products": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "us-east-1")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeParsing), "got %v", err)
		})
	}
}

func TestTermDimensionOrder(t *testing.T) {
	term := Term{Dimensions: []PriceDimension{
		{RateCode: "a", Unit: UnitQuantity, USD: decimal.NewFromInt(1)},
		{RateCode: "b", Unit: UnitHours, USD: decimal.NewFromInt(2)},
		{RateCode: "c", Unit: UnitQuantity, USD: decimal.NewFromInt(3)},
	}}

	first, ok := term.Dimension(UnitQuantity)
	require.True(t, ok)
	assert.Equal(t, "a", first.RateCode)

	last, ok := term.LastDimension(UnitQuantity)
	require.True(t, ok)
	assert.Equal(t, "c", last.RateCode)

	_, ok = term.Dimension("GB-month")
	assert.False(t, ok)
	_, ok = term.LastDimension("GB-month")
	assert.False(t, ok)
}

func TestNormalizeUnit(t *testing.T) {
	tests := map[string]string{
		"Hrs":      UnitHours,
		"Hours":    UnitHours,
		"Quantity": UnitQuantity,
		"GB-Mo":    "GB-month",
		"ACU-Hr":   "ACU-hours",
		"Requests": "requests",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeUnit(in), in)
	}
}
