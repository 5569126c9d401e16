package catalog

import (
	"io"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"rds-cost/core/determinism"
	"rds-cost/internal/errors"
)

// rawOffer is the wire shape of an AWS price list offer file
type rawOffer struct {
	FormatVersion   string                `json:"formatVersion"`
	Disclaimer      string                `json:"disclaimer"`
	OfferCode       string                `json:"offerCode"`
	Version         string                `json:"version"`
	PublicationDate string                `json:"publicationDate"`
	Products        map[string]rawProduct `json:"products"`
	Terms           rawTerms              `json:"terms"`
}

type rawProduct struct {
	SKU           string            `json:"sku"`
	ProductFamily string            `json:"productFamily"`
	Attributes    map[string]string `json:"attributes"`
}

// rawTerms maps SKU -> term key -> term
type rawTerms struct {
	OnDemand map[string]map[string]rawTerm `json:"OnDemand"`
	Reserved map[string]map[string]rawTerm `json:"Reserved"`
}

type rawTerm struct {
	OfferTermCode   string                       `json:"offerTermCode"`
	SKU             string                       `json:"sku"`
	EffectiveDate   string                       `json:"effectiveDate"`
	PriceDimensions map[string]rawPriceDimension `json:"priceDimensions"`
	TermAttributes  map[string]string            `json:"termAttributes"`
}

type rawPriceDimension struct {
	RateCode     string            `json:"rateCode"`
	Description  string            `json:"description"`
	BeginRange   string            `json:"beginRange"`
	EndRange     string            `json:"endRange"`
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
	AppliesTo    []string          `json:"appliesTo"`
}

// Parse decodes an offer file. region labels the document; when empty the
// regionCode of the first product is used.
func Parse(data []byte, region string) (*Document, error) {
	var raw rawOffer
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Parsing("failed to decode pricing document", err)
	}
	return fromOffer(&raw, region)
}

// ParseReader decodes an offer file from r
func ParseReader(r io.Reader, region string) (*Document, error) {
	var raw rawOffer
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Parsing("failed to decode pricing document", err)
	}
	return fromOffer(&raw, region)
}

func fromOffer(raw *rawOffer, region string) (*Document, error) {
	if len(raw.Products) == 0 {
		return nil, errors.New(errors.TypeParsing, "pricing document contains no products").
			WithContext("offer_code", raw.OfferCode)
	}
	return build(raw, region), nil
}

// build converts the wire shape into a Document. Entries that cannot be read
// are dropped rather than failing the whole document.
func build(raw *rawOffer, region string) *Document {
	doc := &Document{
		OfferCode:       raw.OfferCode,
		Version:         raw.Version,
		PublicationDate: raw.PublicationDate,
		Region:          region,
		Products:        make([]Product, 0, len(raw.Products)),
		OnDemand:        convertTerms(raw.Terms.OnDemand),
		Reserved:        convertTerms(raw.Terms.Reserved),
		bySKU:           make(map[string]int, len(raw.Products)),
		byInstanceType:  make(map[string][]int),
	}

	for key, p := range raw.Products {
		sku := p.SKU
		if sku == "" {
			sku = key
		}
		attrs := p.Attributes
		doc.Products = append(doc.Products, Product{
			SKU:              sku,
			Family:           p.ProductFamily,
			InstanceType:     attrs["instanceType"],
			ServiceCode:      attrs["servicecode"],
			DatabaseEngine:   attrs["databaseEngine"],
			Storage:          attrs["storage"],
			DeploymentOption: attrs["deploymentOption"],
			Location:         attrs["location"],
			RegionCode:       attrs["regionCode"],
		})
	}

	sort.Slice(doc.Products, func(i, j int) bool {
		return doc.Products[i].SKU < doc.Products[j].SKU
	})

	for i, p := range doc.Products {
		doc.bySKU[p.SKU] = i
		if p.InstanceType != "" {
			doc.byInstanceType[p.InstanceType] = append(doc.byInstanceType[p.InstanceType], i)
		}
		if doc.Region == "" && p.RegionCode != "" {
			doc.Region = p.RegionCode
		}
	}

	return doc
}

func convertTerms(raw map[string]map[string]rawTerm) map[string][]Term {
	out := make(map[string][]Term, len(raw))
	for sku, byCode := range raw {
		codes := determinism.SortedKeys(byCode)
		terms := make([]Term, 0, len(codes))
		for _, code := range codes {
			rt := byCode[code]
			terms = append(terms, Term{
				Code:                code,
				LeaseContractLength: rt.TermAttributes["LeaseContractLength"],
				PurchaseOption:      rt.TermAttributes["PurchaseOption"],
				OfferingClass:       rt.TermAttributes["OfferingClass"],
				Dimensions:          convertDimensions(rt.PriceDimensions),
			})
		}
		out[sku] = terms
	}
	return out
}

func convertDimensions(raw map[string]rawPriceDimension) []PriceDimension {
	codes := determinism.SortedKeys(raw)
	dims := make([]PriceDimension, 0, len(codes))
	for _, code := range codes {
		rd := raw[code]
		usd, ok := rd.PricePerUnit["USD"]
		if !ok || rd.Unit == "" {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(usd))
		if err != nil || price.IsNegative() {
			continue
		}
		rateCode := rd.RateCode
		if rateCode == "" {
			rateCode = code
		}
		dims = append(dims, PriceDimension{
			RateCode:    rateCode,
			Unit:        NormalizeUnit(rd.Unit),
			Description: rd.Description,
			USD:         price,
		})
	}
	return dims
}

// NormalizeUnit converts AWS units to canonical form
func NormalizeUnit(unit string) string {
	mapping := map[string]string{
		"Hrs":      UnitHours,
		"Hours":    UnitHours,
		"Quantity": UnitQuantity,
		"GB-Mo":    "GB-month",
		"GB-Month": "GB-month",
		"IOPS-Mo":  "IOPS-month",
		"ACU-Hr":   "ACU-hours",
		"ACU-Hrs":  "ACU-hours",
		"IOs":      "IOs",
	}

	if normalized, ok := mapping[unit]; ok {
		return normalized
	}

	return strings.ToLower(unit)
}
