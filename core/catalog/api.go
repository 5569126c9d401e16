package catalog

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"rds-cost/core/determinism"
	"rds-cost/internal/errors"
)

//go:generate mockgen -destination=mock_pricing_test.go -package=catalog rds-cost/core/catalog PricingAPI

// PricingAPI is the subset of the Price List Query API used here
type PricingAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// APISource builds the document from GetProducts pages
type APISource struct {
	client      PricingAPI
	serviceCode string
	filters     map[string]string
	logger      *zap.Logger
}

// priceListItem is one GetProducts PriceList entry
type priceListItem struct {
	Product         rawProduct                    `json:"product"`
	ServiceCode     string                        `json:"serviceCode"`
	Version         string                        `json:"version"`
	PublicationDate string                        `json:"publicationDate"`
	Terms           map[string]map[string]rawTerm `json:"terms"`
}

// NewAPISource creates a Price List Query API source. filters are extra
// TERM_MATCH attribute filters (e.g. databaseEngine) that narrow the download.
func NewAPISource(client PricingAPI, serviceCode string, filters map[string]string, logger *zap.Logger) *APISource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APISource{
		client:      client,
		serviceCode: serviceCode,
		filters:     filters,
		logger:      logger,
	}
}

// Name implements Source
func (s *APISource) Name() string {
	return "api"
}

// Fetch implements Source
func (s *APISource) Fetch(ctx context.Context, region string) (*Document, error) {
	raw := &rawOffer{
		OfferCode: s.serviceCode,
		Products:  make(map[string]rawProduct),
		Terms: rawTerms{
			OnDemand: make(map[string]map[string]rawTerm),
			Reserved: make(map[string]map[string]rawTerm),
		},
	}

	input := &pricing.GetProductsInput{
		ServiceCode:   aws.String(s.serviceCode),
		FormatVersion: aws.String("aws_v1"),
		Filters:       s.buildFilters(region),
		MaxResults:    aws.Int32(100),
	}

	pages := 0
	for {
		output, err := s.client.GetProducts(ctx, input)
		if err != nil {
			return nil, errors.Retrieval("GetProducts failed", err).WithContext("region", region)
		}
		pages++

		for _, entry := range output.PriceList {
			var item priceListItem
			if err := json.Unmarshal([]byte(entry), &item); err != nil {
				return nil, errors.Parsing("failed to decode price list entry", err)
			}
			s.merge(raw, &item)
		}

		if output.NextToken == nil || aws.ToString(output.NextToken) == "" {
			break
		}
		input.NextToken = output.NextToken
	}

	s.logger.Info("pricing document assembled",
		zap.String("region", region),
		zap.Int("pages", pages),
		zap.Int("products", len(raw.Products)),
	)

	return fromOffer(raw, region)
}

func (s *APISource) buildFilters(region string) []types.Filter {
	filters := []types.Filter{{
		Field: aws.String("regionCode"),
		Type:  types.FilterTypeTermMatch,
		Value: aws.String(region),
	}}

	for _, k := range determinism.SortedKeys(s.filters) {
		filters = append(filters, types.Filter{
			Field: aws.String(k),
			Type:  types.FilterTypeTermMatch,
			Value: aws.String(s.filters[k]),
		})
	}
	return filters
}

func (s *APISource) merge(raw *rawOffer, item *priceListItem) {
	sku := item.Product.SKU
	if sku == "" {
		return
	}
	raw.Products[sku] = item.Product
	if raw.Version == "" {
		raw.Version = item.Version
		raw.PublicationDate = item.PublicationDate
	}
	if terms, ok := item.Terms["OnDemand"]; ok {
		raw.Terms.OnDemand[sku] = terms
	}
	if terms, ok := item.Terms["Reserved"]; ok {
		raw.Terms.Reserved[sku] = terms
	}
}
