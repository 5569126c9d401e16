// Package pricing resolves catalog SKUs for instance classes and extracts
// their on-demand and reserved prices.
package pricing

import (
	"strings"

	"go.uber.org/zap"

	"rds-cost/core/catalog"
)

// Criteria are the fixed attributes a product must carry besides its
// instance type
type Criteria struct {
	ServiceCode string
	Engine      string
	Storage     string

	// ServerlessMarker is a substring of instance classes that are never
	// matched against fixed-size products
	ServerlessMarker string
}

// Matches reports whether p satisfies every criterion for instanceClass
func (c Criteria) Matches(p catalog.Product, instanceClass string) bool {
	return p.InstanceType == instanceClass &&
		p.ServiceCode == c.ServiceCode &&
		p.DatabaseEngine == c.Engine &&
		p.Storage == c.Storage
}

// Resolver finds the SKU describing an instance class
type Resolver struct {
	criteria Criteria
	logger   *zap.Logger
}

// NewResolver creates a resolver. The engine may be given either as the
// catalog name or as the RDS engine identifier.
func NewResolver(criteria Criteria, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	criteria.Engine = NormalizeEngine(criteria.Engine)
	return &Resolver{criteria: criteria, logger: logger}
}

// Criteria returns the criteria in use
func (r *Resolver) Criteria() Criteria {
	return r.criteria
}

// IsServerless reports whether instanceClass is a serverless class
func (r *Resolver) IsServerless(instanceClass string) bool {
	return r.criteria.ServerlessMarker != "" && strings.Contains(instanceClass, r.criteria.ServerlessMarker)
}

// Resolve returns the SKU for instanceClass. Serverless classes resolve to
// no SKU without reading doc. When several products match, the smallest SKU
// wins.
func (r *Resolver) Resolve(doc *catalog.Document, instanceClass string) (string, bool) {
	if r.IsServerless(instanceClass) {
		return "", false
	}

	var (
		sku     string
		matches int
	)
	for _, p := range doc.ProductsByInstanceType(instanceClass) {
		if !r.criteria.Matches(p, instanceClass) {
			continue
		}
		if matches == 0 {
			sku = p.SKU
		}
		matches++
	}

	switch {
	case matches == 0:
		r.logger.Debug("no SKU for instance class", zap.String("instance_class", instanceClass))
		return "", false
	case matches > 1:
		r.logger.Warn("ambiguous catalog match",
			zap.String("instance_class", instanceClass),
			zap.Int("matches", matches),
			zap.String("sku", sku),
		)
	}
	return sku, true
}

// NormalizeEngine maps an RDS engine identifier to the catalog's
// databaseEngine value
func NormalizeEngine(engine string) string {
	switch engine {
	case "aurora", "aurora-mysql":
		return "Aurora MySQL"
	case "aurora-postgresql":
		return "Aurora PostgreSQL"
	default:
		return engine
	}
}
