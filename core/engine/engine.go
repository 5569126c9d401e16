// Package engine runs a cost report end to end.
// CLI is a thin wrapper around this engine.
package engine

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"rds-cost/core/catalog"
	"rds-cost/core/cost"
	"rds-cost/core/inventory"
	"rds-cost/internal/errors"
)

// InventoryReader scans the live clusters of the configured region
type InventoryReader interface {
	Read(ctx context.Context) (*inventory.Grouping, error)
}

// Engine wires the inventory, the catalog and the aggregator together
type Engine struct {
	inventory  InventoryReader
	catalog    catalog.Source
	aggregator *cost.Aggregator
	logger     *zap.Logger
}

// Request selects what to report on
type Request struct {
	Region string
	Mode   cost.Mode
}

// NewEngine creates an engine
func NewEngine(reader InventoryReader, source catalog.Source, aggregator *cost.Aggregator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		inventory:  reader,
		catalog:    source,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Run scans the inventory, loads the region's catalog once and aggregates.
// Inventory and catalog failures abort the run; nothing is retried.
func (e *Engine) Run(ctx context.Context, req Request) (*cost.Report, error) {
	if strings.TrimSpace(req.Region) == "" {
		return nil, errors.Input("region is required")
	}

	start := time.Now()
	grouping, err := e.inventory.Read(ctx)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("inventory ready",
		zap.Int("instance_classes", grouping.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	start = time.Now()
	doc, err := e.catalog.Fetch(ctx, req.Region)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("catalog ready",
		zap.String("source", e.catalog.Name()),
		zap.Int("products", doc.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	report, err := e.aggregator.Aggregate(doc, grouping, req.Mode)
	if err != nil {
		return nil, err
	}
	report.Region = req.Region
	return report, nil
}
