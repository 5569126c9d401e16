package inventory

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"go.uber.org/zap"

	"rds-cost/internal/errors"
)

//go:generate mockgen -destination=mock_rds_test.go -package=inventory rds-cost/core/inventory RDSAPI

// RDSAPI is the subset of the RDS API used to list clusters and instances
type RDSAPI interface {
	DescribeDBClusters(ctx context.Context, params *rds.DescribeDBClustersInput, optFns ...func(*rds.Options)) (*rds.DescribeDBClustersOutput, error)
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// serverlessEngineMode is the engine mode of Aurora Serverless v1 clusters,
// which have no instances to price
const serverlessEngineMode = "serverless"

// Options filter the scan
type Options struct {
	// Ignore holds cluster identifiers that are never grouped
	Ignore map[string]struct{}

	// ServerlessMarker is a substring of instance classes that are skipped
	ServerlessMarker string
}

// Reader builds a Grouping from the live RDS inventory
type Reader struct {
	client RDSAPI
	opts   Options
	logger *zap.Logger
}

// NewReader creates a reader over client
func NewReader(client RDSAPI, opts Options, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Ignore == nil {
		opts.Ignore = map[string]struct{}{}
	}
	return &Reader{client: client, opts: opts, logger: logger}
}

// Read scans every cluster page and its instances. Any API failure aborts
// the scan with a retrieval error.
func (r *Reader) Read(ctx context.Context) (*Grouping, error) {
	grouping := NewGrouping()

	clusters, err := r.listClusters(ctx)
	if err != nil {
		return nil, err
	}

	skipped := 0
	for _, cluster := range clusters {
		id := aws.ToString(cluster.DBClusterIdentifier)
		if r.skipCluster(cluster) {
			skipped++
			continue
		}

		classes, err := r.listInstanceClasses(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, class := range classes {
			if r.isServerless(class) {
				r.logger.Debug("skipping serverless instance", zap.String("cluster", id), zap.String("instance_class", class))
				continue
			}
			grouping.Add(class, id)
		}
	}

	r.logger.Info("inventory scanned",
		zap.Int("clusters", len(clusters)),
		zap.Int("skipped", skipped),
		zap.Int("instance_classes", grouping.Len()),
	)
	return grouping, nil
}

func (r *Reader) skipCluster(cluster types.DBCluster) bool {
	id := aws.ToString(cluster.DBClusterIdentifier)
	if _, ignored := r.opts.Ignore[id]; ignored {
		r.logger.Debug("ignoring cluster", zap.String("cluster", id))
		return true
	}
	if strings.EqualFold(aws.ToString(cluster.EngineMode), serverlessEngineMode) {
		r.logger.Debug("skipping serverless cluster", zap.String("cluster", id))
		return true
	}
	return false
}

func (r *Reader) isServerless(class string) bool {
	return r.opts.ServerlessMarker != "" && strings.Contains(class, r.opts.ServerlessMarker)
}

func (r *Reader) listClusters(ctx context.Context) ([]types.DBCluster, error) {
	var (
		clusters []types.DBCluster
		marker   *string
	)
	for {
		output, err := r.client.DescribeDBClusters(ctx, &rds.DescribeDBClustersInput{Marker: marker})
		if err != nil {
			return nil, errors.Retrieval("failed to describe DB clusters", err)
		}
		clusters = append(clusters, output.DBClusters...)

		if output.Marker == nil || aws.ToString(output.Marker) == "" {
			break
		}
		marker = output.Marker
	}
	return clusters, nil
}

func (r *Reader) listInstanceClasses(ctx context.Context, clusterID string) ([]string, error) {
	var (
		classes []string
		marker  *string
	)
	for {
		output, err := r.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
			Filters: []types.Filter{{
				Name:   aws.String("db-cluster-id"),
				Values: []string{clusterID},
			}},
			Marker: marker,
		})
		if err != nil {
			return nil, errors.Retrieval("failed to describe DB instances", err).WithContext("cluster", clusterID)
		}
		for _, instance := range output.DBInstances {
			if class := aws.ToString(instance.DBInstanceClass); class != "" {
				classes = append(classes, class)
			}
		}

		if output.Marker == nil || aws.ToString(output.Marker) == "" {
			break
		}
		marker = output.Marker
	}
	return classes, nil
}
