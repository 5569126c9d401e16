// Package networking lists the VPC address blocks of every region.
package networking

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"rds-cost/core/determinism"
	"rds-cost/internal/errors"
)

//go:generate mockgen -destination=mock_ec2_test.go -package=networking rds-cost/clouds/aws/networking EC2API

// EC2API is the subset of the EC2 API used for region and VPC listing
type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	DescribeVpcs(ctx context.Context, params *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
}

// ClientFactory returns an EC2 client bound to region
type ClientFactory func(region string) EC2API

// RegionCIDRs are the IPv4 blocks of one region
type RegionCIDRs struct {
	Region string   `json:"region"`
	CIDRs  []string `json:"cidrs"`

	// Error is set when the region could not be listed
	Error string `json:"error,omitempty"`
}

// CIDRLister lists VPC CIDR blocks region by region
type CIDRLister struct {
	clientFor ClientFactory
	logger    *zap.Logger
}

// NewCIDRLister creates a lister
func NewCIDRLister(clientFor ClientFactory, logger *zap.Logger) *CIDRLister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CIDRLister{clientFor: clientFor, logger: logger}
}

// Regions returns the regions enabled for the account, queried from
// discoveryRegion
func (l *CIDRLister) Regions(ctx context.Context, discoveryRegion string) ([]string, error) {
	output, err := l.clientFor(discoveryRegion).DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, errors.Retrieval("failed to describe regions", err)
	}
	regions := make([]string, 0, len(output.Regions))
	for _, r := range output.Regions {
		if name := aws.ToString(r.RegionName); name != "" {
			regions = append(regions, name)
		}
	}
	return regions, nil
}

// List returns the primary and associated CIDR blocks of every VPC in
// region, deduplicated in listing order
func (l *CIDRLister) List(ctx context.Context, region string) ([]string, error) {
	client := l.clientFor(region)
	cidrs := determinism.NewOrderedSet[string]()

	input := &ec2.DescribeVpcsInput{}
	for {
		output, err := client.DescribeVpcs(ctx, input)
		if err != nil {
			return nil, errors.Retrieval("failed to describe VPCs", err).WithContext("region", region)
		}
		for _, vpc := range output.Vpcs {
			addVPC(cidrs, vpc)
		}

		if output.NextToken == nil || aws.ToString(output.NextToken) == "" {
			break
		}
		input = &ec2.DescribeVpcsInput{NextToken: output.NextToken}
	}
	return cidrs.Items(), nil
}

// ListAll lists every region in order. A region that fails is reported in
// its entry and does not stop the others.
func (l *CIDRLister) ListAll(ctx context.Context, regions []string) []RegionCIDRs {
	results := make([]RegionCIDRs, 0, len(regions))
	for _, region := range regions {
		cidrs, err := l.List(ctx, region)
		entry := RegionCIDRs{Region: region, CIDRs: cidrs}
		if err != nil {
			l.logger.Warn("failed to list VPCs", zap.String("region", region), zap.Error(err))
			entry.Error = err.Error()
		}
		results = append(results, entry)
	}
	return results
}

func addVPC(cidrs *determinism.OrderedSet[string], vpc types.Vpc) {
	if block := aws.ToString(vpc.CidrBlock); block != "" {
		cidrs.Add(block)
	}
	for _, assoc := range vpc.CidrBlockAssociationSet {
		if block := aws.ToString(assoc.CidrBlock); block != "" {
			cidrs.Add(block)
		}
	}
}
