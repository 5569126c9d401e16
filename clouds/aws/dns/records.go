// Package dns searches Route 53 hosted zones for records pointing at a value.
package dns

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
	"go.uber.org/zap"

	"rds-cost/internal/errors"
)

//go:generate mockgen -destination=mock_route53_test.go -package=dns rds-cost/clouds/aws/dns Route53API

// Route53API is the subset of the Route 53 API used for record search
type Route53API interface {
	ListResourceRecordSets(ctx context.Context, params *route53.ListResourceRecordSetsInput, optFns ...func(*route53.Options)) (*route53.ListResourceRecordSetsOutput, error)
}

// Match is one record value containing the search term
type Match struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Alias bool   `json:"alias,omitempty"`
}

// RecordSearcher walks every page of a hosted zone
type RecordSearcher struct {
	client Route53API
	logger *zap.Logger
}

// NewRecordSearcher creates a searcher
func NewRecordSearcher(client Route53API, logger *zap.Logger) *RecordSearcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordSearcher{client: client, logger: logger}
}

// Search returns the records of zoneID whose value or alias target contains
// value, in listing order
func (s *RecordSearcher) Search(ctx context.Context, zoneID, value string) ([]Match, error) {
	if zoneID == "" || value == "" {
		return nil, errors.Input("hosted zone id and search value are required")
	}

	var (
		matches []Match
		pages   int
	)
	input := &route53.ListResourceRecordSetsInput{HostedZoneId: aws.String(zoneID)}
	for {
		output, err := s.client.ListResourceRecordSets(ctx, input)
		if err != nil {
			return nil, errors.Retrieval("failed to list resource record sets", err).WithContext("zone", zoneID)
		}
		pages++

		for _, rs := range output.ResourceRecordSets {
			matches = append(matches, matchRecordSet(rs, value)...)
		}

		if !output.IsTruncated {
			break
		}
		input = &route53.ListResourceRecordSetsInput{
			HostedZoneId:          aws.String(zoneID),
			StartRecordName:       output.NextRecordName,
			StartRecordType:       output.NextRecordType,
			StartRecordIdentifier: output.NextRecordIdentifier,
		}
	}

	s.logger.Debug("hosted zone searched",
		zap.String("zone", zoneID),
		zap.Int("pages", pages),
		zap.Int("matches", len(matches)),
	)
	return matches, nil
}

func matchRecordSet(rs types.ResourceRecordSet, value string) []Match {
	var out []Match
	name := aws.ToString(rs.Name)
	for _, record := range rs.ResourceRecords {
		v := aws.ToString(record.Value)
		if strings.Contains(v, value) {
			out = append(out, Match{Name: name, Type: string(rs.Type), Value: v})
		}
	}
	if rs.AliasTarget != nil {
		target := aws.ToString(rs.AliasTarget.DNSName)
		if strings.Contains(target, value) {
			out = append(out, Match{Name: name, Type: string(rs.Type), Value: target, Alias: true})
		}
	}
	return out
}
