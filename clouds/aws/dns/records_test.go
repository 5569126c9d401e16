package dns

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"rds-cost/internal/errors"
)

func recordSet(name string, rrType types.RRType, values ...string) types.ResourceRecordSet {
	rs := types.ResourceRecordSet{Name: aws.String(name), Type: rrType}
	for _, v := range values {
		rs.ResourceRecords = append(rs.ResourceRecords, types.ResourceRecord{Value: aws.String(v)})
	}
	return rs
}

func TestSearchFollowsPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockRoute53API(ctrl)

	gomock.InOrder(
		client.EXPECT().ListResourceRecordSets(gomock.Any(), &route53.ListResourceRecordSetsInput{
			HostedZoneId: aws.String("Z123"),
		}).Return(&route53.ListResourceRecordSetsOutput{
			ResourceRecordSets: []types.ResourceRecordSet{
				recordSet("db.example.com.", types.RRTypeCname, "orders.cluster-abc.eu-west-1.rds.amazonaws.com"),
				recordSet("www.example.com.", types.RRTypeA, "10.0.0.1"),
			},
			IsTruncated:    true,
			NextRecordName: aws.String("x.example.com."),
			NextRecordType: types.RRTypeTxt,
		}, nil),
		client.EXPECT().ListResourceRecordSets(gomock.Any(), &route53.ListResourceRecordSetsInput{
			HostedZoneId:    aws.String("Z123"),
			StartRecordName: aws.String("x.example.com."),
			StartRecordType: types.RRTypeTxt,
		}).Return(&route53.ListResourceRecordSetsOutput{
			ResourceRecordSets: []types.ResourceRecordSet{
				{
					Name: aws.String("reader.example.com."),
					Type: types.RRTypeA,
					AliasTarget: &types.AliasTarget{
						DNSName: aws.String("orders.cluster-ro-abc.eu-west-1.rds.amazonaws.com."),
					},
				},
				recordSet("multi.example.com.", types.RRTypeTxt, "v=spf1", "cluster-abc marker"),
			},
		}, nil),
	)

	matches, err := NewRecordSearcher(client, zaptest.NewLogger(t)).Search(context.Background(), "Z123", "cluster")
	require.NoError(t, err)

	assert.Equal(t, []Match{
		{Name: "db.example.com.", Type: "CNAME", Value: "orders.cluster-abc.eu-west-1.rds.amazonaws.com"},
		{Name: "reader.example.com.", Type: "A", Value: "orders.cluster-ro-abc.eu-west-1.rds.amazonaws.com.", Alias: true},
		{Name: "multi.example.com.", Type: "TXT", Value: "cluster-abc marker"},
	}, matches)
}

func TestSearchNoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockRoute53API(ctrl)
	client.EXPECT().ListResourceRecordSets(gomock.Any(), gomock.Any()).
		Return(&route53.ListResourceRecordSetsOutput{
			ResourceRecordSets: []types.ResourceRecordSet{recordSet("a.example.com.", types.RRTypeA, "10.0.0.1")},
		}, nil)

	matches, err := NewRecordSearcher(client, nil).Search(context.Background(), "Z123", "rds")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := NewMockRoute53API(ctrl)

	_, err := NewRecordSearcher(client, nil).Search(context.Background(), "", "x")
	assert.True(t, errors.IsType(err, errors.TypeInput))

	client.EXPECT().ListResourceRecordSets(gomock.Any(), gomock.Any()).
		Return(nil, stderrors.New("NoSuchHostedZone"))

	_, err = NewRecordSearcher(client, nil).Search(context.Background(), "Z404", "x")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeRetrieval))
}
