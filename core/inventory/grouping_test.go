package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrouping(t *testing.T) {
	g := NewGrouping()
	g.Add("db.r6g.large", "orders")
	g.Add("db.r5.xlarge", "search")
	g.Add("db.r6g.large", "billing")
	g.Add("db.r6g.large", "orders")
	g.Add("", "nobody")
	g.Add("db.t4g.medium", "")

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"db.r6g.large", "db.r5.xlarge"}, g.Classes())
	assert.Equal(t, []string{"orders", "billing"}, g.Clusters("db.r6g.large"))
	assert.Equal(t, []string{"search"}, g.Clusters("db.r5.xlarge"))
	assert.Nil(t, g.Clusters("db.t4g.medium"))

	assert.True(t, g.Contains("billing"))
	assert.False(t, g.Contains("nobody"))
}

func TestGroupingEmpty(t *testing.T) {
	g := NewGrouping()
	assert.Equal(t, 0, g.Len())
	assert.Empty(t, g.Classes())
}
