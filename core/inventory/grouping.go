// Package inventory reads the live database clusters of a region and groups
// them by instance class.
package inventory

import (
	"rds-cost/core/determinism"
)

// Grouping maps an instance class to the clusters running it.
// Classes and clusters keep first-seen order; duplicates collapse.
// A Grouping is filled by one scan and only read afterwards.
type Grouping struct {
	classes  *determinism.OrderedSet[string]
	clusters map[string]*determinism.OrderedSet[string]
}

// NewGrouping creates an empty grouping
func NewGrouping() *Grouping {
	return &Grouping{
		classes:  determinism.NewOrderedSet[string](),
		clusters: make(map[string]*determinism.OrderedSet[string]),
	}
}

// Add records that cluster runs an instance of class
func (g *Grouping) Add(class, cluster string) {
	if class == "" || cluster == "" {
		return
	}
	set, ok := g.clusters[class]
	if !ok {
		set = determinism.NewOrderedSet[string]()
		g.clusters[class] = set
		g.classes.Add(class)
	}
	set.Add(cluster)
}

// Classes returns the instance classes in first-seen order
func (g *Grouping) Classes() []string {
	return g.classes.Items()
}

// Clusters returns the clusters running class in first-seen order
func (g *Grouping) Clusters(class string) []string {
	set, ok := g.clusters[class]
	if !ok {
		return nil
	}
	return set.Items()
}

// Len returns the number of instance classes
func (g *Grouping) Len() int {
	return g.classes.Len()
}

// Contains reports whether cluster appears under any class
func (g *Grouping) Contains(cluster string) bool {
	for _, set := range g.clusters {
		if set.Contains(cluster) {
			return true
		}
	}
	return false
}
