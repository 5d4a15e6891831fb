package logic

import (
	"fmt"

	"github.com/gamecharts/leaderboard-dashboard/internal/models"
)

// Canonical category buckets.
const (
	BucketFree     = "free"
	BucketPaid     = "paid"
	BucketGrossing = "grossing"
)

// VintageAll merges the labels of every known vintage.
const VintageAll = "all"

// LabelSet is a set of raw category labels that share one meaning.
type LabelSet map[string]struct{}

func NewLabelSet(labels ...string) LabelSet {
	s := make(LabelSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

func (s LabelSet) Contains(label string) bool {
	_, ok := s[label]
	return ok
}

// CategoryVocabulary maps file vintage -> canonical bucket -> accepted labels.
var CategoryVocabulary = map[string]map[string][]string{
	"v1": {
		BucketFree:     {"Top Free Apps"},
		BucketPaid:     {"Top Paid Apps"},
		BucketGrossing: {"Top Grossing Apps"},
	},
	"v2": {
		BucketFree:     {"Free"},
		BucketPaid:     {"Paid"},
		BucketGrossing: {"Grossing"},
	},
	"v3": {
		BucketFree:     {"Top Free"},
		BucketPaid:     {"Top Paid"},
		BucketGrossing: {"Top Grossing"},
	},
}

// Categories holds the label sets of one vintage.
type Categories struct {
	Vintage string
	buckets map[string]LabelSet
}

// NewCategories builds the label sets for a vintage, or the union of all
// vintages for VintageAll.
func NewCategories(vintage string) (*Categories, error) {
	c := &Categories{Vintage: vintage, buckets: make(map[string]LabelSet)}
	if vintage == VintageAll || vintage == "" {
		c.Vintage = VintageAll
		for _, buckets := range CategoryVocabulary {
			c.merge(buckets)
		}
		return c, nil
	}
	buckets, ok := CategoryVocabulary[vintage]
	if !ok {
		return nil, fmt.Errorf("unknown category vintage %q", vintage)
	}
	c.merge(buckets)
	return c, nil
}

func (c *Categories) merge(buckets map[string][]string) {
	for bucket, labels := range buckets {
		set, ok := c.buckets[bucket]
		if !ok {
			set = make(LabelSet)
			c.buckets[bucket] = set
		}
		for _, l := range labels {
			set[l] = struct{}{}
		}
	}
}

// Labels returns the label set for a bucket (empty for unknown buckets).
func (c *Categories) Labels(bucket string) LabelSet {
	if set, ok := c.buckets[bucket]; ok {
		return set
	}
	return LabelSet{}
}

// DistinctCategories returns the raw category values in first-seen order.
func DistinctCategories(table *models.LeaderboardTable) []string {
	seen := make(map[string]struct{})
	out := []string{}
	if table == nil {
		return out
	}
	for _, row := range table.Rows {
		if _, ok := seen[row.Category]; ok {
			continue
		}
		seen[row.Category] = struct{}{}
		out = append(out, row.Category)
	}
	return out
}
