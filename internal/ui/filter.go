package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"mediabrowse/internal/core/picker"
)

// FilterConfig bundles tuning parameters for the folder tree filter.
type FilterConfig struct {
	MinCoverage float64 // minimal share of the query that must match
	MaxSpread   int     // maximal distance between first and last match index
	MaxResults  int     // upper limit of returned results
}

var defaultFilterCfg = FilterConfig{MinCoverage: 0.6, MaxSpread: 40, MaxResults: 200}

// filterNodes returns the indices of tree nodes matching the query. An empty
// query matches everything. Fuzzy matches are pruned by coverage and spread
// so unrelated folders with scattered letter hits stay out; a substring hit
// always qualifies.
func filterNodes(q string, nodes []picker.FlatNode, cfg FilterConfig) []int {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		idx := make([]int, len(nodes))
		for i := range nodes {
			idx[i] = i
		}
		return idx
	}

	labels := make([]string, len(nodes))
	for i, n := range nodes {
		labels[i] = strings.ToLower(n.Label)
	}

	sub := make([]int, 0, len(nodes))
	for i, l := range labels {
		if strings.Contains(l, q) {
			sub = append(sub, i)
			if len(sub) >= cfg.MaxResults {
				return sub
			}
		}
	}
	if len(sub) > 0 {
		return sub
	}

	matches := fuzzy.Find(q, labels)
	pruned := make([]int, 0, len(matches))
	for _, mt := range matches {
		if matchCoverage(q, mt) < cfg.MinCoverage {
			continue
		}
		if matchSpread(mt) > cfg.MaxSpread {
			continue
		}
		pruned = append(pruned, mt.Index)
		if len(pruned) >= cfg.MaxResults {
			break
		}
	}
	return pruned
}

// matchCoverage returns the ratio of matched characters to the query length.
func matchCoverage(q string, m fuzzy.Match) float64 {
	if len(q) == 0 {
		return 1
	}
	return float64(len(m.MatchedIndexes)) / float64(len(q))
}

// matchSpread returns the distance between the first and last matched index.
func matchSpread(m fuzzy.Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0]
}
