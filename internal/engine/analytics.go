// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/pubmed-miner/pkg/types"
)

// facetLimit caps facet tables at the top 20 values; percentages are
// computed against the top-20 sum, not the whole corpus.
const facetLimit = 20

// analyticsYearMin restricts year-based aggregates to the period the corpus
// was collected for.
const analyticsYearMin = 2020

// Facets returns the count breakdown of the corpus along one dimension:
// "journal", "year" (years >= 2020), or "author" (heuristic surnames, the
// last whitespace-delimited token of each author name).
func (e *Engine) Facets(by string) ([]types.FacetEntry, error) {
	counts := make(map[string]int)

	switch by {
	case "journal":
		for _, a := range e.articles {
			counts[a.Journal]++
		}
	case "year":
		for _, a := range e.articles {
			if a.Year >= analyticsYearMin {
				counts[strconv.Itoa(a.Year)]++
			}
		}
	case "author":
		for _, a := range e.articles {
			for _, name := range a.Authors {
				if fields := strings.Fields(name); len(fields) > 0 {
					counts[fields[len(fields)-1]]++
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFacet, by)
	}

	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] != counts[values[j]] {
			return counts[values[i]] > counts[values[j]]
		}
		return values[i] < values[j]
	})
	if len(values) > facetLimit {
		values = values[:facetLimit]
	}

	total := 0
	for _, v := range values {
		total += counts[v]
	}

	entries := make([]types.FacetEntry, len(values))
	for i, v := range values {
		entries[i] = types.FacetEntry{
			Value: v,
			Count: counts[v],
			Pct:   float64(counts[v]) / float64(total) * 100,
		}
	}
	return entries, nil
}

// YearlyCounts returns publication counts per year from 2020 on, ascending.
// A non-nil ids slice restricts the counts to that document subset.
func (e *Engine) YearlyCounts(ids []string) []types.YearCount {
	var subset idSet
	if ids != nil {
		subset = make(idSet, len(ids))
		for _, id := range ids {
			subset[id] = true
		}
	}

	counts := make(map[int]int)
	for _, a := range e.articles {
		if subset != nil && !subset[a.PMID] {
			continue
		}
		if a.Year >= analyticsYearMin {
			counts[a.Year]++
		}
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]types.YearCount, len(years))
	for i, y := range years {
		out[i] = types.YearCount{Year: y, Count: counts[y]}
	}
	return out
}

// CoauthorNetwork builds the undirected co-authorship graph over the given
// document subset (nil means the whole corpus): every pair of co-authors on
// a shared document gets an edge, weighted by the number of shared
// documents. It returns the graph and per-author degree and betweenness
// metrics in node insertion order.
func (e *Engine) CoauthorNetwork(ids []string) (*Graph, []types.AuthorMetric) {
	var subset idSet
	if ids != nil {
		subset = make(idSet, len(ids))
		for _, id := range ids {
			subset[id] = true
		}
	}

	g := NewGraph()
	for _, a := range e.articles {
		if subset != nil && !subset[a.PMID] {
			continue
		}
		for i, a1 := range a.Authors {
			for _, a2 := range a.Authors[i+1:] {
				g.AddEdge(a1, a2)
			}
		}
	}

	bet := g.Betweenness()
	metrics := make([]types.AuthorMetric, g.NodeCount())
	for i, name := range g.Nodes() {
		metrics[i] = types.AuthorMetric{
			Author:      name,
			Degree:      g.Degree(name),
			Betweenness: bet[i],
		}
	}
	return g, metrics
}
