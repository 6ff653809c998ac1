// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import "sort"

// Graph is an undirected weighted graph of author display names. Nodes keep
// insertion order so metric output is deterministic.
type Graph struct {
	nodes []string
	index map[string]int
	adj   []map[int]int
}

// Edge is one undirected edge with its shared-document weight.
type Edge struct {
	From   string
	To     string
	Weight int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

func (g *Graph) node(name string) int {
	if i, ok := g.index[name]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[name] = i
	g.nodes = append(g.nodes, name)
	g.adj = append(g.adj, make(map[int]int))
	return i
}

// AddEdge adds a co-authorship between a and b, incrementing the edge
// weight if it already exists. Self-edges are ignored.
func (g *Graph) AddEdge(a, b string) {
	if a == b {
		return
	}
	i, j := g.node(a), g.node(b)
	g.adj[i][j]++
	g.adj[j][i]++
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Nodes returns the node names in insertion order.
func (g *Graph) Nodes() []string { return g.nodes }

// Degree returns the number of distinct co-authors of name, or 0 for an
// unknown author.
func (g *Graph) Degree(name string) int {
	i, ok := g.index[name]
	if !ok {
		return 0
	}
	return len(g.adj[i])
}

// Weight returns the edge weight between a and b, or 0 when no edge exists.
func (g *Graph) Weight(a, b string) int {
	i, ok := g.index[a]
	if !ok {
		return 0
	}
	j, ok := g.index[b]
	if !ok {
		return 0
	}
	return g.adj[i][j]
}

// Edges returns each undirected edge once, ordered by node insertion order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for i := range g.nodes {
		nbrs := g.neighbors(i)
		for _, j := range nbrs {
			if j > i {
				edges = append(edges, Edge{From: g.nodes[i], To: g.nodes[j], Weight: g.adj[i][j]})
			}
		}
	}
	return edges
}

// neighbors returns the sorted neighbor indices of i. Sorting keeps float
// accumulation order in Betweenness deterministic.
func (g *Graph) neighbors(i int) []int {
	nbrs := make([]int, 0, len(g.adj[i]))
	for j := range g.adj[i] {
		nbrs = append(nbrs, j)
	}
	sort.Ints(nbrs)
	return nbrs
}

// Betweenness computes normalized betweenness centrality per node via
// Brandes' algorithm over unweighted shortest paths. Values are scaled by
// 1/((n-1)(n-2)); graphs with fewer than three nodes score zero everywhere.
func (g *Graph) Betweenness() []float64 {
	n := len(g.nodes)
	cb := make([]float64, n)
	if n < 3 {
		return cb
	}

	nbrs := make([][]int, n)
	for i := range g.nodes {
		nbrs[i] = g.neighbors(i)
	}

	for s := 0; s < n; s++ {
		stack := make([]int, 0, n)
		preds := make([][]int, n)
		sigma := make([]float64, n)
		sigma[s] = 1
		dist := make([]int, n)
		for i := range dist {
			dist[i] = -1
		}
		dist[s] = 0

		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range nbrs[v] {
				if dist[w] < 0 {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					preds[w] = append(preds[w], v)
				}
			}
		}

		delta := make([]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range preds[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	// Each unordered pair is counted from both endpoints; the scale folds
	// the halving into the (n-1)(n-2)/2 pair normalization.
	scale := 1 / float64((n-1)*(n-2))
	for i := range cb {
		cb[i] *= scale
	}
	return cb
}
