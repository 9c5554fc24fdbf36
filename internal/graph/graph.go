// Package graph provides the undirected connection graph the engine
// builds between neurons, along with the structural measures pattern
// detection relies on: simple cycle enumeration, betweenness
// centrality, and clustering coefficients.
//
// Node and neighbor order is preserved as inserted, and every
// algorithm iterates ids in ascending order, so results are
// deterministic for a given construction sequence.
package graph

import "slices"

// Undirected is an adjacency-list graph over integer node ids.
type Undirected struct {
	nodes []int
	index map[int]int
	adj   map[int][]int
	edges int
}

// New returns an empty graph.
func New() *Undirected {
	return &Undirected{
		index: make(map[int]int),
		adj:   make(map[int][]int),
	}
}

// AddNode inserts id as an isolated node. Adding an existing node is a
// no-op.
func (g *Undirected) AddNode(id int) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, id)
}

// AddEdge connects a and b, inserting either node if missing.
// Self-loops and duplicate edges are ignored.
func (g *Undirected) AddEdge(a, b int) {
	if a == b || g.HasEdge(a, b) {
		return
	}
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	g.edges++
}

// HasNode reports whether id is present.
func (g *Undirected) HasNode(id int) bool {
	_, ok := g.index[id]
	return ok
}

// HasEdge reports whether a and b are directly connected.
func (g *Undirected) HasEdge(a, b int) bool {
	return slices.Contains(g.adj[a], b)
}

// Nodes returns node ids in insertion order.
func (g *Undirected) Nodes() []int {
	return slices.Clone(g.nodes)
}

// Neighbors returns the nodes adjacent to id, in the order their edges
// were added.
func (g *Undirected) Neighbors(id int) []int {
	return slices.Clone(g.adj[id])
}

// Degree returns the number of edges incident to id.
func (g *Undirected) Degree(id int) int {
	return len(g.adj[id])
}

// NodeCount returns the number of nodes.
func (g *Undirected) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Undirected) EdgeCount() int {
	return g.edges
}

func (g *Undirected) sortedIDs() []int {
	ids := slices.Clone(g.nodes)
	slices.Sort(ids)
	return ids
}

func (g *Undirected) sortedNeighbors(id int) []int {
	nbrs := slices.Clone(g.adj[id])
	slices.Sort(nbrs)
	return nbrs
}
