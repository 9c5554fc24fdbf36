package graph

import "slices"

// CycleLimits bounds the simple cycle search. Dense grids can hold an
// exponential number of cycles, so enumeration stops at MaxLength
// nodes per cycle and gives up entirely once Budget node expansions
// have been spent.
type CycleLimits struct {
	MaxLength int
	Budget    int
}

// DefaultCycleLimits returns the bounds used by the engine.
func DefaultCycleLimits() CycleLimits {
	return CycleLimits{MaxLength: 8, Budget: 10000}
}

// SimpleCycles enumerates the unique simple cycles of length 3 up to
// limits.MaxLength. Each cycle appears exactly once, rooted at its
// smallest node id with the smaller neighbor of the root second, so
// the two traversal directions collapse into one.
//
// complete is false when the expansion budget ran out before the
// search space was covered; the cycles found so far are still
// returned.
func (g *Undirected) SimpleCycles(limits CycleLimits) (cycles [][]int, complete bool) {
	if limits.MaxLength < 3 || limits.Budget <= 0 {
		return nil, limits.Budget > 0
	}

	budget := limits.Budget
	onPath := make(map[int]bool, len(g.nodes))
	path := make([]int, 0, limits.MaxLength)

	// Rooting each search at the smallest id and only descending into
	// larger ids guarantees every cycle is discovered exactly once.
	var visit func(root, v int) bool
	visit = func(root, v int) bool {
		if budget == 0 {
			return false
		}
		budget--
		path = append(path, v)
		onPath[v] = true
		ok := true
		for _, w := range g.sortedNeighbors(v) {
			if w == root {
				if len(path) >= 3 && path[1] < path[len(path)-1] {
					cycles = append(cycles, slices.Clone(path))
				}
				continue
			}
			if w < root || onPath[w] || len(path) >= limits.MaxLength {
				continue
			}
			if !visit(root, w) {
				ok = false
				break
			}
		}
		path = path[:len(path)-1]
		onPath[v] = false
		return ok
	}

	for _, root := range g.sortedIDs() {
		if !visit(root, root) {
			return cycles, false
		}
	}
	return cycles, true
}
