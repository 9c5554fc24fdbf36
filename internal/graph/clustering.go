package graph

// LocalClustering returns the clustering coefficient of id: the
// fraction of pairs of its neighbors that are themselves connected.
// Nodes with fewer than two neighbors have coefficient 0.
func (g *Undirected) LocalClustering(id int) float64 {
	nbrs := g.adj[id]
	k := len(nbrs)
	if k < 2 {
		return 0
	}
	links := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if g.HasEdge(nbrs[i], nbrs[j]) {
				links++
			}
		}
	}
	return 2 * float64(links) / float64(k*(k-1))
}

// AverageClustering returns the mean local clustering coefficient
// over all nodes, or 0 for an empty graph.
func (g *Undirected) AverageClustering() float64 {
	if len(g.nodes) == 0 {
		return 0
	}
	var sum float64
	for _, id := range g.nodes {
		sum += g.LocalClustering(id)
	}
	return sum / float64(len(g.nodes))
}
