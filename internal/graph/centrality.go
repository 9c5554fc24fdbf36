package graph

// Betweenness computes normalized betweenness centrality for every
// node using Brandes' algorithm over unweighted shortest paths.
// Accumulation runs from every source, so each unordered pair is
// counted twice; the 1/((n-1)(n-2)) scale folds that double count
// into the usual undirected normalization. Graphs with two or fewer
// nodes score zero everywhere.
func (g *Undirected) Betweenness() map[int]float64 {
	ids := g.sortedIDs()
	n := len(ids)

	cb := make(map[int]float64, n)
	for _, id := range ids {
		cb[id] = 0
	}
	if n <= 2 {
		return cb
	}

	for _, s := range ids {
		stack := make([]int, 0, n)
		pred := make(map[int][]int, n)
		sigma := map[int]float64{s: 1}
		dist := map[int]int{s: 0}
		queue := []int{s}

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.sortedNeighbors(v) {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		delta := make(map[int]float64, n)
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	scale := 1 / float64((n-1)*(n-2))
	for id := range cb {
		cb[id] *= scale
	}
	return cb
}
