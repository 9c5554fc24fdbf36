// Package score folds detected patterns and graph statistics into the
// consciousness level, a scalar in [0,1]. Four bounded contributions
// sum to at most 1: network complexity (0.2), pattern diversity (0.3),
// mean pattern strength (0.3) and clustering integration (0.2).
package score

import (
	"math"

	"github.com/neurogrid/emergence/internal/graph"
	"github.com/neurogrid/emergence/internal/models"
)

const (
	complexityWeight  = 0.2
	diversityWeight   = 0.3
	strengthWeight    = 0.3
	integrationWeight = 0.2

	// minNeurons is the hard floor: smaller networks score 0.
	minNeurons = 5
	// complexityCeiling is the neuron count at which the complexity
	// term saturates.
	complexityCeiling = 50.0
)

// Compute returns the consciousness level for the given detection
// result. Below minNeurons the level is 0 unconditionally.
func Compute(patterns []models.Pattern, g *graph.Undirected, neuronCount int) float64 {
	if neuronCount < minNeurons {
		return 0
	}

	complexity := math.Min(1, float64(neuronCount)/complexityCeiling) * complexityWeight

	types := make(map[models.PatternType]bool)
	for _, p := range patterns {
		types[p.Type] = true
	}
	diversity := float64(len(types)) / models.PatternTypeCount * diversityWeight

	var strength float64
	if len(patterns) > 0 {
		var sum float64
		for _, p := range patterns {
			sum += p.Strength
		}
		strength = sum / float64(len(patterns)) * strengthWeight
	}

	var integration float64
	if neuronCount > 1 {
		integration = g.AverageClustering() * integrationWeight
	}

	return complexity + diversity + strength + integration
}
