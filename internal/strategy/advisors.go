package strategy

import (
	"math"

	"github.com/neurogrid/emergence/internal/grid"
	"github.com/neurogrid/emergence/internal/models"
)

// Cells are scanned column-major ((0,0), (0,1), ..) everywhere, so
// equal-scoring candidates always resolve to the same cell.

// LoopBuilder closes cycles: it looks for an empty cell whose
// in-radius neighborhood already contains connected pairs, so placing
// there triangulates them.
type LoopBuilder struct {
	cfg grid.Config
}

func (LoopBuilder) Name() string { return "build_loops" }

func (a LoopBuilder) Propose(snap models.StateSnapshot) (models.Move, bool) {
	v := viewOf(snap)
	bestPairs := 0
	var best models.Move
	for x := 0; x < v.size; x++ {
		for y := 0; y < v.size; y++ {
			if !v.empty(x, y) {
				continue
			}
			nbrs := v.inRadius(x, y, a.cfg.ConnectRadius)
			pairs := 0
			for i := 0; i < len(nbrs); i++ {
				for j := i + 1; j < len(nbrs); j++ {
					if v.connected(nbrs[i], nbrs[j]) {
						pairs++
					}
				}
			}
			if pairs > bestPairs {
				bestPairs = pairs
				best = models.Move{X: x, Y: y, Type: string(models.NeuronProcessor), ProcessingPower: 5}
			}
		}
	}
	return best, bestPairs > 0
}

// HubBuilder maximizes immediate connectivity: the empty cell with the
// most neurons in wiring range.
type HubBuilder struct {
	cfg grid.Config
}

func (HubBuilder) Name() string { return "build_hierarchy" }

func (a HubBuilder) Propose(snap models.StateSnapshot) (models.Move, bool) {
	v := viewOf(snap)
	bestCount := 1 // a hub needs at least two candidate links
	var best models.Move
	var found bool
	for x := 0; x < v.size; x++ {
		for y := 0; y < v.size; y++ {
			if !v.empty(x, y) {
				continue
			}
			count := len(v.inRadius(x, y, a.cfg.ConnectRadius))
			if count > bestCount {
				bestCount = count
				best = models.Move{X: x, Y: y, Type: string(models.NeuronConnector), ProcessingPower: 7}
				found = true
			}
		}
	}
	return best, found
}

// OscillatorPlacer injects rhythm next to the most active neuron.
type OscillatorPlacer struct {
	cfg grid.Config
}

func (OscillatorPlacer) Name() string { return "create_oscillators" }

func (a OscillatorPlacer) Propose(snap models.StateSnapshot) (models.Move, bool) {
	v := viewOf(snap)
	if len(v.neurons) == 0 {
		return models.Move{}, false
	}

	target := 0
	for i, n := range v.neurons {
		if math.Abs(n.Activation) > math.Abs(v.neurons[target].Activation) {
			target = i
		}
	}
	tx, ty := v.neurons[target].X, v.neurons[target].Y

	bestDist := math.Inf(1)
	var best models.Move
	for x := 0; x < v.size; x++ {
		for y := 0; y < v.size; y++ {
			if !v.empty(x, y) {
				continue
			}
			d := cellDist(x, y, tx, ty)
			if d <= a.cfg.ConnectRadius && d < bestDist {
				bestDist = d
				best = models.Move{X: x, Y: y, Type: string(models.NeuronOscillator), ProcessingPower: 5}
			}
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// LongRangeConnector bridges: it picks the empty cell whose in-radius
// neighborhood spans the largest distance, joining far-apart regions
// through one placement.
type LongRangeConnector struct {
	cfg grid.Config
}

func (LongRangeConnector) Name() string { return "connect_distant" }

func (a LongRangeConnector) Propose(snap models.StateSnapshot) (models.Move, bool) {
	v := viewOf(snap)
	bestSpan := 0.0
	var best models.Move
	var found bool
	for x := 0; x < v.size; x++ {
		for y := 0; y < v.size; y++ {
			if !v.empty(x, y) {
				continue
			}
			nbrs := v.inRadius(x, y, a.cfg.ConnectRadius)
			if len(nbrs) < 2 {
				continue
			}
			span := 0.0
			for i := 0; i < len(nbrs); i++ {
				for j := i + 1; j < len(nbrs); j++ {
					ni, nj := v.neurons[nbrs[i]], v.neurons[nbrs[j]]
					span = math.Max(span, cellDist(ni.X, ni.Y, nj.X, nj.Y))
				}
			}
			if span > bestSpan {
				bestSpan = span
				best = models.Move{X: x, Y: y, Type: string(models.NeuronConnector), ProcessingPower: 7}
				found = true
			}
		}
	}
	return best, found
}

// GapFiller places at the cell nearest the network's centroid, pulling
// the board toward one integrated cluster. On an empty board it opens
// at the center with a strong processor.
type GapFiller struct {
	cfg grid.Config
}

func (GapFiller) Name() string { return "fill_gaps" }

func (a GapFiller) Propose(snap models.StateSnapshot) (models.Move, bool) {
	v := viewOf(snap)

	cx := float64(v.size) / 2
	cy := float64(v.size) / 2
	if len(v.neurons) > 0 {
		cx, cy = 0, 0
		for _, n := range v.neurons {
			cx += float64(n.X)
			cy += float64(n.Y)
		}
		cx /= float64(len(v.neurons))
		cy /= float64(len(v.neurons))
	} else if center := v.size / 2; v.empty(center, center) {
		return models.Move{X: center, Y: center, Type: string(models.NeuronProcessor), ProcessingPower: 7}, true
	}

	bestDist := math.Inf(1)
	var best models.Move
	for x := 0; x < v.size; x++ {
		for y := 0; y < v.size; y++ {
			if !v.empty(x, y) {
				continue
			}
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if d < bestDist {
				bestDist = d
				best = models.Move{X: x, Y: y, Type: string(models.NeuronProcessor), ProcessingPower: 7}
			}
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
