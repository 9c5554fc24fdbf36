// Package strategy implements deterministic move advisors for
// collective play. Each advisor specializes in one emergence motif and
// proposes a move from an exported state snapshot; a committee scores
// the proposals by predicted connection gain and picks the best.
// Advisors consume only the exported snapshot contract, never live
// engine state.
package strategy

import (
	"math"

	"github.com/neurogrid/emergence/internal/models"
)

// Advisor proposes a move for the current board, or reports that it
// has nothing useful to suggest.
type Advisor interface {
	Name() string
	Propose(snap models.StateSnapshot) (models.Move, bool)
}

// boardView indexes a snapshot for the spatial queries advisors share.
type boardView struct {
	size     int
	occupied [][]bool
	neurons  []models.NeuronSnapshot
}

func viewOf(snap models.StateSnapshot) *boardView {
	size := snap.GridSize
	occ := snap.Occupancy
	if len(occ) != size {
		// Hand-built snapshots may omit the redundant matrix.
		occ = make([][]bool, size)
		for x := range occ {
			occ[x] = make([]bool, size)
		}
		for _, n := range snap.Neurons {
			if n.X >= 0 && n.X < size && n.Y >= 0 && n.Y < size {
				occ[n.X][n.Y] = true
			}
		}
	}
	return &boardView{size: size, occupied: occ, neurons: snap.Neurons}
}

func (v *boardView) empty(x, y int) bool {
	return x >= 0 && x < v.size && y >= 0 && y < v.size && !v.occupied[x][y]
}

// inRadius returns the indexes (equal to neuron ids) of all neurons
// within radius of (x, y), in id order.
func (v *boardView) inRadius(x, y int, radius float64) []int {
	var out []int
	for i, n := range v.neurons {
		if cellDist(x, y, n.X, n.Y) <= radius {
			out = append(out, i)
		}
	}
	return out
}

func (v *boardView) connected(a, b int) bool {
	for _, peer := range v.neurons[a].Connections {
		if peer == b {
			return true
		}
	}
	return false
}

func cellDist(x1, y1, x2, y2 int) float64 {
	return math.Hypot(float64(x1-x2), float64(y1-y2))
}
