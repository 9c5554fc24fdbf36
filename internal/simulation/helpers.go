package simulation

import (
	"github.com/neurogrid/emergence/internal/models"
)

// At builds a single scripted move.
func At(player string, x, y int, typ models.NeuronType, power float64) ScriptedMove {
	return ScriptedMove{
		Player: player,
		Move:   models.Move{X: x, Y: y, Type: string(typ), ProcessingPower: power},
	}
}

// Row scripts n placements of the given type along row y, starting at
// (x0, y) and walking right. Power is left at the default.
func Row(player string, typ models.NeuronType, y, x0, n int) []ScriptedMove {
	moves := make([]ScriptedMove, n)
	for i := range moves {
		moves[i] = ScriptedMove{
			Player: player,
			Move:   models.Move{X: x0 + i, Y: y, Type: string(typ)},
		}
	}
	return moves
}

// Diagonal scripts n placements of the given type along the main
// diagonal starting at (start, start). Diagonal neighbors sit sqrt(2)
// apart, so consecutive placements stay within wiring range.
func Diagonal(player string, typ models.NeuronType, start, n int) []ScriptedMove {
	moves := make([]ScriptedMove, n)
	for i := range moves {
		moves[i] = ScriptedMove{
			Player: player,
			Move:   models.Move{X: start + i, Y: start + i, Type: string(typ)},
		}
	}
	return moves
}

// Concat joins move scripts into one.
func Concat(scripts ...[]ScriptedMove) []ScriptedMove {
	var out []ScriptedMove
	for _, s := range scripts {
		out = append(out, s...)
	}
	return out
}
