package simulation

import (
	"github.com/neurogrid/emergence/internal/game"
	"github.com/neurogrid/emergence/internal/models"
)

// Scenario defines a complete scripted game.
type Scenario struct {
	Name    string
	Config  *game.Config // nil = game.DefaultConfig()
	Players []PlayerSpec // empty = one "solo" single player
	Moves   []ScriptedMove

	// BeforeTurn, when non-nil, is called before each scripted move
	// executes. Use this to inspect or exercise the session between
	// moves (e.g., exporting snapshots mid-game).
	BeforeTurn func(index int, s *game.Session)
}

// PlayerSpec registers one player before the game starts.
type PlayerSpec struct {
	ID   string
	Kind models.PlayerKind
}

// ScriptedMove is one turn of the script. An empty Player falls back to
// the first registered player.
type ScriptedMove struct {
	Player string
	Move   models.Move
}

// TurnRecord captures the outcome of a single scripted turn.
type TurnRecord struct {
	Index  int
	Player string
	Move   models.Move
	Result models.TurnResult
}

// SimulationResult captures all turns and the final session state.
type SimulationResult struct {
	Turns   []TurnRecord
	Session *game.Session
}

// Final returns the last turn record. It panics on an empty script;
// scenarios always play at least one move.
func (r SimulationResult) Final() TurnRecord {
	return r.Turns[len(r.Turns)-1]
}
