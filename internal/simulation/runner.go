package simulation

import (
	"fmt"
	"testing"

	"github.com/neurogrid/emergence/internal/game"
	"github.com/neurogrid/emergence/internal/models"
)

// Runner orchestrates scripted games against a real session.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) SimulationResult {
	r.t.Helper()

	cfg := game.DefaultConfig()
	if scenario.Config != nil {
		cfg = *scenario.Config
	}
	session := game.New(cfg, nil)

	players := scenario.Players
	if len(players) == 0 {
		players = []PlayerSpec{{ID: "solo", Kind: models.PlayerSingle}}
	}
	for _, p := range players {
		if err := session.AddPlayer(p.ID, p.Kind); err != nil {
			r.t.Fatalf("%s: AddPlayer(%s): %v", scenario.Name, p.ID, err)
		}
	}

	turns := make([]TurnRecord, len(scenario.Moves))
	for i, sm := range scenario.Moves {
		if scenario.BeforeTurn != nil {
			scenario.BeforeTurn(i, session)
		}
		player := sm.Player
		if player == "" {
			player = players[0].ID
		}
		result := session.PlayTurn(player, sm.Move)
		turns[i] = TurnRecord{
			Index:  i,
			Player: player,
			Move:   sm.Move,
			Result: result,
		}
	}

	return SimulationResult{
		Turns:   turns,
		Session: session,
	}
}

// FormatTurnDebug returns a debug string for a turn record.
func FormatTurnDebug(tr TurnRecord) string {
	s := fmt.Sprintf("Turn %d: %s places %s at (%d,%d) -> %s",
		tr.Index, tr.Player, tr.Move.Type, tr.Move.X, tr.Move.Y, tr.Result.Status)
	if tr.Result.Reason != "" {
		s += fmt.Sprintf(" (%s)", tr.Result.Reason)
	}
	if tr.Result.Status == models.TurnContinue || tr.Result.Status == models.TurnWin {
		s += fmt.Sprintf(" level=%.4f patterns=%d", tr.Result.ConsciousnessLevel, len(tr.Result.Patterns))
	}
	return s
}
