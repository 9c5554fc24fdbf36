package simulation

import (
	"testing"

	"github.com/neurogrid/emergence/internal/models"
)

// AssertStatus asserts the status of the turn at the given index.
func AssertStatus(t *testing.T, result SimulationResult, index int, want models.TurnStatus) {
	t.Helper()
	got := result.Turns[index].Result.Status
	if got != want {
		t.Errorf("AssertStatus: turn %d status = %q, want %q\n%s", index, got, want, FormatTurnDebug(result.Turns[index]))
	}
}

// AssertReason asserts the rejection reason of the turn at the given index.
func AssertReason(t *testing.T, result SimulationResult, index int, want string) {
	t.Helper()
	got := result.Turns[index].Result.Reason
	if got != want {
		t.Errorf("AssertReason: turn %d reason = %q, want %q", index, got, want)
	}
}

// AssertLevelAbove asserts that the turn's consciousness level exceeds min.
func AssertLevelAbove(t *testing.T, result SimulationResult, index int, min float64) {
	t.Helper()
	got := result.Turns[index].Result.ConsciousnessLevel
	if got <= min {
		t.Errorf("AssertLevelAbove: turn %d level = %.6f, want > %.6f", index, got, min)
	}
}

// AssertLevelWithin asserts that the turn's consciousness level falls in
// [min, max].
func AssertLevelWithin(t *testing.T, result SimulationResult, index int, min, max float64) {
	t.Helper()
	got := result.Turns[index].Result.ConsciousnessLevel
	if got < min || got > max {
		t.Errorf("AssertLevelWithin: turn %d level = %.6f, want in [%.4f, %.4f]", index, got, min, max)
	}
}

// AssertLevelsInUnitRange asserts that every applied turn reported a
// level inside [0, 1].
func AssertLevelsInUnitRange(t *testing.T, result SimulationResult) {
	t.Helper()
	for _, tr := range result.Turns {
		if tr.Result.Status != models.TurnContinue && tr.Result.Status != models.TurnWin {
			continue
		}
		lvl := tr.Result.ConsciousnessLevel
		if lvl < 0 || lvl > 1 {
			t.Errorf("AssertLevelsInUnitRange: turn %d level = %.6f outside [0, 1]", tr.Index, lvl)
		}
	}
}

// AssertWinner asserts the session's winner.
func AssertWinner(t *testing.T, result SimulationResult, want string) {
	t.Helper()
	got := result.Session.Winner()
	if got != want {
		t.Errorf("AssertWinner: winner = %q, want %q", got, want)
	}
}

// AssertNoWinner asserts the session finished (or stands) without a winner.
func AssertNoWinner(t *testing.T, result SimulationResult) {
	t.Helper()
	if got := result.Session.Winner(); got != "" {
		t.Errorf("AssertNoWinner: unexpected winner %q", got)
	}
}

// AssertPatternDetected asserts the turn at index reported at least one
// pattern of the given type.
func AssertPatternDetected(t *testing.T, result SimulationResult, index int, typ models.PatternType) {
	t.Helper()
	for _, p := range result.Turns[index].Result.Patterns {
		if p.Type == typ {
			return
		}
	}
	t.Errorf("AssertPatternDetected: turn %d has no %s pattern\n%s", index, typ, FormatTurnDebug(result.Turns[index]))
}

// AssertNoPatternDetected asserts the turn at index reported no pattern
// of the given type.
func AssertNoPatternDetected(t *testing.T, result SimulationResult, index int, typ models.PatternType) {
	t.Helper()
	for _, p := range result.Turns[index].Result.Patterns {
		if p.Type == typ {
			t.Errorf("AssertNoPatternDetected: turn %d unexpectedly has a %s pattern", index, typ)
			return
		}
	}
}

// AssertNeuronCount asserts the final number of placed neurons.
func AssertNeuronCount(t *testing.T, result SimulationResult, want int) {
	t.Helper()
	if got := result.Session.NeuronCount(); got != want {
		t.Errorf("AssertNeuronCount: count = %d, want %d", got, want)
	}
}

// CountStatus counts turns that ended with the given status.
func CountStatus(result SimulationResult, status models.TurnStatus) int {
	count := 0
	for _, tr := range result.Turns {
		if tr.Result.Status == status {
			count++
		}
	}
	return count
}
