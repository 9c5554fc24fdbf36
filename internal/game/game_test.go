package game

import (
	"errors"
	"math"
	"testing"

	"github.com/neurogrid/emergence/internal/models"
)

const tol = 1e-9

func newSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s := New(cfg, nil)
	if err := s.AddPlayer("alpha", models.PlayerSingle); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	return s
}

func playRow(t *testing.T, s *Session, n int) models.TurnResult {
	t.Helper()
	var last models.TurnResult
	for i := 0; i < n; i++ {
		last = s.PlayTurn("alpha", models.Move{X: i, Y: 0, Type: "processor", ProcessingPower: 5})
		if last.Status != models.TurnContinue && last.Status != models.TurnWin {
			t.Fatalf("placement %d: %+v", i, last)
		}
	}
	return last
}

func TestAddPlayer(t *testing.T) {
	s := New(DefaultConfig(), nil)

	if err := s.AddPlayer("alpha", models.PlayerSingle); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if err := s.AddPlayer("alpha", models.PlayerCollective); !errors.Is(err, ErrPlayerExists) {
		t.Errorf("duplicate AddPlayer error = %v, want ErrPlayerExists", err)
	}
	if err := s.AddPlayer("", models.PlayerSingle); err == nil {
		t.Error("empty id must be rejected")
	}
	if err := s.AddPlayer("beta", "committee"); err == nil {
		t.Error("unknown kind must be rejected")
	}
}

func TestPlayTurnUnknownPlayer(t *testing.T) {
	s := New(DefaultConfig(), nil)

	got := s.PlayTurn("ghost", models.Move{X: 0, Y: 0, Type: "sensor"})
	if got.Status != models.TurnInvalidMove || got.Reason != models.ReasonUnknownPlayer {
		t.Errorf("result = %+v, want invalid_move/unknown_player", got)
	}
	if s.NeuronCount() != 0 {
		t.Error("rejected move must not place a neuron")
	}
}

func TestPlayTurnValidation(t *testing.T) {
	tests := []struct {
		name   string
		move   models.Move
		reason string
	}{
		{name: "unknown type", move: models.Move{X: 0, Y: 0, Type: "quark"}, reason: models.ReasonUnknownNeuronType},
		{name: "negative x", move: models.Move{X: -1, Y: 0, Type: "sensor"}, reason: models.ReasonOutOfBounds},
		{name: "y past edge", move: models.Move{X: 0, Y: 19, Type: "sensor"}, reason: models.ReasonOutOfBounds},
		{name: "power too low", move: models.Move{X: 0, Y: 0, Type: "sensor", ProcessingPower: 0.5}, reason: models.ReasonPowerOutOfRange},
		{name: "power too high", move: models.Move{X: 0, Y: 0, Type: "sensor", ProcessingPower: 10.5}, reason: models.ReasonPowerOutOfRange},
		// Both type and bounds are wrong: the type check wins.
		{name: "type checked before bounds", move: models.Move{X: -1, Y: 0, Type: "quark"}, reason: models.ReasonUnknownNeuronType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession(t, DefaultConfig())
			got := s.PlayTurn("alpha", tt.move)
			if got.Status != models.TurnInvalidMove || got.Reason != tt.reason {
				t.Errorf("result = %+v, want invalid_move/%s", got, tt.reason)
			}
			if s.NeuronCount() != 0 || s.Turn() != 0 {
				t.Errorf("rejected move mutated state: %d neurons, turn %d", s.NeuronCount(), s.Turn())
			}
		})
	}
}

func TestPlayTurnOccupiedCell(t *testing.T) {
	s := newSession(t, DefaultConfig())
	playRow(t, s, 1)

	got := s.PlayTurn("alpha", models.Move{X: 0, Y: 0, Type: "memory"})
	if got.Status != models.TurnInvalidMove || got.Reason != models.ReasonPositionOccupied {
		t.Errorf("result = %+v, want invalid_move/position_occupied", got)
	}
	if s.NeuronCount() != 1 || s.Turn() != 1 {
		t.Errorf("rejection mutated state: %d neurons, turn %d", s.NeuronCount(), s.Turn())
	}
}

func TestPlayTurnDefaultsPower(t *testing.T) {
	s := newSession(t, DefaultConfig())

	got := s.PlayTurn("alpha", models.Move{X: 3, Y: 3, Type: "oscillator"})
	if got.Status != models.TurnContinue {
		t.Fatalf("result = %+v, want continue", got)
	}
	snap := s.Export()
	if power := snap.Neurons[0].ProcessingPower; power != models.DefaultProcessingPower {
		t.Errorf("power = %v, want default %v", power, models.DefaultProcessingPower)
	}
}

func TestSingleNeuronScoresZero(t *testing.T) {
	s := newSession(t, DefaultConfig())

	got := s.PlayTurn("alpha", models.Move{X: 9, Y: 9, Type: "processor", ProcessingPower: 5})
	if got.Status != models.TurnContinue {
		t.Fatalf("result = %+v, want continue", got)
	}
	if got.ConsciousnessLevel != 0 || s.Level() != 0 {
		t.Errorf("level = %v, want 0 below five neurons", s.Level())
	}
	if got.Turn != 1 {
		t.Errorf("turn = %d, want 1", got.Turn)
	}
}

func TestFiveProcessorClique(t *testing.T) {
	s := newSession(t, DefaultConfig())
	last := playRow(t, s, 5)

	// Five mutually connected idle processors: complexity 0.02,
	// one synchronization pattern at strength 0 (diversity 0.075),
	// full clustering 0.2.
	want := 0.1*0.2 + (1.0/4.0)*0.3 + 1.0*0.2
	if math.Abs(last.ConsciousnessLevel-want) > tol {
		t.Errorf("level = %v, want %v", last.ConsciousnessLevel, want)
	}
	if last.ConsciousnessLevel <= 0 {
		t.Error("five-neuron clique must score above zero")
	}

	groups := 0
	for _, p := range last.Patterns {
		if p.Type == models.PatternSynchronization {
			groups++
			if p.Strength != 0 {
				t.Errorf("idle sync strength = %v, want 0", p.Strength)
			}
		}
	}
	if groups != 1 {
		t.Errorf("sync groups = %d, want one after dedup", groups)
	}

	state := s.Players()["alpha"]
	if state.NeuronsPlaced != 5 {
		t.Errorf("NeuronsPlaced = %d, want 5", state.NeuronsPlaced)
	}
	if math.Abs(state.PeakConsciousness-want) > tol {
		t.Errorf("peak = %v, want %v", state.PeakConsciousness, want)
	}
}

func TestWinIsTerminalAndIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WinThreshold = 0.01
	s := newSession(t, cfg)
	if err := s.AddPlayer("beta", models.PlayerSingle); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	last := playRow(t, s, 5)
	if last.Status != models.TurnWin || last.Winner != "alpha" {
		t.Fatalf("result = %+v, want win for alpha", last)
	}
	if s.Winner() != "alpha" {
		t.Fatalf("Winner = %q, want alpha", s.Winner())
	}
	if !s.Players()["alpha"].ConsciousnessAchieved {
		t.Error("winner must be marked as having achieved consciousness")
	}

	neurons, turn := s.NeuronCount(), s.Turn()
	for _, player := range []string{"beta", "alpha"} {
		got := s.PlayTurn(player, models.Move{X: 10, Y: 10, Type: "sensor"})
		if got.Status != models.TurnGameOver || got.Winner != "alpha" {
			t.Errorf("post-win result = %+v, want game_over with winner alpha", got)
		}
	}
	if s.NeuronCount() != neurons || s.Turn() != turn || s.Winner() != "alpha" {
		t.Error("post-win moves must not mutate the session")
	}
}

func TestMaxTurnsDraw(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTurns = 3
	s := newSession(t, cfg)

	last := playRow(t, s, 3)
	if last.Status != models.TurnContinue {
		t.Fatalf("turn at the limit = %+v, want continue", last)
	}
	if !s.Drawn() {
		t.Fatal("session must be drawn once the turn counter reaches MaxTurns")
	}
	if s.Winner() != "" {
		t.Fatalf("drawn session has winner %q", s.Winner())
	}

	got := s.PlayTurn("alpha", models.Move{X: 9, Y: 9, Type: "sensor"})
	if got.Status != models.TurnGameOver || got.Reason != models.ReasonMaxTurnsReached || got.Winner != "" {
		t.Errorf("post-draw result = %+v, want game_over/max_turns_reached without winner", got)
	}
	if s.NeuronCount() != 3 {
		t.Errorf("post-draw move placed a neuron: count %d", s.NeuronCount())
	}
}

func TestMaxTurnsZeroDisablesLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTurns = 0
	s := newSession(t, cfg)

	for i := 0; i < 12; i++ {
		got := s.PlayTurn("alpha", models.Move{X: i, Y: i, Type: "memory"})
		if got.Status != models.TurnContinue {
			t.Fatalf("turn %d = %+v, want continue", i, got)
		}
	}
	if s.Drawn() {
		t.Error("unlimited session must never draw")
	}
}
