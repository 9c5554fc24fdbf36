// Package game owns the turn controller: player registration, move
// validation, the place/settle/detect/score cycle, and terminal state
// (win or draw). A Session is single-threaded by contract; callers
// that share one across goroutines must serialize turns themselves
// (the host package does exactly that).
package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/neurogrid/emergence/internal/dynamics"
	"github.com/neurogrid/emergence/internal/grid"
	"github.com/neurogrid/emergence/internal/models"
	"github.com/neurogrid/emergence/internal/pattern"
	"github.com/neurogrid/emergence/internal/score"
)

var (
	ErrPlayerExists  = errors.New("player already registered")
	ErrUnknownPlayer = errors.New("unknown player")
)

// Config assembles the engine tunables for one session.
type Config struct {
	Grid    grid.Config
	Pattern pattern.Config
	// SettleSteps is the number of activation ticks run after each
	// placement before patterns are detected.
	SettleSteps int
	// WinThreshold is the consciousness level that ends the game.
	WinThreshold float64
	// MaxTurns caps the turn counter; when reached the session is
	// drawn. Zero disables the cap.
	MaxTurns int
}

// DefaultConfig returns the standard game parameters.
func DefaultConfig() Config {
	return Config{
		Grid:         grid.DefaultConfig(),
		Pattern:      pattern.DefaultConfig(),
		SettleSteps:  5,
		WinThreshold: 0.8,
		MaxTurns:     100,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SettleSteps <= 0 {
		c.SettleSteps = def.SettleSteps
	}
	if c.WinThreshold <= 0 {
		c.WinThreshold = def.WinThreshold
	}
	if c.MaxTurns < 0 {
		c.MaxTurns = 0
	}
	return c
}

// Session is one running game.
type Session struct {
	cfg      Config
	field    *grid.Field
	detector *pattern.Detector
	players  map[string]*models.PlayerState
	turn     int
	winner   string
	drawn    bool
	level    float64
	patterns []models.Pattern
	logger   *slog.Logger
}

// New starts an empty session. A nil logger disables logging.
func New(cfg Config, logger *slog.Logger) *Session {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cfg:      cfg,
		field:    grid.New(cfg.Grid),
		detector: pattern.New(cfg.Pattern),
		players:  make(map[string]*models.PlayerState),
		logger:   logger,
	}
}

// AddPlayer registers a player before their first move.
func (s *Session) AddPlayer(id string, kind models.PlayerKind) error {
	if id == "" {
		return fmt.Errorf("player id must not be empty")
	}
	if !kind.IsValid() {
		return fmt.Errorf("unknown player kind %q", kind)
	}
	if _, ok := s.players[id]; ok {
		return fmt.Errorf("%w: %s", ErrPlayerExists, id)
	}
	s.players[id] = &models.PlayerState{Kind: kind}
	s.logger.Debug("player registered", "player", id, "kind", kind)
	return nil
}

// PlayTurn validates and applies one move. Rejections mutate nothing;
// a finished session answers game_over without touching any state.
func (s *Session) PlayTurn(player string, move models.Move) models.TurnResult {
	if s.winner != "" {
		return models.TurnResult{Status: models.TurnGameOver, Winner: s.winner}
	}
	if s.drawn {
		return models.TurnResult{Status: models.TurnGameOver, Reason: models.ReasonMaxTurnsReached}
	}

	state, ok := s.players[player]
	if !ok {
		return s.reject(player, move, models.ReasonUnknownPlayer)
	}
	typ, err := models.ParseNeuronType(move.Type)
	if err != nil {
		return s.reject(player, move, models.ReasonUnknownNeuronType)
	}
	if move.X < 0 || move.X >= s.field.Size() || move.Y < 0 || move.Y >= s.field.Size() {
		return s.reject(player, move, models.ReasonOutOfBounds)
	}
	power := move.ProcessingPower
	if power == 0 {
		power = models.DefaultProcessingPower
	}
	if power < 1 || power > 10 {
		return s.reject(player, move, models.ReasonPowerOutOfRange)
	}

	if _, err := s.field.Place(move.X, move.Y, typ, power, player); err != nil {
		switch {
		case errors.Is(err, grid.ErrOutOfBounds):
			return s.reject(player, move, models.ReasonOutOfBounds)
		default:
			return s.reject(player, move, models.ReasonPositionOccupied)
		}
	}
	state.NeuronsPlaced++

	for i := 0; i < s.cfg.SettleSteps; i++ {
		dynamics.Step(s.field, s.level)
	}
	s.patterns = s.detector.Detect(s.field.Network(), s.field.Activations())
	s.level = score.Compute(s.patterns, s.field.Network(), s.field.NeuronCount())

	if s.level > state.PeakConsciousness {
		state.PeakConsciousness = s.level
	}

	if s.level >= s.cfg.WinThreshold {
		s.winner = player
		state.ConsciousnessAchieved = true
		s.logger.Info("consciousness achieved",
			"player", player, "level", s.level, "turn", s.turn)
		return models.TurnResult{
			Status:             models.TurnWin,
			ConsciousnessLevel: s.level,
			Patterns:           s.patterns,
			Turn:               s.turn,
			Winner:             player,
		}
	}

	s.turn++
	if s.cfg.MaxTurns > 0 && s.turn >= s.cfg.MaxTurns {
		s.drawn = true
		s.logger.Info("turn limit reached", "turns", s.turn)
	}
	s.logger.Debug("turn played",
		"player", player, "turn", s.turn,
		"level", s.level, "patterns", len(s.patterns))
	return models.TurnResult{
		Status:             models.TurnContinue,
		ConsciousnessLevel: s.level,
		Patterns:           s.patterns,
		Turn:               s.turn,
	}
}

func (s *Session) reject(player string, move models.Move, reason string) models.TurnResult {
	s.logger.Debug("move rejected",
		"player", player, "x", move.X, "y", move.Y, "type", move.Type, "reason", reason)
	return models.TurnResult{Status: models.TurnInvalidMove, Reason: reason}
}

// Turn returns the completed turn count.
func (s *Session) Turn() int {
	return s.turn
}

// Winner returns the winning player id, or "" while the game is open
// or drawn.
func (s *Session) Winner() string {
	return s.winner
}

// Drawn reports whether the session ended at the turn limit.
func (s *Session) Drawn() bool {
	return s.drawn
}

// Level returns the consciousness level cached by the last scoring.
func (s *Session) Level() float64 {
	return s.level
}

// Patterns returns the pattern list cached by the last scoring.
func (s *Session) Patterns() []models.Pattern {
	out := make([]models.Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Players returns a copy of every player's state.
func (s *Session) Players() map[string]models.PlayerState {
	out := make(map[string]models.PlayerState, len(s.players))
	for id, p := range s.players {
		out[id] = *p
	}
	return out
}

// NeuronCount returns the number of placed neurons.
func (s *Session) NeuronCount() int {
	return s.field.NeuronCount()
}
