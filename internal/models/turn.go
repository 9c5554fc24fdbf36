package models

// DefaultProcessingPower is applied when a move omits processing_power
// (or sends the zero value, which JSON cannot distinguish from absent).
const DefaultProcessingPower = 5.0

// Move is the input a player submits on their turn.
type Move struct {
	X    int    `json:"x" yaml:"x"`
	Y    int    `json:"y" yaml:"y"`
	Type string `json:"type" yaml:"type"`
	// ProcessingPower must fall in [1, 10]; zero or omitted defaults to 5.0.
	ProcessingPower float64 `json:"processing_power,omitempty" yaml:"processing_power,omitempty"`
}

// TurnStatus is the outcome class of a single turn.
type TurnStatus string

const (
	// TurnContinue means the move was applied and the game goes on.
	TurnContinue TurnStatus = "continue"
	// TurnWin means the move pushed the consciousness level over the win threshold.
	TurnWin TurnStatus = "win"
	// TurnInvalidMove means the move was rejected and no state changed.
	TurnInvalidMove TurnStatus = "invalid_move"
	// TurnGameOver means the session already ended; no state changed.
	TurnGameOver TurnStatus = "game_over"
)

// IsValid reports whether the turn status is supported.
func (s TurnStatus) IsValid() bool {
	switch s {
	case TurnContinue, TurnWin, TurnInvalidMove, TurnGameOver:
		return true
	default:
		return false
	}
}

// Rejection reasons reported on invalid_move and game_over results.
const (
	ReasonPositionOccupied  = "position_occupied"
	ReasonOutOfBounds       = "out_of_bounds"
	ReasonUnknownNeuronType = "unknown_neuron_type"
	ReasonPowerOutOfRange   = "power_out_of_range"
	ReasonUnknownPlayer     = "unknown_player"
	ReasonMaxTurnsReached   = "max_turns_reached"
)

// TurnResult is the controller's answer to a move. Optional fields are
// populated per status: continue carries level, patterns and turn; win
// carries winner, level and patterns; invalid_move carries reason;
// game_over carries the winner (empty on a draw) and, for draws, a reason.
type TurnResult struct {
	Status             TurnStatus `json:"status"`
	ConsciousnessLevel float64    `json:"consciousness_level,omitempty"`
	Patterns           []Pattern  `json:"patterns,omitempty"`
	Turn               int        `json:"turn,omitempty"`
	Winner             string     `json:"winner,omitempty"`
	Reason             string     `json:"reason,omitempty"`
}
