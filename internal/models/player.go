package models

// PlayerKind distinguishes a single model from a collective of specialists.
type PlayerKind string

const (
	PlayerSingle     PlayerKind = "single"
	PlayerCollective PlayerKind = "collective"
)

// IsValid reports whether the player kind is supported.
func (k PlayerKind) IsValid() bool {
	return k == PlayerSingle || k == PlayerCollective
}

// PlayerState tracks one player's progress within a session.
type PlayerState struct {
	Kind                  PlayerKind `json:"kind"`
	NeuronsPlaced         int        `json:"neurons_placed"`
	PeakConsciousness     float64    `json:"peak_consciousness"`
	ConsciousnessAchieved bool       `json:"consciousness_achieved"`
}
