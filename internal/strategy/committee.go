package strategy

import (
	"github.com/neurogrid/emergence/internal/grid"
	"github.com/neurogrid/emergence/internal/models"
)

// Committee aggregates advisor proposals into one move.
type Committee struct {
	cfg      grid.Config
	advisors []Advisor
}

// NewCommittee builds a committee over the given wiring rules. With no
// explicit advisors it seats the five standard specialists in their
// canonical order; that order breaks scoring ties.
func NewCommittee(cfg grid.Config, advisors ...Advisor) *Committee {
	if cfg.Size <= 0 || cfg.ConnectRadius <= 0 || cfg.MaxAutoConnections <= 0 {
		def := grid.DefaultConfig()
		if cfg.Size <= 0 {
			cfg.Size = def.Size
		}
		if cfg.ConnectRadius <= 0 {
			cfg.ConnectRadius = def.ConnectRadius
		}
		if cfg.MaxAutoConnections <= 0 {
			cfg.MaxAutoConnections = def.MaxAutoConnections
		}
	}
	if len(advisors) == 0 {
		advisors = []Advisor{
			LoopBuilder{cfg: cfg},
			HubBuilder{cfg: cfg},
			OscillatorPlacer{cfg: cfg},
			LongRangeConnector{cfg: cfg},
			GapFiller{cfg: cfg},
		}
	}
	return &Committee{cfg: cfg, advisors: advisors}
}

// Decide collects every advisor's proposal, drops invalid ones, and
// returns the proposal with the highest predicted connection gain,
// along with the winning advisor's name. Ties go to the earliest
// advisor. ok is false when no advisor has a playable move.
func (c *Committee) Decide(snap models.StateSnapshot) (models.Move, string, bool) {
	v := viewOf(snap)

	var (
		best     models.Move
		bestName string
		bestGain = -1
	)
	for _, adv := range c.advisors {
		move, ok := adv.Propose(snap)
		if !ok || !c.playable(v, move) {
			continue
		}
		gain := len(v.inRadius(move.X, move.Y, c.cfg.ConnectRadius))
		if gain > c.cfg.MaxAutoConnections {
			gain = c.cfg.MaxAutoConnections
		}
		if gain > bestGain {
			bestGain = gain
			best = move
			bestName = adv.Name()
		}
	}
	return best, bestName, bestGain >= 0
}

func (c *Committee) playable(v *boardView, move models.Move) bool {
	if !v.empty(move.X, move.Y) {
		return false
	}
	if _, err := models.ParseNeuronType(move.Type); err != nil {
		return false
	}
	power := move.ProcessingPower
	if power == 0 {
		power = models.DefaultProcessingPower
	}
	return power >= 1 && power <= 10
}
