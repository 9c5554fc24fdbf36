package game

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/neurogrid/emergence/internal/grid"
	"github.com/neurogrid/emergence/internal/models"
	"github.com/neurogrid/emergence/internal/pattern"
)

// Export captures the complete session state. The snapshot is
// self-contained: feeding it back through Restore resumes play with
// identical behavior.
func (s *Session) Export() models.StateSnapshot {
	live := s.field.Neurons()
	neurons := make([]models.NeuronSnapshot, 0, len(live))
	for _, n := range live {
		neurons = append(neurons, models.NeuronSnapshot{
			ID:              n.ID,
			X:               n.X,
			Y:               n.Y,
			Type:            n.Type,
			ProcessingPower: n.Power,
			Activation:      n.Activation,
			MemoryState:     n.MemoryState,
			Connections:     slices.Clone(n.Connections),
			Player:          n.Owner,
		})
	}

	g := s.field.Network()
	return models.StateSnapshot{
		GridSize:           s.field.Size(),
		Occupancy:          s.field.Occupancy(),
		Neurons:            neurons,
		Players:            s.Players(),
		Turn:               s.turn,
		Winner:             s.winner,
		Drawn:              s.drawn,
		ConsciousnessLevel: s.level,
		Patterns:           s.Patterns(),
		Network: models.NetworkStats{
			NodeCount:         g.NodeCount(),
			EdgeCount:         g.EdgeCount(),
			AverageClustering: g.AverageClustering(),
		},
	}
}

// Restore rebuilds a session from a snapshot. The snapshot's grid size
// wins over cfg.Grid.Size; every structural claim in the snapshot is
// validated before any state is adopted. Cached level and patterns are
// reinstated as stored, not recomputed.
func Restore(cfg Config, snap models.StateSnapshot, logger *slog.Logger) (*Session, error) {
	cfg = cfg.withDefaults()
	if snap.GridSize <= 0 {
		return nil, fmt.Errorf("%w: grid size %d", grid.ErrInvalidSnapshot, snap.GridSize)
	}
	cfg.Grid.Size = snap.GridSize

	neurons := make([]models.Neuron, 0, len(snap.Neurons))
	for _, n := range snap.Neurons {
		neurons = append(neurons, models.Neuron{
			ID:          n.ID,
			X:           n.X,
			Y:           n.Y,
			Type:        n.Type,
			Power:       n.ProcessingPower,
			Activation:  n.Activation,
			MemoryState: n.MemoryState,
			Connections: slices.Clone(n.Connections),
			Owner:       n.Player,
		})
	}
	field, err := grid.FromNeurons(cfg.Grid, neurons)
	if err != nil {
		return nil, err
	}

	// The occupancy matrix is redundant with the neuron list; when
	// present the two must agree.
	if snap.Occupancy != nil {
		if len(snap.Occupancy) != snap.GridSize {
			return nil, fmt.Errorf("%w: occupancy has %d columns for grid size %d",
				grid.ErrInvalidSnapshot, len(snap.Occupancy), snap.GridSize)
		}
		for x := range snap.Occupancy {
			if len(snap.Occupancy[x]) != snap.GridSize {
				return nil, fmt.Errorf("%w: occupancy column %d has %d cells for grid size %d",
					grid.ErrInvalidSnapshot, x, len(snap.Occupancy[x]), snap.GridSize)
			}
			for y := range snap.Occupancy[x] {
				if snap.Occupancy[x][y] != field.OccupiedAt(x, y) {
					return nil, fmt.Errorf("%w: occupancy disagrees with neurons at (%d, %d)",
						grid.ErrInvalidSnapshot, x, y)
				}
			}
		}
	}

	if snap.Turn < 0 {
		return nil, fmt.Errorf("%w: negative turn %d", grid.ErrInvalidSnapshot, snap.Turn)
	}
	if snap.ConsciousnessLevel < 0 || snap.ConsciousnessLevel > 1 {
		return nil, fmt.Errorf("%w: consciousness level %v outside [0,1]",
			grid.ErrInvalidSnapshot, snap.ConsciousnessLevel)
	}

	players := make(map[string]*models.PlayerState, len(snap.Players))
	for id, p := range snap.Players {
		st := p
		if st.Kind == "" {
			st.Kind = models.PlayerSingle
		}
		if !st.Kind.IsValid() {
			return nil, fmt.Errorf("%w: player %q has unknown kind %q",
				grid.ErrInvalidSnapshot, id, st.Kind)
		}
		players[id] = &st
	}
	if snap.Winner != "" {
		if _, ok := players[snap.Winner]; !ok {
			return nil, fmt.Errorf("%w: winner %q is not a registered player",
				grid.ErrInvalidSnapshot, snap.Winner)
		}
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		cfg:      cfg,
		field:    field,
		detector: pattern.New(cfg.Pattern),
		players:  players,
		turn:     snap.Turn,
		winner:   snap.Winner,
		drawn:    snap.Drawn,
		level:    snap.ConsciousnessLevel,
		patterns: slices.Clone(snap.Patterns),
		logger:   logger,
	}, nil
}
