// Package grid manages the square field neurons are placed on and the
// connection graph that grows alongside it. Placement assigns ids in
// order, and each new neuron is wired automatically to nearby earlier
// neurons, so a given placement sequence always yields the same
// network.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/neurogrid/emergence/internal/graph"
	"github.com/neurogrid/emergence/internal/models"
)

var (
	ErrOutOfBounds      = errors.New("position out of bounds")
	ErrPositionOccupied = errors.New("position occupied")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
)

// Config holds the field geometry and wiring rules.
type Config struct {
	// Size is the edge length of the square grid.
	Size int
	// ConnectRadius is the maximum euclidean distance between two
	// neurons for an automatic connection.
	ConnectRadius float64
	// MaxAutoConnections caps the links created for one placement.
	MaxAutoConnections int
}

// DefaultConfig returns the standard 19x19 field.
func DefaultConfig() Config {
	return Config{
		Size:               19,
		ConnectRadius:      5.0,
		MaxAutoConnections: 4,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Size <= 0 {
		c.Size = def.Size
	}
	if c.ConnectRadius <= 0 {
		c.ConnectRadius = def.ConnectRadius
	}
	if c.MaxAutoConnections <= 0 {
		c.MaxAutoConnections = def.MaxAutoConnections
	}
	return c
}

// Field is the playing surface: cell occupancy, the neuron registry
// indexed by id, and the undirected connection graph.
type Field struct {
	cfg     Config
	cells   [][]*models.Neuron
	neurons []*models.Neuron
	network *graph.Undirected
}

// New returns an empty field. Zero config fields fall back to their
// defaults.
func New(cfg Config) *Field {
	cfg = cfg.withDefaults()
	cells := make([][]*models.Neuron, cfg.Size)
	for x := range cells {
		cells[x] = make([]*models.Neuron, cfg.Size)
	}
	return &Field{
		cfg:     cfg,
		cells:   cells,
		network: graph.New(),
	}
}

// Place adds a neuron at (x, y) and wires it to nearby earlier
// neurons. Ids are assigned sequentially in placement order. The move
// is atomic: on error the field is unchanged.
func (f *Field) Place(x, y int, typ models.NeuronType, power float64, owner string) (*models.Neuron, error) {
	if x < 0 || x >= f.cfg.Size || y < 0 || y >= f.cfg.Size {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	if f.cells[x][y] != nil {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrPositionOccupied, x, y)
	}

	n := &models.Neuron{
		ID:    len(f.neurons),
		X:     x,
		Y:     y,
		Type:  typ,
		Power: power,
		Owner: owner,
	}
	f.cells[x][y] = n
	f.neurons = append(f.neurons, n)
	f.network.AddNode(n.ID)
	f.autoConnect(n)
	return n, nil
}

// autoConnect links n to existing neurons within ConnectRadius,
// scanning in creation order and stopping once MaxAutoConnections new
// links have been made.
func (f *Field) autoConnect(n *models.Neuron) {
	made := 0
	for _, other := range f.neurons {
		if made >= f.cfg.MaxAutoConnections {
			break
		}
		if other.ID == n.ID || n.ConnectedTo(other.ID) {
			continue
		}
		if distance(n, other) > f.cfg.ConnectRadius {
			continue
		}
		n.Connections = append(n.Connections, other.ID)
		other.Connections = append(other.Connections, n.ID)
		f.network.AddEdge(n.ID, other.ID)
		made++
	}
}

func distance(a, b *models.Neuron) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// FromNeurons rebuilds a field from a previously exported neuron list.
// The list must be internally consistent: sequential ids starting at
// zero, coordinates in bounds, one neuron per cell, and symmetric
// connection lists. The stored wiring is restored verbatim; no
// auto-connection runs.
func FromNeurons(cfg Config, neurons []models.Neuron) (*Field, error) {
	f := New(cfg)
	for i := range neurons {
		n := neurons[i]
		if n.ID != i {
			return nil, fmt.Errorf("%w: neuron %d has id %d", ErrInvalidSnapshot, i, n.ID)
		}
		if !n.Type.IsValid() {
			return nil, fmt.Errorf("%w: neuron %d has unknown type %q", ErrInvalidSnapshot, i, n.Type)
		}
		if n.X < 0 || n.X >= f.cfg.Size || n.Y < 0 || n.Y >= f.cfg.Size {
			return nil, fmt.Errorf("%w: neuron %d at (%d, %d) is out of bounds", ErrInvalidSnapshot, i, n.X, n.Y)
		}
		if f.cells[n.X][n.Y] != nil {
			return nil, fmt.Errorf("%w: cell (%d, %d) holds two neurons", ErrInvalidSnapshot, n.X, n.Y)
		}
		restored := n
		restored.Connections = append([]int(nil), n.Connections...)
		f.cells[n.X][n.Y] = &restored
		f.neurons = append(f.neurons, &restored)
		f.network.AddNode(restored.ID)
	}

	for _, n := range f.neurons {
		for _, peer := range n.Connections {
			if peer == n.ID {
				return nil, fmt.Errorf("%w: neuron %d connects to itself", ErrInvalidSnapshot, n.ID)
			}
			if peer < 0 || peer >= len(f.neurons) {
				return nil, fmt.Errorf("%w: neuron %d connects to unknown id %d", ErrInvalidSnapshot, n.ID, peer)
			}
			if !f.neurons[peer].ConnectedTo(n.ID) {
				return nil, fmt.Errorf("%w: connection %d-%d is one-sided", ErrInvalidSnapshot, n.ID, peer)
			}
			f.network.AddEdge(n.ID, peer)
		}
	}
	return f, nil
}

// Neuron returns the neuron with the given id.
func (f *Field) Neuron(id int) (*models.Neuron, bool) {
	if id < 0 || id >= len(f.neurons) {
		return nil, false
	}
	return f.neurons[id], true
}

// Neurons returns the registry in id order. The slice is a copy; the
// pointed-to neurons are live.
func (f *Field) Neurons() []*models.Neuron {
	out := make([]*models.Neuron, len(f.neurons))
	copy(out, f.neurons)
	return out
}

// Network returns the connection graph. Callers must treat it as
// read-only.
func (f *Field) Network() *graph.Undirected {
	return f.network
}

// Activations returns the current activation of every neuron by id.
func (f *Field) Activations() map[int]float64 {
	out := make(map[int]float64, len(f.neurons))
	for _, n := range f.neurons {
		out[n.ID] = n.Activation
	}
	return out
}

// NeuronCount returns the number of placed neurons.
func (f *Field) NeuronCount() int {
	return len(f.neurons)
}

// Size returns the grid edge length.
func (f *Field) Size() int {
	return f.cfg.Size
}

// OccupiedAt reports whether the cell at (x, y) holds a neuron.
// Out-of-bounds coordinates are never occupied.
func (f *Field) OccupiedAt(x, y int) bool {
	if x < 0 || x >= f.cfg.Size || y < 0 || y >= f.cfg.Size {
		return false
	}
	return f.cells[x][y] != nil
}

// Occupancy returns the cell occupancy as a Size x Size matrix indexed
// [x][y].
func (f *Field) Occupancy() [][]bool {
	out := make([][]bool, f.cfg.Size)
	for x := range out {
		out[x] = make([]bool, f.cfg.Size)
		for y := range out[x] {
			out[x][y] = f.cells[x][y] != nil
		}
	}
	return out
}
