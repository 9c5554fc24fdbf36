package models

// NeuronSnapshot is the wire form of one neuron in an exported state.
type NeuronSnapshot struct {
	ID              int        `json:"id"`
	X               int        `json:"x"`
	Y               int        `json:"y"`
	Type            NeuronType `json:"type"`
	ProcessingPower float64    `json:"processing_power"`
	Activation      float64    `json:"activation"`
	MemoryState     float64    `json:"memory_state"`
	Connections     []int      `json:"connections"`
	Player          string     `json:"player,omitempty"`
}

// NetworkStats summarizes the connection graph at export time.
type NetworkStats struct {
	NodeCount         int     `json:"node_count"`
	EdgeCount         int     `json:"edge_count"`
	AverageClustering float64 `json:"average_clustering"`
}

// StateSnapshot is a complete, self-contained capture of a session.
// A snapshot produced by Export can be fed back through Restore to
// resume play with identical behavior.
type StateSnapshot struct {
	GridSize           int                    `json:"grid_size"`
	Occupancy          [][]bool               `json:"grid_state"`
	Neurons            []NeuronSnapshot       `json:"neurons"`
	Players            map[string]PlayerState `json:"players,omitempty"`
	Turn               int                    `json:"turn"`
	Winner             string                 `json:"winner,omitempty"`
	Drawn              bool                   `json:"drawn,omitempty"`
	ConsciousnessLevel float64                `json:"consciousness_level"`
	Patterns           []Pattern              `json:"patterns,omitempty"`
	Network            NetworkStats           `json:"network_stats"`
}
