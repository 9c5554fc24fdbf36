// Package models defines the shared types of the emergence engine: neurons,
// detected patterns, moves, turn results and the exported state snapshot.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// NeuronType categorizes what role a neuron plays in the network.
type NeuronType string

const (
	// NeuronSensor feeds input into the network.
	NeuronSensor NeuronType = "sensor"
	// NeuronProcessor performs computation scaled by its processing power.
	NeuronProcessor NeuronType = "processor"
	// NeuronMemory accumulates state across steps (exponential smoothing).
	NeuronMemory NeuronType = "memory"
	// NeuronConnector relays activation over long-range links.
	NeuronConnector NeuronType = "connector"
	// NeuronOscillator generates rhythm coupled to the global consciousness level.
	NeuronOscillator NeuronType = "oscillator"
)

// ErrUnknownNeuronType indicates a type name outside the closed set.
var ErrUnknownNeuronType = errors.New("unknown neuron type")

// ParseNeuronType resolves a case-insensitive type name to a NeuronType.
func ParseNeuronType(name string) (NeuronType, error) {
	t := NeuronType(strings.ToLower(strings.TrimSpace(name)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNeuronType, name)
	}
	return t, nil
}

// IsValid reports whether the neuron type is one of the closed set.
func (t NeuronType) IsValid() bool {
	switch t {
	case NeuronSensor, NeuronProcessor, NeuronMemory, NeuronConnector, NeuronOscillator:
		return true
	default:
		return false
	}
}

// Neuron is a grid-placed unit. Id, position, type, power and owner are fixed
// at placement; activation and memory state change every simulation step.
// Connections lists peer ids in wiring order and only ever grows; the engine
// has no removal operation.
type Neuron struct {
	ID          int
	X, Y        int
	Type        NeuronType
	Power       float64 // processing power, 1.0-10.0
	Activation  float64
	MemoryState float64 // meaningful for memory neurons only
	Connections []int
	Owner       string
}

// ConnectedTo reports whether id is already in the neuron's connection set.
func (n *Neuron) ConnectedTo(id int) bool {
	for _, c := range n.Connections {
		if c == id {
			return true
		}
	}
	return false
}
