// Package dynamics advances neuron activations over the connection
// network. Updates are synchronous: every neuron computes its next
// activation from the previous tick's values, then all neurons commit
// at once, so iteration order never changes the outcome.
package dynamics

import (
	"math"

	"github.com/neurogrid/emergence/internal/grid"
	"github.com/neurogrid/emergence/internal/models"
)

const (
	memoryDecay   = 0.9
	memoryGain    = 0.1
	processorGain = 10.0
)

// Step runs one synchronous activation tick. The consciousness level
// drives the oscillator phase and stays fixed for the whole tick.
//
// Per type, with input the weighted sum of connected activations:
//
//	processor   tanh(input * power / 10)
//	memory      state <- 0.9*state + 0.1*input; tanh(state)
//	oscillator  sin(level * 2pi mod 2pi) * input
//	sensor, connector
//	            tanh(input)
func Step(f *grid.Field, level float64) {
	neurons := f.Neurons()
	snapshot := make([]float64, len(neurons))
	for i, n := range neurons {
		snapshot[i] = n.Activation
	}

	next := make([]float64, len(neurons))
	for i, n := range neurons {
		var input float64
		for _, peer := range n.Connections {
			p, ok := f.Neuron(peer)
			if !ok {
				continue
			}
			input += snapshot[peer] * coupling(n, p)
		}

		switch n.Type {
		case models.NeuronProcessor:
			next[i] = math.Tanh(input * n.Power / processorGain)
		case models.NeuronMemory:
			n.MemoryState = memoryDecay*n.MemoryState + memoryGain*input
			next[i] = math.Tanh(n.MemoryState)
		case models.NeuronOscillator:
			phase := math.Mod(level*2*math.Pi, 2*math.Pi)
			next[i] = math.Sin(phase) * input
		default:
			next[i] = math.Tanh(input)
		}
	}

	for i, n := range neurons {
		n.Activation = next[i]
	}
}

// coupling weights a link by processing-power similarity: identical
// powers couple at 1, diverging powers decay hyperbolically.
func coupling(a, b *models.Neuron) float64 {
	return 1 / (1 + math.Abs(a.Power-b.Power))
}
