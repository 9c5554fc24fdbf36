package dynamics

import (
	"math"
	"testing"

	"github.com/neurogrid/emergence/internal/grid"
	"github.com/neurogrid/emergence/internal/models"
)

const tol = 1e-12

func place(t *testing.T, f *grid.Field, x, y int, typ models.NeuronType, power float64) *models.Neuron {
	t.Helper()
	n, err := f.Place(x, y, typ, power, "tester")
	if err != nil {
		t.Fatalf("Place(%d, %d): %v", x, y, err)
	}
	return n
}

func TestStepIsolatedNeurons(t *testing.T) {
	f := grid.New(grid.DefaultConfig())
	sensor := place(t, f, 0, 0, models.NeuronSensor, 5)
	osc := place(t, f, 0, 10, models.NeuronOscillator, 5)
	sensor.Activation = 0.9
	osc.Activation = 0.9

	Step(f, 0.25)

	if sensor.Activation != 0 {
		t.Errorf("isolated sensor activation = %v, want tanh(0) = 0", sensor.Activation)
	}
	if osc.Activation != 0 {
		t.Errorf("isolated oscillator activation = %v, want 0", osc.Activation)
	}
}

func TestStepUsesPreviousTick(t *testing.T) {
	f := grid.New(grid.DefaultConfig())
	a := place(t, f, 0, 0, models.NeuronSensor, 5)
	b := place(t, f, 1, 0, models.NeuronSensor, 5)
	a.Activation = 1.0

	Step(f, 0)

	// b reads a's old activation through a weight-1 link; a reads b's
	// old zero. If updates leaked within the tick, a would see b's new
	// value instead.
	if want := math.Tanh(1.0); math.Abs(b.Activation-want) > tol {
		t.Errorf("b.Activation = %v, want %v", b.Activation, want)
	}
	if a.Activation != 0 {
		t.Errorf("a.Activation = %v, want 0", a.Activation)
	}
}

func TestStepCouplingWeight(t *testing.T) {
	f := grid.New(grid.DefaultConfig())
	src := place(t, f, 0, 0, models.NeuronSensor, 2)
	dst := place(t, f, 1, 0, models.NeuronSensor, 8)
	src.Activation = 1.0

	Step(f, 0)

	// Powers 2 and 8 couple at 1/(1+6).
	if want := math.Tanh(1.0 / 7.0); math.Abs(dst.Activation-want) > tol {
		t.Errorf("dst.Activation = %v, want %v", dst.Activation, want)
	}
}

func TestStepProcessorGain(t *testing.T) {
	f := grid.New(grid.DefaultConfig())
	src := place(t, f, 0, 0, models.NeuronSensor, 5)
	proc := place(t, f, 1, 0, models.NeuronProcessor, 5)
	src.Activation = 0.8

	Step(f, 0)

	if want := math.Tanh(0.8 * 5 / 10); math.Abs(proc.Activation-want) > tol {
		t.Errorf("processor activation = %v, want %v", proc.Activation, want)
	}
}

func TestStepMemoryAccumulates(t *testing.T) {
	f := grid.New(grid.DefaultConfig())
	src := place(t, f, 0, 0, models.NeuronSensor, 5)
	mem := place(t, f, 1, 0, models.NeuronMemory, 5)

	src.Activation = 1.0
	Step(f, 0)
	if want := 0.1; math.Abs(mem.MemoryState-want) > tol {
		t.Fatalf("memory state after one tick = %v, want %v", mem.MemoryState, want)
	}
	if want := math.Tanh(0.1); math.Abs(mem.Activation-want) > tol {
		t.Errorf("memory activation = %v, want %v", mem.Activation, want)
	}

	src.Activation = 1.0
	Step(f, 0)
	if want := 0.9*0.1 + 0.1; math.Abs(mem.MemoryState-want) > tol {
		t.Errorf("memory state after two ticks = %v, want %v", mem.MemoryState, want)
	}
}

func TestStepOscillatorPhase(t *testing.T) {
	tests := []struct {
		name  string
		level float64
		want  float64 // factor applied to the input
	}{
		{name: "quarter phase", level: 0.25, want: 1},
		{name: "zero level", level: 0, want: 0},
		{name: "full cycle wraps", level: 1, want: math.Sin(math.Mod(2*math.Pi, 2*math.Pi))},
		{name: "half phase", level: 0.5, want: math.Sin(math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := grid.New(grid.DefaultConfig())
			src := place(t, f, 0, 0, models.NeuronSensor, 5)
			osc := place(t, f, 1, 0, models.NeuronOscillator, 5)
			src.Activation = 0.6

			Step(f, tt.level)

			if want := tt.want * 0.6; math.Abs(osc.Activation-want) > tol {
				t.Errorf("oscillator activation = %v, want %v", osc.Activation, want)
			}
		})
	}
}

func TestStepDeterminism(t *testing.T) {
	build := func() *grid.Field {
		f := grid.New(grid.DefaultConfig())
		place(t, f, 0, 0, models.NeuronSensor, 3)
		place(t, f, 2, 0, models.NeuronProcessor, 7)
		place(t, f, 2, 3, models.NeuronMemory, 5)
		place(t, f, 0, 3, models.NeuronOscillator, 9)
		place(t, f, 1, 1, models.NeuronConnector, 4)
		f.Neurons()[0].Activation = 1.0
		return f
	}

	a, b := build(), build()
	for i := 0; i < 10; i++ {
		Step(a, 0.3)
		Step(b, 0.3)
	}

	for id, n := range a.Neurons() {
		other, _ := b.Neuron(id)
		if n.Activation != other.Activation || n.MemoryState != other.MemoryState {
			t.Errorf("neuron %d diverged: (%v, %v) vs (%v, %v)",
				id, n.Activation, n.MemoryState, other.Activation, other.MemoryState)
		}
	}
}
