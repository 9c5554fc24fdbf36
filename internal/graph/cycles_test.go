package graph

import (
	"fmt"
	"slices"
	"testing"
)

func TestSimpleCyclesTriangle(t *testing.T) {
	g := build(t, [][2]int{{0, 1}, {1, 2}, {2, 0}})

	cycles, complete := g.SimpleCycles(DefaultCycleLimits())
	if !complete {
		t.Fatal("expected complete search")
	}
	if len(cycles) != 1 {
		t.Fatalf("cycles = %v, want exactly one", cycles)
	}
	if !slices.Equal(cycles[0], []int{0, 1, 2}) {
		t.Errorf("cycle = %v, want canonical [0 1 2]", cycles[0])
	}
}

func TestSimpleCyclesSquare(t *testing.T) {
	g := build(t, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})

	cycles, complete := g.SimpleCycles(DefaultCycleLimits())
	if !complete {
		t.Fatal("expected complete search")
	}
	if len(cycles) != 1 {
		t.Fatalf("cycles = %v, want exactly one", cycles)
	}
	if !slices.Equal(cycles[0], []int{0, 1, 2, 3}) {
		t.Errorf("cycle = %v, want canonical [0 1 2 3]", cycles[0])
	}
}

func TestSimpleCyclesTree(t *testing.T) {
	// A star has no cycles at all.
	g := build(t, [][2]int{{0, 1}, {0, 2}, {0, 3}})

	cycles, complete := g.SimpleCycles(DefaultCycleLimits())
	if !complete {
		t.Fatal("expected complete search")
	}
	if len(cycles) != 0 {
		t.Errorf("cycles = %v, want none", cycles)
	}
}

func TestSimpleCyclesCompleteGraph(t *testing.T) {
	// K5 holds 10 triangles, 15 quadrilaterals and 12 pentagons.
	g := complete(t, 5)

	cycles, done := g.SimpleCycles(DefaultCycleLimits())
	if !done {
		t.Fatal("expected complete search")
	}
	if len(cycles) != 37 {
		t.Fatalf("len(cycles) = %d, want 37", len(cycles))
	}

	byLen := map[int]int{}
	seen := map[string]bool{}
	for _, c := range cycles {
		byLen[len(c)]++
		key := fmt.Sprint(c)
		if seen[key] {
			t.Fatalf("duplicate cycle %v", c)
		}
		seen[key] = true
	}
	if byLen[3] != 10 || byLen[4] != 15 || byLen[5] != 12 {
		t.Errorf("cycle count by length = %v, want map[3:10 4:15 5:12]", byLen)
	}
}

func TestSimpleCyclesLengthCap(t *testing.T) {
	// The only cycle is a 4-cycle; capping at 3 hides it without
	// marking the search incomplete.
	g := build(t, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}})

	cycles, complete := g.SimpleCycles(CycleLimits{MaxLength: 3, Budget: 10000})
	if !complete {
		t.Fatal("length-capped search should still be complete")
	}
	if len(cycles) != 0 {
		t.Errorf("cycles = %v, want none under length cap", cycles)
	}
}

func TestSimpleCyclesBudgetExhaustion(t *testing.T) {
	g := complete(t, 5)

	cycles, complete := g.SimpleCycles(CycleLimits{MaxLength: 8, Budget: 3})
	if complete {
		t.Fatal("expected incomplete search under tiny budget")
	}
	// The first triangle is reachable within three expansions.
	if len(cycles) != 1 || !slices.Equal(cycles[0], []int{0, 1, 2}) {
		t.Errorf("cycles = %v, want partial result [[0 1 2]]", cycles)
	}

	if _, complete := g.SimpleCycles(CycleLimits{MaxLength: 8, Budget: 0}); complete {
		t.Error("zero budget must report incomplete")
	}
}

func TestSimpleCyclesDisconnectedComponents(t *testing.T) {
	g := build(t, [][2]int{
		{0, 1}, {1, 2}, {2, 0}, // triangle
		{10, 11}, {11, 12}, {12, 13}, {13, 10}, // square
		{20, 21}, // stray edge
	})

	cycles, complete := g.SimpleCycles(DefaultCycleLimits())
	if !complete {
		t.Fatal("expected complete search")
	}
	if len(cycles) != 2 {
		t.Fatalf("cycles = %v, want one per component", cycles)
	}
}
