package host

import (
	"errors"
	"sync"
	"testing"

	"github.com/neurogrid/emergence/internal/game"
	"github.com/neurogrid/emergence/internal/models"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(nil)
	id := m.Create(game.DefaultConfig())
	if id == "" {
		t.Fatal("Create returned empty id")
	}

	if err := m.AddPlayer(id, "alpha", models.PlayerSingle); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	got, err := m.Play(id, "alpha", models.Move{X: 4, Y: 4, Type: "processor"})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if got.Status != models.TurnContinue {
		t.Fatalf("result = %+v, want continue", got)
	}

	snap, err := m.Export(id)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(snap.Neurons) != 1 || snap.Turn != 1 {
		t.Errorf("snapshot = %d neurons turn %d, want 1/1", len(snap.Neurons), snap.Turn)
	}

	if err := m.Remove(id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := m.Remove(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Remove error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerUnknownSession(t *testing.T) {
	m := NewManager(nil)

	if _, err := m.Play("nope", "alpha", models.Move{Type: "sensor"}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Play error = %v, want ErrSessionNotFound", err)
	}
	if _, err := m.Export("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Export error = %v, want ErrSessionNotFound", err)
	}
	if err := m.AddPlayer("nope", "alpha", models.PlayerSingle); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("AddPlayer error = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerAdopt(t *testing.T) {
	m := NewManager(nil)
	id := m.Create(game.DefaultConfig())
	if err := m.AddPlayer(id, "alpha", models.PlayerSingle); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}
	if _, err := m.Play(id, "alpha", models.Move{X: 0, Y: 0, Type: "memory"}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	snap, err := m.Export(id)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	copyID, err := m.Adopt(game.DefaultConfig(), snap)
	if err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	if copyID == id {
		t.Fatal("Adopt reused the source session id")
	}
	got, err := m.Export(copyID)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if got.Turn != snap.Turn || len(got.Neurons) != len(snap.Neurons) {
		t.Errorf("adopted state = turn %d / %d neurons, want %d / %d",
			got.Turn, len(got.Neurons), snap.Turn, len(snap.Neurons))
	}

	snap.GridSize = 0
	if _, err := m.Adopt(game.DefaultConfig(), snap); err == nil {
		t.Error("Adopt must reject invalid snapshots")
	}
}

// One session, many goroutines: the per-session lock must serialize
// whole turns, so every distinct-cell move lands. Run with -race.
func TestManagerSerializesTurns(t *testing.T) {
	m := NewManager(nil)
	cfg := game.DefaultConfig()
	cfg.MaxTurns = 0
	cfg.WinThreshold = 1.1 // out of reach: the level never exceeds 1
	id := m.Create(cfg)
	if err := m.AddPlayer(id, "alpha", models.PlayerSingle); err != nil {
		t.Fatalf("AddPlayer: %v", err)
	}

	const workers = 8
	const movesPerWorker = 10
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < movesPerWorker; i++ {
				cell := w*movesPerWorker + i
				move := models.Move{X: cell % 19, Y: cell / 19, Type: "sensor"}
				if got, err := m.Play(id, "alpha", move); err != nil || got.Status != models.TurnContinue {
					t.Errorf("worker %d move %d: %+v, %v", w, i, got, err)
				}
			}
		}(w)
	}
	wg.Wait()

	snap, err := m.Export(id)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if want := workers * movesPerWorker; len(snap.Neurons) != want || snap.Turn != want {
		t.Errorf("state = %d neurons turn %d, want %d/%d",
			len(snap.Neurons), snap.Turn, want, want)
	}
}

// Independent sessions must not contend or share state. Run with -race.
func TestManagerIsolatesSessions(t *testing.T) {
	m := NewManager(nil)
	ids := make([]string, 4)
	for i := range ids {
		ids[i] = m.Create(game.DefaultConfig())
		if err := m.AddPlayer(ids[i], "alpha", models.PlayerSingle); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			for k := 0; k < 5; k++ {
				if _, err := m.Play(id, "alpha", models.Move{X: k, Y: i, Type: "memory"}); err != nil {
					t.Errorf("session %d: %v", i, err)
				}
			}
		}(i, id)
	}
	wg.Wait()

	for i, id := range ids {
		snap, err := m.Export(id)
		if err != nil {
			t.Fatalf("Export: %v", err)
		}
		if len(snap.Neurons) != 5 {
			t.Errorf("session %d has %d neurons, want 5", i, len(snap.Neurons))
		}
	}
}
