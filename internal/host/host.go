// Package host runs independent game sessions behind one registry.
// Each session gets its own mutex, so turns on one session serialize
// while separate sessions proceed in parallel.
package host

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/neurogrid/emergence/internal/game"
	"github.com/neurogrid/emergence/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	mu      sync.Mutex
	session *game.Session
}

// Manager owns the session registry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	logger   *slog.Logger
}

// NewManager returns an empty registry. A nil logger disables logging.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		sessions: make(map[string]*entry),
		logger:   logger,
	}
}

// Create starts a new session and returns its id.
func (m *Manager) Create(cfg game.Config) string {
	id := uuid.NewString()
	e := &entry{session: game.New(cfg, m.logger.With("session", id))}

	m.mu.Lock()
	m.sessions[id] = e
	m.mu.Unlock()

	m.logger.Info("session created", "session", id)
	return id
}

// Adopt registers a session restored from a snapshot and returns its id.
func (m *Manager) Adopt(cfg game.Config, snap models.StateSnapshot) (string, error) {
	id := uuid.NewString()
	session, err := game.Restore(cfg, snap, m.logger.With("session", id))
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[id] = &entry{session: session}
	m.mu.Unlock()

	m.logger.Info("session adopted", "session", id, "turn", snap.Turn)
	return id, nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

// AddPlayer registers a player on the given session.
func (m *Manager) AddPlayer(id, player string, kind models.PlayerKind) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.AddPlayer(player, kind)
}

// Play applies one move, holding the session's lock for the whole
// turn: validation, placement, settling, detection and scoring are one
// critical section.
func (m *Manager) Play(id, player string, move models.Move) (models.TurnResult, error) {
	e, err := m.lookup(id)
	if err != nil {
		return models.TurnResult{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.PlayTurn(player, move), nil
}

// Export snapshots the given session.
func (m *Manager) Export(id string) (models.StateSnapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return models.StateSnapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Export(), nil
}

// Remove drops a session from the registry.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	m.logger.Info("session removed", "session", id)
	return nil
}
