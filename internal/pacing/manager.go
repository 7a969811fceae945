package pacing

import (
	"errors"
	"sync"

	"github.com/ericcurtin/BansheeRun/internal/geo"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id is not registered.
var ErrSessionNotFound = errors.New("pacing session not found")

// Managed pairs a ghost description with its live session.
type Managed struct {
	ID      string
	Ghost   Ghost
	Session *Session
}

// Manager is the registry of active pacing sessions, keyed by id. Each API
// consumer owns its sessions through the manager rather than a package-level
// singleton.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Managed
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Managed)}
}

// CreateFromTrack starts a session racing a recorded activity's track.
func (m *Manager) CreateFromTrack(ghost Ghost, track []geo.Point) *Managed {
	return m.register(ghost, track)
}

// CreatePacer starts a session racing a synthetic pacer along a route.
func (m *Manager) CreatePacer(ghost Ghost, route []geo.Point) (*Managed, error) {
	track, err := SyntheticTrack(route, ghost.TargetPaceSecPerKm)
	if err != nil {
		return nil, err
	}
	return m.register(ghost, track), nil
}

func (m *Manager) register(ghost Ghost, track []geo.Point) *Managed {
	managed := &Managed{
		ID:      uuid.NewString(),
		Ghost:   ghost,
		Session: NewSession(track),
	}
	m.mu.Lock()
	m.sessions[managed.ID] = managed
	m.mu.Unlock()
	return managed
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Managed, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	managed, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return managed, nil
}

// Delete removes a session from the registry.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of active sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
