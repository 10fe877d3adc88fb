package planner

import (
	"context"
	"sync"

	"forkcast/internal/storage"
)

// Manager hands out one Planner per household, creating it (and loading
// its first snapshot) on first use.
type Manager struct {
	store  storage.Store
	notify Notifier

	mu       sync.Mutex
	planners map[string]*Planner
}

// NewManager creates a planner manager. notify may be nil.
func NewManager(store storage.Store, notify Notifier) *Manager {
	return &Manager{
		store:    store,
		notify:   notify,
		planners: make(map[string]*Planner),
	}
}

// ForHousehold returns the household's planner, creating it on demand.
func (m *Manager) ForHousehold(ctx context.Context, householdID string) (*Planner, error) {
	m.mu.Lock()
	if p, ok := m.planners[householdID]; ok {
		m.mu.Unlock()
		return p, nil
	}
	m.mu.Unlock()

	// Built outside the manager lock: the first snapshot load hits the
	// store. A lost race just builds the planner twice; whichever
	// registers first wins and the other copy is dropped.
	p, err := New(ctx, m.store, householdID, m.notify)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.planners[householdID]; ok {
		return existing, nil
	}
	m.planners[householdID] = p
	return p, nil
}
