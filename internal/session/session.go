// Package session keeps per-user UI state on the server for the
// lifetime of a login session: the currently selected itinerary and
// whether pending invites were already surfaced.
package session

import (
	"context"
	"sync"
)

type State struct {
	CurrentItineraryID string
	InvitesPrompted    bool
}

type Store interface {
	Load(ctx context.Context, sessionID string) (State, error)
	Save(ctx context.Context, sessionID string, state State) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore holds session state in process memory. State is lost on
// restart, which matches the session lifetime anyway.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[sessionID], nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = state
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{store: store}
}

// CurrentItinerary returns the session's selected itinerary id, empty
// when none is selected.
func (m *Manager) CurrentItinerary(ctx context.Context, sessionID string) (string, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return state.CurrentItineraryID, nil
}

// SetCurrentItinerary records the selection. An empty id clears it.
func (m *Manager) SetCurrentItinerary(ctx context.Context, sessionID, itineraryID string) error {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	state.CurrentItineraryID = itineraryID
	return m.store.Save(ctx, sessionID, state)
}

// ShouldPresentInvites implements one-shot invite prompting: the first
// call with a non-zero pending count returns true and arms the flag,
// later calls return false until the pending count drops back to zero,
// which re-arms the prompt for invites arriving later in the session.
func (m *Manager) ShouldPresentInvites(ctx context.Context, sessionID string, pendingCount int) (bool, error) {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}

	if pendingCount == 0 {
		if state.InvitesPrompted {
			state.InvitesPrompted = false
			if err := m.store.Save(ctx, sessionID, state); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	if state.InvitesPrompted {
		return false, nil
	}
	state.InvitesPrompted = true
	if err := m.store.Save(ctx, sessionID, state); err != nil {
		return false, err
	}
	return true, nil
}

// End drops all state for the session.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	return m.store.Clear(ctx, sessionID)
}
