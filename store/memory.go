package store

import "sync"

// MemoryStore is a thread-safe in-memory settings store. Get returns a copy
// of the bag, so a turn's settings snapshot is immune to later writes.
type MemoryStore struct {
	prefs map[string]any
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]any)}
}

// Get returns a snapshot of the raw preference bag.
func (s *MemoryStore) Get() (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]any, len(s.prefs))
	for k, v := range s.prefs {
		snapshot[k] = v
	}
	return snapshot, nil
}

// Put replaces the raw preference bag wholesale.
func (s *MemoryStore) Put(prefs map[string]any) error {
	copied := make(map[string]any, len(prefs))
	for k, v := range prefs {
		copied[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = copied
	return nil
}

// Set updates a single preference key.
func (s *MemoryStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[key] = value
	return nil
}

// Len returns the number of stored preferences.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prefs)
}

// Clear removes all preferences.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = make(map[string]any)
}

// Verify MemoryStore implements SettingsStore
var _ SettingsStore = (*MemoryStore)(nil)
