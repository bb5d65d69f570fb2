package web

import (
	"sync"
	"time"

	"github.com/tably/tably/internal/engine"
)

// Store holds the currently loaded dataset. Reads take a snapshot under
// a read lock; a reload swaps the whole dataset in one write. Handlers
// never see a half-replaced table.
type Store struct {
	mu          sync.RWMutex
	dataset     engine.Dataset
	fingerprint string
	loadedAt    time.Time
}

// NewStore creates a store seeded with the given dataset.
func NewStore(ds engine.Dataset, fingerprint string) *Store {
	return &Store{
		dataset:     ds,
		fingerprint: fingerprint,
		loadedAt:    time.Now(),
	}
}

// Snapshot returns the current dataset along with its source fingerprint
// and load time. The dataset's slices are shared, not copied; readers
// must not mutate them.
func (s *Store) Snapshot() (engine.Dataset, string, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.fingerprint, s.loadedAt
}

// Replace swaps in a freshly parsed dataset.
func (s *Store) Replace(ds engine.Dataset, fingerprint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.fingerprint = fingerprint
	s.loadedAt = time.Now()
}
