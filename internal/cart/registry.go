package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry owns one Store per cart session. Stores are hydrated from the
// persister the first time a session is seen, and again after EvictIdle has
// dropped them.
type Registry struct {
	mu        sync.Mutex
	stores    map[string]*entry
	persister Persister
	logger    *slog.Logger
	now       func() time.Time
}

type entry struct {
	store    *Store
	lastUsed time.Time
}

func NewRegistry(persister Persister, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		stores:    make(map[string]*entry),
		persister: persister,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the session's Store, creating and hydrating it on first use.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.stores[sessionID]; ok {
		e.lastUsed = r.now()
		return e.store, nil
	}

	store := NewStore(Key(sessionID), r.persister, r.logger)
	if err := store.Hydrate(ctx); err != nil {
		return nil, err
	}

	r.stores[sessionID] = &entry{store: store, lastUsed: r.now()}

	return store, nil
}

// Forget drops the in-memory Store for a session. The persisted snapshot is
// left in place.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.stores, sessionID)
}

// EvictIdle forgets every store not used within idle and returns how many
// were dropped. Evicted sessions are re-hydrated on their next Get, which
// picks up expiry or purges done by the persister.
func (r *Registry) EvictIdle(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	evicted := 0

	for id, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			delete(r.stores, id)
			evicted++
		}
	}

	return evicted
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}
