package agentstats

import (
	"context"
	"sync"

	"github.com/dmitrymomot/servicekit/pkg/useragent"
)

// MemoryStore implements Store in process memory. Counters are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[string]int64
	limit    int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]int64),
		limit:    applyOptions(opts).limit,
	}
}

func (ms *MemoryStore) Record(_ context.Context, ua useragent.UserAgent) error {
	k := key(ua)

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.counters[k]; !ok && ms.limit > 0 && len(ms.counters) >= ms.limit {
		return ErrTooManyAgents
	}
	ms.counters[k]++
	return nil
}

func (ms *MemoryStore) Snapshot(_ context.Context) ([]Entry, error) {
	ms.mu.RLock()
	entries := make([]Entry, 0, len(ms.counters))
	for agent, count := range ms.counters {
		entries = append(entries, Entry{Agent: agent, Count: count})
	}
	ms.mu.RUnlock()

	sortEntries(entries)
	return entries, nil
}

func (ms *MemoryStore) Reset(_ context.Context) error {
	ms.mu.Lock()
	clear(ms.counters)
	ms.mu.Unlock()
	return nil
}
