package fingerprint

import (
	"context"
	"sync"
)

// MemoryStore is an in-process RemoteStore, used in tests and when no
// remote endpoint is configured.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}

	// FailFetch and FailAdd force errors, for unavailability tests.
	FailFetch error
	FailAdd   error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]map[string]struct{})}
}

func (m *MemoryStore) Fetch(_ context.Context, learnerID, moduleID string) ([]string, error) {
	if m.FailFetch != nil {
		return nil, m.FailFetch
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	set := m.sets[seenKey(learnerID, moduleID)]
	out := make([]string, 0, len(set))
	for fp := range set {
		out = append(out, fp)
	}
	return out, nil
}

func (m *MemoryStore) Add(_ context.Context, learnerID, moduleID string, fps []string) error {
	if m.FailAdd != nil {
		return m.FailAdd
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := seenKey(learnerID, moduleID)
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	for _, fp := range fps {
		set[fp] = struct{}{}
	}
	return nil
}

// Size returns the stored fingerprint count for a pair.
func (m *MemoryStore) Size(learnerID, moduleID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sets[seenKey(learnerID, moduleID)])
}
