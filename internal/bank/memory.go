package bank

import (
	"context"
	"sync"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// MemoryStore is an in-process ItemStore used in tests.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]map[concept.Key][]*questiongen.Question // module -> key -> pool

	// Err forces every Questions call to fail, for unavailability tests.
	Err error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[concept.Key][]*questiongen.Question)}
}

// Add registers a question under every concept tag it carries.
func (m *MemoryStore) Add(moduleID string, q *questiongen.Question) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pools, ok := m.items[moduleID]
	if !ok {
		pools = make(map[concept.Key][]*questiongen.Question)
		m.items[moduleID] = pools
	}
	for _, label := range q.ConceptTags {
		key := concept.Normalize(label)
		pools[key] = append(pools[key], q)
	}
}

func (m *MemoryStore) Questions(_ context.Context, moduleID string, key concept.Key, limit int) ([]*questiongen.Question, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	pool := m.items[moduleID][key]
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	out := make([]*questiongen.Question, len(pool))
	copy(out, pool)
	return out, nil
}
