package fingerprint

import (
	"sync"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// Index is the working fingerprint set for one batch under construction.
// All per-target sourcing goroutines share one Index; Admit is the single
// synchronization point that prevents two goroutines from accepting the
// same question.
type Index struct {
	mu      sync.Mutex
	working map[string]struct{}
	seen    *SeenSet

	accepted []*questiongen.Question
}

// NewIndex creates an Index layered over the learner's seen-set.
func NewIndex(seen *SeenSet) *Index {
	return &Index{
		working: make(map[string]struct{}),
		seen:    seen,
	}
}

// Admit checks a candidate against the working set and the seen-set, and
// on success atomically claims all its fingerprint variants. Returns false
// when any variant is already claimed or seen. The check-and-claim is a
// single critical section: once Admit returns true no concurrent call can
// accept a duplicate.
func (i *Index) Admit(q *questiongen.Question) bool {
	fps := Compute(q)

	i.mu.Lock()
	defer i.mu.Unlock()

	for _, fp := range fps {
		if _, taken := i.working[fp]; taken {
			return false
		}
	}
	if i.seen != nil && i.seen.HasAny(fps) {
		return false
	}

	for _, fp := range fps {
		i.working[fp] = struct{}{}
	}
	i.accepted = append(i.accepted, q)
	return true
}

// Accepted returns every question admitted so far, in admission order.
func (i *Index) Accepted() []*questiongen.Question {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]*questiongen.Question, len(i.accepted))
	copy(out, i.accepted)
	return out
}

// AcceptedTexts returns the stems of admitted questions, for generation
// prompts' avoid lists.
func (i *Index) AcceptedTexts() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]string, 0, len(i.accepted))
	for _, q := range i.accepted {
		out = append(out, q.Text)
	}
	return out
}
