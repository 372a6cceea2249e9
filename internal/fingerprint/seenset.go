package fingerprint

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// RemoteStore is the port to the authoritative cross-device seen-store,
// keyed by (learner, module). Implementations must have set semantics:
// adding an existing fingerprint is a no-op.
type RemoteStore interface {
	// Fetch returns every fingerprint recorded for the pair.
	Fetch(ctx context.Context, learnerID, moduleID string) ([]string, error)

	// Add records fingerprints. Union-only; nothing is ever removed.
	Add(ctx context.Context, learnerID, moduleID string, fps []string) error
}

// reconcileTimeout bounds one background reconciliation pass.
const reconcileTimeout = 10 * time.Second

// SeenSet tracks every question fingerprint one learner has been shown in
// one module. The local cache is authoritative between reconciliations:
// reads never touch the network, and remote failure only delays the push.
// Fingerprints are never removed.
type SeenSet struct {
	learnerID string
	moduleID  string

	cache  *gocache.Cache
	remote RemoteStore
	log    *zap.Logger

	mu      sync.Mutex
	pending map[string]struct{} // local fingerprints not yet confirmed remote
}

// NewSeenSet creates a SeenSet for one (learner, module) pair. remote may
// be nil for local-only operation.
func NewSeenSet(learnerID, moduleID string, remote RemoteStore, log *zap.Logger) *SeenSet {
	return &SeenSet{
		learnerID: learnerID,
		moduleID:  moduleID,
		cache:     gocache.New(gocache.NoExpiration, 0),
		remote:    remote,
		log:       log,
		pending:   make(map[string]struct{}),
	}
}

// Preload seeds the local cache, e.g. from the persisted on-disk copy at
// startup. Preloaded fingerprints take part in the next reconciliation
// like any other local entry.
func (s *SeenSet) Preload(fps []string) {
	for _, fp := range fps {
		s.cache.Set(fp, struct{}{}, gocache.NoExpiration)
	}
}

// Has reports whether a single fingerprint is in the set.
func (s *SeenSet) Has(fp string) bool {
	_, found := s.cache.Get(fp)
	return found
}

// HasAny reports whether any of the fingerprints is in the set. This is
// the dedup check: a question is "seen" if any of its variants matches.
func (s *SeenSet) HasAny(fps []string) bool {
	for _, fp := range fps {
		if s.Has(fp) {
			return true
		}
	}
	return false
}

// Len returns the number of fingerprints currently known locally.
func (s *SeenSet) Len() int {
	return s.cache.ItemCount()
}

// All returns every fingerprint currently known locally.
func (s *SeenSet) All() []string {
	items := s.cache.Items()
	out := make([]string, 0, len(items))
	for fp := range items {
		out = append(out, fp)
	}
	return out
}

// MarkSeen merges the fingerprints of delivered questions into the local
// cache and kicks off an asynchronous remote reconciliation. The caller
// never blocks on the network. Calling it twice with the same questions is
// equivalent to calling it once.
func (s *SeenSet) MarkSeen(questions []*questiongen.Question) {
	added := false
	s.mu.Lock()
	for _, q := range questions {
		for _, fp := range Compute(q) {
			if _, found := s.cache.Get(fp); found {
				continue
			}
			s.cache.Set(fp, struct{}{}, gocache.NoExpiration)
			s.pending[fp] = struct{}{}
			added = true
		}
	}
	s.mu.Unlock()

	if added && s.remote != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
			defer cancel()
			if err := s.Reconcile(ctx); err != nil {
				s.log.Warn("seen-set reconciliation failed, local cache remains authoritative",
					zap.String("learner", s.learnerID),
					zap.String("module", s.moduleID),
					zap.Error(err),
				)
			}
		}()
	}
}

// Reconcile merges with the remote store: read the remote set, union it
// into the local cache, then write back every fingerprint the remote is
// missing. Union-only in both directions — a fingerprint present anywhere
// ends up present everywhere.
func (s *SeenSet) Reconcile(ctx context.Context) error {
	if s.remote == nil {
		return nil
	}

	remoteFPs, err := s.remote.Fetch(ctx, s.learnerID, s.moduleID)
	if err != nil {
		return err
	}

	remoteSet := make(map[string]struct{}, len(remoteFPs))
	for _, fp := range remoteFPs {
		remoteSet[fp] = struct{}{}
		s.cache.Set(fp, struct{}{}, gocache.NoExpiration)
	}

	// The push delta is the whole local cache minus the remote, not just
	// this process's pending writes: fingerprints that arrived via Preload
	// (or whose original push was lost) must reach the remote too,
	// otherwise another device re-serves those questions.
	var delta []string
	for fp := range s.cache.Items() {
		if _, ok := remoteSet[fp]; !ok {
			delta = append(delta, fp)
		}
	}

	s.mu.Lock()
	for fp := range s.pending {
		if _, ok := remoteSet[fp]; ok {
			delete(s.pending, fp)
		}
	}
	s.mu.Unlock()

	if len(delta) == 0 {
		return nil
	}

	if err := s.remote.Add(ctx, s.learnerID, s.moduleID, delta); err != nil {
		return err
	}

	s.mu.Lock()
	for _, fp := range delta {
		delete(s.pending, fp)
	}
	s.mu.Unlock()

	return nil
}
