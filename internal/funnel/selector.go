package funnel

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/mastery"
)

// SelectorConfig bounds and shapes target selection.
type SelectorConfig struct {
	// MinTotal and MaxTotal clamp the requested batch size.
	MinTotal int
	MaxTotal int

	// FocusShare is the fraction of slots given to weak tracked concepts;
	// the rest go to exploration. Focus never exceeds the tracked count.
	FocusShare float64

	// NoveltyMaxAttempts is the attempt count at or below which a concept
	// still counts as under-sampled for exploration.
	NoveltyMaxAttempts int
}

// DefaultSelectorConfig returns production selection tuning.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		MinTotal:           3,
		MaxTotal:           20,
		FocusShare:         0.6,
		NoveltyMaxAttempts: 1,
	}
}

// Selection is the outcome of one target pick: focus targets are distinct
// and ordered by priority, explore targets may repeat when the universe is
// smaller than the batch.
type Selection struct {
	FocusTargets   []concept.Key
	ExploreTargets []concept.Key
}

// Total returns the number of selected slots.
func (s Selection) Total() int {
	return len(s.FocusTargets) + len(s.ExploreTargets)
}

// Selector picks batch targets from the concept universe and the learner's
// mastery records. The random source is injected so tests can fix a seed;
// production passes nil for true entropy.
type Selector struct {
	config SelectorConfig
	params mastery.Params
	rng    *rand.Rand
}

// NewSelector wires a Selector. rng may be nil.
func NewSelector(cfg SelectorConfig, params mastery.Params, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{config: cfg, params: params, rng: rng}
}

// SelectTargets picks up to total targets: the weakest tracked concepts as
// focus, then novel or under-sampled universe concepts as explore. With no
// mastery history everything is explore; with an empty universe the
// selection is empty.
func (s *Selector) SelectTargets(universe concept.Universe, records mastery.Records, total int) Selection {
	total = clamp(total, s.config.MinTotal, s.config.MaxTotal)

	if universe.Len() == 0 {
		return Selection{}
	}

	focusBudget := int(math.Round(float64(total) * s.config.FocusShare))
	if focusBudget > len(records) {
		focusBudget = len(records)
	}

	ranked := s.params.Rank(records)
	focus := make([]concept.Key, 0, focusBudget)
	focus = append(focus, ranked[:focusBudget]...)

	exploreBudget := total - len(focus)
	explore := s.pickExplore(universe, records, focus, exploreBudget)

	return Selection{FocusTargets: focus, ExploreTargets: explore}
}

// pickExplore fills the explore budget from the universe. Never-attempted
// concepts come first, then under-sampled ones, then everything else by
// ascending attempts; order within the first two groups is randomized per
// call to avoid staleness. When the pool is smaller than the budget the
// pool is cycled, so explore targets may repeat.
func (s *Selector) pickExplore(universe concept.Universe, records mastery.Records, focus []concept.Key, budget int) []concept.Key {
	if budget <= 0 {
		return nil
	}

	inFocus := make(map[concept.Key]struct{}, len(focus))
	for _, k := range focus {
		inFocus[k] = struct{}{}
	}

	var novel, low, rest []concept.Key
	for _, key := range universe.Keys() {
		if _, taken := inFocus[key]; taken {
			continue
		}
		switch attempts := records.Attempts(key); {
		case attempts == 0:
			novel = append(novel, key)
		case attempts <= s.config.NoveltyMaxAttempts:
			low = append(low, key)
		default:
			rest = append(rest, key)
		}
	}

	s.rng.Shuffle(len(novel), func(i, j int) { novel[i], novel[j] = novel[j], novel[i] })
	s.rng.Shuffle(len(low), func(i, j int) { low[i], low[j] = low[j], low[i] })
	sort.Slice(rest, func(i, j int) bool {
		ai, aj := records.Attempts(rest[i]), records.Attempts(rest[j])
		if ai != aj {
			return ai < aj
		}
		return rest[i] < rest[j]
	})

	pool := append(append(novel, low...), rest...)
	if len(pool) == 0 {
		// Every universe concept is already a focus target; repeat across
		// the remaining slots rather than shorting the batch.
		pool = universe.Keys()
	}

	explore := make([]concept.Key, 0, budget)
	for i := 0; i < budget; i++ {
		explore = append(explore, pool[i%len(pool)])
	}
	return explore
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
