package funnel

import (
	"math/rand"
	"testing"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/mastery"
)

func guideOf(labels ...string) []concept.GuideConcept {
	out := make([]concept.GuideConcept, 0, len(labels))
	for _, l := range labels {
		out = append(out, concept.GuideConcept{Label: l})
	}
	return out
}

func recordsOf(stats map[string][2]int) mastery.Records {
	rs := make(mastery.Records)
	for label, ac := range stats {
		key := concept.Normalize(label)
		rs[key] = &mastery.Record{Key: key, DisplayName: label, Attempts: ac[0], Correct: ac[1]}
	}
	return rs
}

func seededSelector() *Selector {
	return NewSelector(DefaultSelectorConfig(), mastery.DefaultParams(), rand.New(rand.NewSource(42)))
}

func TestSelectTargetsEmptyMasteryAllExplore(t *testing.T) {
	universe := concept.BuildUniverse(
		guideOf("Anemia", "Sepsis", "Stroke", "Asthma", "Gout"), nil)

	sel := seededSelector().SelectTargets(universe, make(mastery.Records), 5)

	if len(sel.FocusTargets) != 0 {
		t.Errorf("focus targets = %d, want 0", len(sel.FocusTargets))
	}
	if len(sel.ExploreTargets) != 5 {
		t.Fatalf("explore targets = %d, want 5", len(sel.ExploreTargets))
	}
	for _, key := range sel.ExploreTargets {
		if !universe.Contains(key) {
			t.Errorf("explore target %q not in universe", key)
		}
	}
}

func TestSelectTargetsEmptyUniverse(t *testing.T) {
	sel := seededSelector().SelectTargets(concept.Universe{}, make(mastery.Records), 5)
	if sel.Total() != 0 {
		t.Errorf("total = %d, want 0 for empty universe", sel.Total())
	}
}

func TestSelectTargetsFocusDistinctAndBounded(t *testing.T) {
	records := recordsOf(map[string][2]int{
		"Anemia": {10, 2},
		"Sepsis": {10, 8},
		"Stroke": {4, 2},
		"Asthma": {6, 1},
		"Gout":   {3, 3},
	})
	universe := concept.BuildUniverse(
		guideOf("Anemia", "Sepsis", "Stroke", "Asthma", "Gout", "Lupus", "Tetanus"),
		records.DisplayNames())

	sel := seededSelector().SelectTargets(universe, records, 10)

	if sel.Total() > 10 {
		t.Errorf("total = %d, want <= 10", sel.Total())
	}
	seen := make(map[concept.Key]bool)
	for _, key := range sel.FocusTargets {
		if seen[key] {
			t.Errorf("duplicate focus target %q", key)
		}
		seen[key] = true
	}
	if len(sel.FocusTargets) == 0 {
		t.Error("expected focus targets with non-empty mastery")
	}
}

func TestSelectTargetsFocusPrefersWeakConcepts(t *testing.T) {
	// Identical attempt counts isolate the mastery signal.
	records := recordsOf(map[string][2]int{
		"Anemia": {10, 2},
		"Sepsis": {10, 8},
		"Stroke": {10, 9},
	})
	universe := concept.BuildUniverse(guideOf("Anemia", "Sepsis", "Stroke"), records.DisplayNames())

	cfg := DefaultSelectorConfig()
	cfg.FocusShare = 1.0
	s := NewSelector(cfg, mastery.DefaultParams(), rand.New(rand.NewSource(1)))

	sel := s.SelectTargets(universe, records, 3)

	want := []concept.Key{"anemia", "sepsis", "stroke"}
	if len(sel.FocusTargets) != len(want) {
		t.Fatalf("focus targets = %v, want %v", sel.FocusTargets, want)
	}
	for i, key := range want {
		if sel.FocusTargets[i] != key {
			t.Errorf("focus[%d] = %q, want %q", i, sel.FocusTargets[i], key)
		}
	}
}

func TestSelectTargetsClampsTotal(t *testing.T) {
	universe := concept.BuildUniverse(guideOf("Anemia", "Sepsis"), nil)
	s := seededSelector()

	if got := s.SelectTargets(universe, make(mastery.Records), 1).Total(); got != 3 {
		t.Errorf("total for request 1 = %d, want clamped to 3", got)
	}
	if got := s.SelectTargets(universe, make(mastery.Records), 100).Total(); got != 20 {
		t.Errorf("total for request 100 = %d, want clamped to 20", got)
	}
}

func TestSelectTargetsSmallUniverseRepeats(t *testing.T) {
	universe := concept.BuildUniverse(guideOf("Anemia", "Sepsis"), nil)

	sel := seededSelector().SelectTargets(universe, make(mastery.Records), 6)

	if sel.Total() != 6 {
		t.Fatalf("total = %d, want 6", sel.Total())
	}
	counts := make(map[concept.Key]int)
	for _, key := range sel.ExploreTargets {
		counts[key]++
	}
	if len(counts) != 2 {
		t.Errorf("distinct explore keys = %d, want 2", len(counts))
	}
	for key, n := range counts {
		if n < 2 {
			t.Errorf("key %q repeated %d times, want >= 2", key, n)
		}
	}
}

func TestSelectTargetsExplorePrefersNovel(t *testing.T) {
	records := recordsOf(map[string][2]int{
		"Anemia": {5, 4},
		"Sepsis": {5, 4},
	})
	universe := concept.BuildUniverse(
		guideOf("Anemia", "Sepsis", "Stroke", "Asthma"), records.DisplayNames())

	cfg := DefaultSelectorConfig()
	cfg.FocusShare = 0
	s := NewSelector(cfg, mastery.DefaultParams(), rand.New(rand.NewSource(7)))

	sel := s.SelectTargets(universe, records, 4)

	// The two never-attempted concepts must fill the first explore slots.
	novelFirst := map[concept.Key]bool{"stroke": true, "asthma": true}
	for i := 0; i < 2; i++ {
		if !novelFirst[sel.ExploreTargets[i]] {
			t.Errorf("explore[%d] = %q, want a never-attempted concept first", i, sel.ExploreTargets[i])
		}
	}
}

func TestSelectTargetsDeterministicWithFixedSeed(t *testing.T) {
	universe := concept.BuildUniverse(
		guideOf("Anemia", "Sepsis", "Stroke", "Asthma", "Gout"), nil)

	a := NewSelector(DefaultSelectorConfig(), mastery.DefaultParams(), rand.New(rand.NewSource(99))).
		SelectTargets(universe, make(mastery.Records), 5)
	b := NewSelector(DefaultSelectorConfig(), mastery.DefaultParams(), rand.New(rand.NewSource(99))).
		SelectTargets(universe, make(mastery.Records), 5)

	if len(a.ExploreTargets) != len(b.ExploreTargets) {
		t.Fatalf("explore lengths differ: %d vs %d", len(a.ExploreTargets), len(b.ExploreTargets))
	}
	for i := range a.ExploreTargets {
		if a.ExploreTargets[i] != b.ExploreTargets[i] {
			t.Errorf("explore[%d] differs: %q vs %q", i, a.ExploreTargets[i], b.ExploreTargets[i])
		}
	}
}
