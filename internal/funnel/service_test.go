package funnel

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/bank"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/fingerprint"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/mastery"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/sourcing"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/variant"
)

func newTestService(verified, bankStore *bank.MemoryStore) *Service {
	selector := NewSelector(DefaultSelectorConfig(), mastery.DefaultParams(), rand.New(rand.NewSource(11)))
	pipeline := sourcing.NewPipeline(verified, bankStore, nil, sourcing.DefaultConfig(), zap.NewNop())
	return NewService(selector, pipeline, nil, zap.NewNop())
}

func seedStore(store *bank.MemoryStore, moduleID string, labels []string, perLabel int, source questiongen.SourceType) {
	for _, label := range labels {
		for i := 0; i < perLabel; i++ {
			id := fmt.Sprintf("%s-%s-%d", source, label, i)
			store.Add(moduleID, &questiongen.Question{
				ID:   id,
				Text: "Question " + id + "?",
				Options: []string{
					"Option A " + id, "Option B " + id,
					"Option C " + id, "Option D " + id,
				},
				CorrectAnswer: "Option A " + id,
				ConceptTags:   []string{label},
				SourceType:    source,
			})
		}
	}
}

func TestServiceBuildBatchFirstSession(t *testing.T) {
	labels := []string{"Anemia", "Sepsis", "Stroke"}
	verified := bank.NewMemoryStore()
	seedStore(verified, "cardio", labels, 3, questiongen.SourceVerified)

	svc := newTestService(verified, bank.NewMemoryStore())
	state := NewState("u1", "cardio")
	seen := fingerprint.NewSeenSet("u1", "cardio", nil, zap.NewNop())

	batch, err := svc.BuildBatch(context.Background(), state, seen, BatchRequest{
		GuideHash: "guide-1",
		Guide:     guideOf(labels...),
		Total:     3,
	})
	if err != nil {
		t.Fatalf("BuildBatch: %v", err)
	}

	if len(batch.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(batch.Questions))
	}
	if len(batch.Meta.FocusTargets) != 0 {
		t.Errorf("focus targets = %d, want 0 on first session", len(batch.Meta.FocusTargets))
	}
	if batch.Meta.BatchID == "" {
		t.Error("batch id is empty")
	}
	if batch.Meta.SourceCounts[questiongen.SourceVerified] != 3 {
		t.Errorf("verified count = %d, want 3", batch.Meta.SourceCounts[questiongen.SourceVerified])
	}
	for _, q := range batch.Questions {
		if _, ok := batch.Meta.TargetByQuestionID[q.ID]; !ok {
			t.Errorf("question %s missing from target map", q.ID)
		}
	}
}

func TestServiceBuildBatchMarksDeliveredSeen(t *testing.T) {
	labels := []string{"Anemia", "Sepsis", "Stroke"}
	verified := bank.NewMemoryStore()
	seedStore(verified, "cardio", labels, 2, questiongen.SourceVerified)

	svc := newTestService(verified, bank.NewMemoryStore())
	state := NewState("u1", "cardio")
	seen := fingerprint.NewSeenSet("u1", "cardio", nil, zap.NewNop())

	batch, err := svc.BuildBatch(context.Background(), state, seen, BatchRequest{
		GuideHash: "guide-1",
		Guide:     guideOf(labels...),
		Total:     3,
	})
	if err != nil {
		t.Fatalf("BuildBatch: %v", err)
	}

	for _, q := range batch.Questions {
		if !seen.HasAny(fingerprint.Compute(q)) {
			t.Errorf("delivered question %s not marked seen", q.ID)
		}
	}
}

func TestServiceBuildBatchNeverRepeatsAcrossBatches(t *testing.T) {
	labels := []string{"Anemia", "Sepsis", "Stroke"}
	verified := bank.NewMemoryStore()
	seedStore(verified, "cardio", labels, 4, questiongen.SourceVerified)

	svc := newTestService(verified, bank.NewMemoryStore())
	state := NewState("u1", "cardio")
	seen := fingerprint.NewSeenSet("u1", "cardio", nil, zap.NewNop())

	delivered := make(map[string]bool)
	for round := 0; round < 2; round++ {
		batch, err := svc.BuildBatch(context.Background(), state, seen, BatchRequest{
			GuideHash: "guide-1",
			Guide:     guideOf(labels...),
			Total:     3,
		})
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		for _, q := range batch.Questions {
			if delivered[q.ID] {
				t.Errorf("question %s delivered twice", q.ID)
			}
			delivered[q.ID] = true
		}
	}
}

func TestServiceBuildBatchCancelledNotSeen(t *testing.T) {
	labels := []string{"Anemia", "Sepsis", "Stroke"}
	verified := bank.NewMemoryStore()
	seedStore(verified, "cardio", labels, 2, questiongen.SourceVerified)

	svc := newTestService(verified, bank.NewMemoryStore())
	state := NewState("u1", "cardio")
	seen := fingerprint.NewSeenSet("u1", "cardio", nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.BuildBatch(ctx, state, seen, BatchRequest{
		GuideHash: "guide-1",
		Guide:     guideOf(labels...),
		Total:     3,
	}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if seen.Len() != 0 {
		t.Errorf("seen-set size = %d after cancelled batch, want 0", seen.Len())
	}
}

func TestServiceBuildBatchHonorsVariantOverride(t *testing.T) {
	// Both tiers can satisfy every target; a bank-first override on the
	// guide must make the bank win every slot regardless of the learner's
	// hashed assignment.
	labels := []string{"Anemia", "Sepsis", "Stroke"}
	verified := bank.NewMemoryStore()
	seedStore(verified, "cardio", labels, 3, questiongen.SourceVerified)
	bankStore := bank.NewMemoryStore()
	seedStore(bankStore, "cardio", labels, 3, questiongen.SourceBank)

	selector := NewSelector(DefaultSelectorConfig(), mastery.DefaultParams(), rand.New(rand.NewSource(11)))
	pipeline := sourcing.NewPipeline(verified, bankStore, nil, sourcing.DefaultConfig(), zap.NewNop())
	svc := NewService(selector, pipeline, variant.Overrides{"guide-1": variant.BankFirst}, zap.NewNop())

	state := NewState("u1", "cardio")
	seen := fingerprint.NewSeenSet("u1", "cardio", nil, zap.NewNop())

	batch, err := svc.BuildBatch(context.Background(), state, seen, BatchRequest{
		GuideHash: "guide-1",
		Guide:     guideOf(labels...),
		Total:     3,
	})
	if err != nil {
		t.Fatalf("BuildBatch: %v", err)
	}
	if len(batch.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(batch.Questions))
	}
	for _, q := range batch.Questions {
		if q.SourceType != questiongen.SourceBank {
			t.Errorf("question %s sourced from %s under bank-first override, want %s",
				q.ID, q.SourceType, questiongen.SourceBank)
		}
	}
}

func TestServiceBuildBatchShortfall(t *testing.T) {
	// Only one concept has stored items and there is no generator: the
	// batch ships short instead of failing.
	verified := bank.NewMemoryStore()
	seedStore(verified, "cardio", []string{"Anemia"}, 1, questiongen.SourceVerified)

	svc := newTestService(verified, bank.NewMemoryStore())
	state := NewState("u1", "cardio")
	seen := fingerprint.NewSeenSet("u1", "cardio", nil, zap.NewNop())

	batch, err := svc.BuildBatch(context.Background(), state, seen, BatchRequest{
		GuideHash: "guide-1",
		Guide:     guideOf("Anemia", "Sepsis", "Stroke"),
		Total:     3,
	})
	if err != nil {
		t.Fatalf("BuildBatch: %v", err)
	}
	if len(batch.Questions) != 1 {
		t.Errorf("questions = %d, want 1", len(batch.Questions))
	}
	if batch.Meta.Shortfall != 2 {
		t.Errorf("shortfall = %d, want 2", batch.Meta.Shortfall)
	}
}
