package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/funnel"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "funnel.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStateRepoRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	state := funnel.NewState("u1", "cardio")
	funnel.RecordAnswer(state, []string{"Heart Failure"}, true)

	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(ctx, "u1", "cardio")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r := loaded.Mastery.Get("heart failure")
	if r == nil || r.Attempts != 1 || r.Correct != 1 {
		t.Errorf("loaded record = %+v, want attempts=1 correct=1", r)
	}
}

func TestStateRepoSaveOverwrites(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	state := funnel.NewState("u1", "cardio")
	funnel.RecordAnswer(state, []string{"Sepsis"}, false)
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("first save: %v", err)
	}

	funnel.RecordAnswer(state, []string{"Sepsis"}, true)
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := repo.Load(ctx, "u1", "cardio")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r := loaded.Mastery.Get("sepsis")
	if r == nil || r.Attempts != 2 || r.Correct != 1 {
		t.Errorf("loaded record = %+v, want attempts=2 correct=1", r)
	}
}

func TestStateRepoLoadMissingReturnsFreshState(t *testing.T) {
	s := openTestStore(t)

	state, err := s.StateRepo().Load(context.Background(), "nobody", "cardio")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if state.LearnerID != "nobody" || state.ModuleID != "cardio" {
		t.Errorf("scope = %s/%s", state.LearnerID, state.ModuleID)
	}
	if len(state.Mastery) != 0 {
		t.Errorf("fresh state has %d records, want 0", len(state.Mastery))
	}
}

func TestAnswerRepoAppendAndRead(t *testing.T) {
	s := openTestStore(t)
	repo := s.AnswerRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.Append(ctx, "u1", "cardio", "batch-1", "q1", []string{"Sepsis"}, i%2 == 0)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if err := repo.Append(ctx, "u2", "cardio", "batch-2", "q9", []string{"Stroke"}, true); err != nil {
		t.Fatalf("append other learner: %v", err)
	}

	n, err := repo.Count(ctx, "u1", "cardio")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	events, err := repo.Recent(ctx, "u1", "cardio", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("recent = %d events, want 2", len(events))
	}
	if events[0].ID < events[1].ID {
		t.Error("events not in newest-first order")
	}
}

func TestSeenCacheRepoIdempotentSave(t *testing.T) {
	s := openTestStore(t)
	repo := s.SeenCacheRepo()
	ctx := context.Background()

	fps := []string{"fp-a", "fp-b", "fp-c"}
	if err := repo.Save(ctx, "u1", "cardio", fps); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Overlapping second save must not duplicate or fail.
	if err := repo.Save(ctx, "u1", "cardio", []string{"fp-b", "fp-d"}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	n, err := repo.Count(ctx, "u1", "cardio")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 4 {
		t.Errorf("count = %d, want 4", n)
	}

	loaded, err := repo.Load(ctx, "u1", "cardio")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := make(map[string]bool, len(loaded))
	for _, fp := range loaded {
		got[fp] = true
	}
	for _, fp := range []string{"fp-a", "fp-b", "fp-c", "fp-d"} {
		if !got[fp] {
			t.Errorf("missing fingerprint %s", fp)
		}
	}
}

func TestSeenCacheRepoScopedByLearner(t *testing.T) {
	s := openTestStore(t)
	repo := s.SeenCacheRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, "u1", "cardio", []string{"fp-a"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, "u2", "cardio", []string{"fp-a"}); err != nil {
		t.Fatal(err)
	}

	loaded, err := repo.Load(ctx, "u1", "cardio")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Errorf("u1 fingerprints = %d, want 1", len(loaded))
	}
}
