package funnel

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/fingerprint"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/sourcing"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/variant"
)

// BatchRequest asks for one practice batch.
type BatchRequest struct {
	GuideHash string

	// Guide is the concept material the batch draws on.
	Guide []concept.GuideConcept

	// Total is the requested number of batch slots, clamped by the
	// selector's configured bounds.
	Total int

	// PerTarget is how many questions to source per slot. Zero means 1.
	PerTarget int
}

// Service runs one batch request end to end: select targets, source
// questions through the tiered pipeline, mark delivered questions seen.
type Service struct {
	selector  *Selector
	pipeline  *sourcing.Pipeline
	overrides variant.Overrides
	log       *zap.Logger
}

// NewService wires the scheduler's orchestration layer.
func NewService(selector *Selector, pipeline *sourcing.Pipeline, overrides variant.Overrides, log *zap.Logger) *Service {
	return &Service{
		selector:  selector,
		pipeline:  pipeline,
		overrides: overrides,
		log:       log,
	}
}

// BuildBatch assembles a batch for the learner whose state and seen-set are
// given. Only a delivered batch is marked seen: on context cancellation the
// partial result is discarded and nothing enters the seen-set.
func (s *Service) BuildBatch(ctx context.Context, state *State, seen *fingerprint.SeenSet, req BatchRequest) (*Batch, error) {
	universe := concept.BuildUniverse(req.Guide, state.Mastery.DisplayNames())
	selection := s.selector.SelectTargets(universe, state.Mastery, req.Total)

	assignment := variant.Assign(state.LearnerID, req.GuideHash, s.overrides)

	excerpts := excerptsByKey(req.Guide)
	keys := append(append([]concept.Key{}, selection.FocusTargets...), selection.ExploreTargets...)
	targets := make([]sourcing.Target, len(keys))
	orders := make([][]sourcing.Tier, len(keys))
	for i, key := range keys {
		targets[i] = sourcing.Target{
			Key:     key,
			Label:   universe.DisplayName(key),
			Excerpt: excerpts[key],
		}
		orders[i] = sourcing.TierOrder(assignment, i)
	}

	perTarget := req.PerTarget
	if perTarget <= 0 {
		perTarget = 1
	}

	idx := fingerprint.NewIndex(seen)
	results := s.pipeline.BuildBatch(ctx, state.ModuleID, targets, perTarget, orders, idx)

	if err := ctx.Err(); err != nil {
		// Abandoned mid-flight: whatever was sourced is not delivered and
		// must not count as seen.
		return nil, err
	}

	batch := assemble(selection, results)

	seen.MarkSeen(batch.Questions)

	s.log.Info("batch built",
		zap.String("batch", batch.Meta.BatchID),
		zap.String("learner", state.LearnerID),
		zap.String("module", state.ModuleID),
		zap.String("variant", string(assignment)),
		zap.Int("questions", len(batch.Questions)),
		zap.Int("shortfall", batch.Meta.Shortfall),
	)
	return batch, nil
}

// assemble flattens per-target results into the delivered batch, in target
// order, accumulating provenance.
func assemble(selection Selection, results []sourcing.TargetResult) *Batch {
	meta := BatchMeta{
		BatchID:            uuid.NewString(),
		FocusTargets:       selection.FocusTargets,
		ExploreTargets:     selection.ExploreTargets,
		TargetByQuestionID: make(map[string]concept.Key),
		SourceCounts:       make(map[sourcing.Tier]int),
		CreatedAt:          time.Now().UTC(),
	}

	batch := &Batch{Meta: meta}
	for _, res := range results {
		for _, q := range res.Questions {
			batch.Questions = append(batch.Questions, q)
			batch.Meta.TargetByQuestionID[q.ID] = res.Target.Key
		}
		for tier, n := range res.Counts {
			batch.Meta.SourceCounts[tier] += n
		}
		batch.Meta.Shortfall += res.Shortfall
	}
	return batch
}

// excerptsByKey maps normalized concept keys to guide text, first entry
// winning, for generation prompt context.
func excerptsByKey(guide []concept.GuideConcept) map[concept.Key]string {
	out := make(map[concept.Key]string, len(guide))
	for _, gc := range guide {
		key := concept.Normalize(gc.Label)
		if key == "" || gc.Text == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = gc.Text
		}
	}
	return out
}
