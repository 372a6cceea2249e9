package sourcing

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/bank"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/fingerprint"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// Target is one batch slot: a concept to fill questions for.
type Target struct {
	Key concept.Key

	// Label is the display form used in generation prompts.
	Label string

	// Excerpt is optional guide text for the concept.
	Excerpt string
}

// TargetResult reports how one target was filled.
type TargetResult struct {
	Target    Target
	Questions []*questiongen.Question

	// Counts tallies accepted questions per tier.
	Counts map[Tier]int

	// Shortfall is how many requested questions could not be sourced
	// after every tier was tried. Soft: the batch still ships.
	Shortfall int
}

// Config tunes the pipeline.
type Config struct {
	// GenAttempts bounds generation-tier retries per target.
	GenAttempts int

	// GenTimeout bounds one generation call.
	GenTimeout time.Duration

	// FetchFactor over-fetches stored candidates to leave dedup headroom,
	// e.g. 3 means ask a store for 3x the needed count.
	FetchFactor int
}

// DefaultConfig returns production pipeline tuning.
func DefaultConfig() Config {
	return Config{
		GenAttempts: 3,
		GenTimeout:  45 * time.Second,
		FetchFactor: 3,
	}
}

// Pipeline fills batch targets from ordered source tiers with fingerprint
// dedup. Stores and the generator are injected; the pipeline owns only the
// draw-filter-fallthrough logic.
type Pipeline struct {
	verified  bank.ItemStore
	bankStore bank.ItemStore
	generator questiongen.Generator
	config    Config
	log       *zap.Logger
}

// NewPipeline wires a Pipeline. Any store (or the generator) may be nil;
// a nil tier is simply skipped.
func NewPipeline(verified, bankStore bank.ItemStore, gen questiongen.Generator, cfg Config, log *zap.Logger) *Pipeline {
	return &Pipeline{
		verified:  verified,
		bankStore: bankStore,
		generator: gen,
		config:    cfg,
		log:       log,
	}
}

// FillTarget draws up to count deduplicated questions for one target,
// trying tiers in order and falling through on exhaustion. Every accepted
// candidate passes through idx.Admit, which is shared across concurrent
// targets, so a fingerprint accepted anywhere in the batch blocks the
// same content everywhere else.
func (p *Pipeline) FillTarget(ctx context.Context, moduleID string, target Target, count int, order []Tier, idx *fingerprint.Index) TargetResult {
	result := TargetResult{
		Target: target,
		Counts: make(map[Tier]int),
	}

	for _, tier := range order {
		if len(result.Questions) >= count {
			break
		}
		need := count - len(result.Questions)

		var accepted []*questiongen.Question
		if tier == TierGenerated {
			accepted = p.generate(ctx, target, need, idx)
		} else {
			accepted = p.drawStored(ctx, moduleID, tier, target.Key, need, idx)
		}

		result.Questions = append(result.Questions, accepted...)
		result.Counts[tier] += len(accepted)
	}

	result.Shortfall = count - len(result.Questions)
	if result.Shortfall > 0 {
		p.log.Warn("target underfilled",
			zap.String("concept", string(target.Key)),
			zap.Int("requested", count),
			zap.Int("sourced", len(result.Questions)),
		)
	}
	return result
}

// drawStored pulls candidates from a stored tier. Store failures are
// soft: log and fall through to the next tier.
func (p *Pipeline) drawStored(ctx context.Context, moduleID string, tier Tier, key concept.Key, need int, idx *fingerprint.Index) []*questiongen.Question {
	store := p.verified
	if tier == TierBank {
		store = p.bankStore
	}
	if store == nil {
		return nil
	}

	candidates, err := store.Questions(ctx, moduleID, key, need*p.config.FetchFactor)
	if err != nil {
		p.log.Warn("tier store unavailable, falling through",
			zap.String("tier", string(tier)),
			zap.String("concept", string(key)),
			zap.Error(err),
		)
		return nil
	}

	var accepted []*questiongen.Question
	for _, q := range candidates {
		if len(accepted) >= need {
			break
		}
		if idx.Admit(q) {
			accepted = append(accepted, q)
		}
	}
	return accepted
}

// generate asks the generation tier for the remaining count, retrying up
// to the configured bound when the model returns too few valid items.
func (p *Pipeline) generate(ctx context.Context, target Target, need int, idx *fingerprint.Index) []*questiongen.Question {
	if p.generator == nil {
		return nil
	}

	var accepted []*questiongen.Question
	for attempt := 0; attempt < p.config.GenAttempts && len(accepted) < need; attempt++ {
		if ctx.Err() != nil {
			return accepted
		}

		input := questiongen.GenerateInput{
			ConceptLabel: target.Label,
			GuideExcerpt: target.Excerpt,
			Count:        need - len(accepted),
			AvoidTexts:   idx.AcceptedTexts(),
		}

		genCtx, cancel := context.WithTimeout(ctx, p.config.GenTimeout)
		candidates, err := p.generator.Generate(genCtx, input)
		cancel()

		if err != nil {
			p.log.Warn("generation attempt failed",
				zap.String("concept", string(target.Key)),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		for _, q := range candidates {
			if len(accepted) >= need {
				break
			}
			if idx.Admit(q) {
				accepted = append(accepted, q)
			}
		}
	}
	return accepted
}

// BuildBatch fills all targets concurrently. orders[i] is the tier order
// for targets[i]. Results come back in target order regardless of
// completion order. The only cross-target coordination is the shared
// fingerprint index; per-target failures never abort the batch.
func (p *Pipeline) BuildBatch(ctx context.Context, moduleID string, targets []Target, perTarget int, orders [][]Tier, idx *fingerprint.Index) []TargetResult {
	results := make([]TargetResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	for i := range targets {
		g.Go(func() error {
			results[i] = p.FillTarget(gctx, moduleID, targets[i], perTarget, orders[i], idx)
			return nil
		})
	}
	_ = g.Wait() // no hard errors by construction

	return results
}
