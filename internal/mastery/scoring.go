package mastery

import (
	"sort"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
)

// Params are the tunable constants of the mastery estimator. The exact
// values matter less than the shape: a weak uniform prior keeps estimates
// away from 0 and 1 at low sample counts, and the uncertainty weight makes
// under-sampled concepts outrank confidently-weak ones of equal estimate.
type Params struct {
	// AlphaPrior and BetaPrior are the Beta-prior pseudo-counts added to
	// correct and incorrect tallies respectively. Both must be > 0.
	AlphaPrior float64
	BetaPrior  float64

	// UncertaintyWeight scales the low-attempt-count bonus in Priority.
	UncertaintyWeight float64
}

// DefaultParams returns the production constants: a Laplace prior and a
// modest uncertainty bonus.
func DefaultParams() Params {
	return Params{
		AlphaPrior:        1.0,
		BetaPrior:         1.0,
		UncertaintyWeight: 0.5,
	}
}

// ExpectedMastery estimates the probability the learner answers this concept
// correctly, smoothed by the prior. Always in [0,1]; at zero attempts it
// returns the prior midpoint rather than 0 or 1.
func (p Params) ExpectedMastery(r *Record) float64 {
	if r == nil {
		return p.AlphaPrior / (p.AlphaPrior + p.BetaPrior)
	}
	return (float64(r.Correct) + p.AlphaPrior) /
		(float64(r.Attempts) + p.AlphaPrior + p.BetaPrior)
}

// Priority scores how urgently a concept needs practice. Strictly decreasing
// in expected mastery; for equal mastery, fewer attempts score higher.
func (p Params) Priority(r *Record) float64 {
	attempts := 0
	if r != nil {
		attempts = r.Attempts
	}
	return (1.0 - p.ExpectedMastery(r)) + p.UncertaintyWeight/float64(1+attempts)
}

// Rank orders all tracked concepts by priority descending. Ties are broken
// by key lexical order so ranking is deterministic.
func (p Params) Rank(rs Records) []concept.Key {
	keys := make([]concept.Key, 0, len(rs))
	for k := range rs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi, pj := p.Priority(rs[keys[i]]), p.Priority(rs[keys[j]])
		if pi != pj {
			return pi > pj
		}
		return keys[i] < keys[j]
	})
	return keys
}
