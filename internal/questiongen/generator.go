package questiongen

import "context"

// Generator produces candidate questions for a concept. The sourcing
// pipeline treats it as the last tier: failures are retryable, short
// results are tolerated.
type Generator interface {
	// Generate requests input.Count questions and returns the subset that
	// passed validation. A short or empty slice with a nil error means the
	// model answered but produced too few valid items; an error means the
	// call itself failed.
	Generate(ctx context.Context, input GenerateInput) ([]*Question, error)
}
