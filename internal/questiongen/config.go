package questiongen

// Config controls the LLM-backed generator.
type Config struct {
	// Validators run in order on every parsed candidate; the first failure
	// rejects that candidate (the rest of the batch is kept).
	Validators []Validator

	// MaxTokens is the response token budget.
	MaxTokens int

	// Temperature for generation. Kept fairly high: variety matters more
	// than determinism here, and dedup happens downstream anyway.
	Temperature float64

	// MaxAvoidTexts caps how many prior stems go into the prompt.
	MaxAvoidTexts int

	// MaxExcerptChars caps the guide excerpt length in the prompt.
	MaxExcerptChars int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{},
		},
		MaxTokens:       2048,
		Temperature:     0.7,
		MaxAvoidTexts:   12,
		MaxExcerptChars: 4000,
	}
}
