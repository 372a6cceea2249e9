package questiongen

import "strings"

// ChoiceValidator checks answer-set coherence: enough distinct options and
// a correct answer that is actually one of them.
type ChoiceValidator struct{}

func (v *ChoiceValidator) Name() string { return "choices" }

func (v *ChoiceValidator) Validate(q *Question) *ValidationError {
	if len(q.Options) < 2 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "fewer than 2 options",
			Retryable: true,
		}
	}
	if len(q.Options) > 6 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "more than 6 options",
			Retryable: true,
		}
	}

	seen := make(map[string]bool, len(q.Options))
	correctFound := false
	for _, opt := range q.Options {
		trimmed := strings.TrimSpace(opt)
		if trimmed == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "blank option",
				Retryable: true,
			}
		}
		folded := strings.ToLower(trimmed)
		if seen[folded] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "duplicate options",
				Retryable: true,
			}
		}
		seen[folded] = true

		if trimmed == strings.TrimSpace(q.CorrectAnswer) {
			correctFound = true
		}
	}

	if !correctFound {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "correct answer is not among the options",
			Retryable: true,
		}
	}
	return nil
}
