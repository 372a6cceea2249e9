package questiongen

// StructuralValidator checks required fields and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "text is empty",
			Retryable: true,
		}
	}
	if len(q.Text) > 1000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "text exceeds 1000 characters",
			Retryable: true,
		}
	}
	if len(q.ConceptTags) == 0 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "no concept tags",
			Retryable: true,
		}
	}
	if q.Difficulty != 0 && (q.Difficulty < 1 || q.Difficulty > 5) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "difficulty must be between 1 and 5",
			Retryable: true,
		}
	}
	if len(q.Explanation) > 2000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 2000 characters",
			Retryable: true,
		}
	}
	return nil
}
