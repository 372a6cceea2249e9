package questiongen

// SourceType records which tier a question came from.
type SourceType string

const (
	// SourceVerified marks curated, human-reviewed items.
	SourceVerified SourceType = "verified"

	// SourceBank marks precomputed item-bank questions.
	SourceBank SourceType = "bank"

	// SourceGenerated marks on-demand model output.
	SourceGenerated SourceType = "generated"
)

// Question is a multiple-choice practice item. Every question entering the
// scheduler — curated, banked, or generated — is carried in this shape, and
// generated candidates are validated into it at the model boundary.
type Question struct {
	// ID uniquely identifies the question within a batch and in answer
	// events. Bank items keep their stored id; generated items get a UUID.
	ID string `json:"id"`

	// Text is the question stem shown to the learner.
	Text string `json:"text"`

	// Options are the answer choices, one of which is correct.
	Options []string `json:"options"`

	// CorrectAnswer is the exact text of the correct option.
	CorrectAnswer string `json:"correctAnswer"`

	// ConceptTags are the raw concept labels this question exercises.
	// Normalized downstream; at least one is required.
	ConceptTags []string `json:"conceptTags"`

	// SourceType is the tier the question was drawn from.
	SourceType SourceType `json:"sourceType"`

	// Explanation is a brief rationale shown after answering. Optional for
	// bank items, always requested from the model.
	Explanation string `json:"explanation,omitempty"`

	// Difficulty is the model's/author's 1-5 self-assessment. Analytics
	// only, never used for gating.
	Difficulty int `json:"difficulty,omitempty"`
}

// GenerateInput carries the context for one generation-tier request.
type GenerateInput struct {
	// ConceptLabel is the display form of the target concept.
	ConceptLabel string

	// GuideExcerpt is source-material text for the concept, when available.
	GuideExcerpt string

	// Count is how many questions to request.
	Count int

	// AvoidTexts are stems of questions the learner has already seen or
	// that are already in the working batch. Included in the prompt so the
	// model steers away from repeats before fingerprinting even runs.
	AvoidTexts []string
}
