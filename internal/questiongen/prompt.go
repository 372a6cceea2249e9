package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a medical educator writing board-style practice questions for a study-practice application.

Rules:
- Generate the requested number of multiple-choice questions on the given concept.
- Each question must be answerable from general medical knowledge plus the provided source excerpt; never contradict the excerpt.
- Each question has 4-5 options with exactly one correct answer. Distractors should reflect plausible misconceptions, not random terms.
- The question stem must be self-contained; do not reference "the text" or "the guide".
- Tag each question with the concept names it actually tests, starting with the target concept.
- Include a brief explanation of why the correct answer is right.
- Rate each question's difficulty from 1 (recall) to 5 (multi-step reasoning).
- Do not reuse or lightly reword any stem from the "avoid" list.`

// buildUserMessage constructs the user turn for one generation request.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Concept: %s\n", input.ConceptLabel)
	fmt.Fprintf(&b, "Questions needed: %d\n", input.Count)

	if input.GuideExcerpt != "" {
		b.WriteString("\nSource excerpt:\n")
		b.WriteString(truncate(input.GuideExcerpt, cfg.MaxExcerptChars))
		b.WriteString("\n")
	}

	b.WriteString("\nAvoid (already seen by this learner):\n")
	b.WriteString(buildAvoidList(input.AvoidTexts, cfg.MaxAvoidTexts))

	return b.String()
}

// buildAvoidList formats prior stems for the prompt, keeping only the most
// recent N. Returns "None" when there is nothing to avoid.
func buildAvoidList(texts []string, max int) string {
	if len(texts) == 0 {
		return "None"
	}
	if max > 0 && len(texts) > max {
		texts = texts[len(texts)-max:]
	}

	var b strings.Builder
	for i, text := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max]
}
