package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/llm"
)

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// rawQuestion is the wire shape of one model-produced question.
type rawQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	ConceptTags   []string `json:"concept_tags"`
	Explanation   string   `json:"explanation"`
	Difficulty    int      `json:"difficulty"`
}

type rawBatch struct {
	Questions []rawQuestion `json:"questions"`
}

// Generate requests input.Count questions on the concept and returns those
// that pass the validator chain. Rejected candidates are logged and
// dropped, never returned as errors — the pipeline's retry bound decides
// whether to ask again.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generation call: %w", err)
	}

	var raw rawBatch
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("parse generation response: %w", err)
	}

	questions := make([]*Question, 0, len(raw.Questions))
	for _, rq := range raw.Questions {
		q := &Question{
			ID:            uuid.NewString(),
			Text:          rq.Text,
			Options:       rq.Options,
			CorrectAnswer: rq.CorrectAnswer,
			ConceptTags:   rq.ConceptTags,
			SourceType:    SourceGenerated,
			Explanation:   rq.Explanation,
			Difficulty:    rq.Difficulty,
		}
		// The model is asked to tag the target concept first, but don't
		// trust it: guarantee the target tag is present.
		if !hasTag(q.ConceptTags, input.ConceptLabel) {
			q.ConceptTags = append([]string{input.ConceptLabel}, q.ConceptTags...)
		}

		if verr := g.validate(q); verr != nil {
			g.log.Debug("candidate rejected",
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message),
				zap.String("concept", input.ConceptLabel),
			)
			continue
		}
		questions = append(questions, q)
	}

	return questions, nil
}

func (g *LLMGenerator) validate(q *Question) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

func hasTag(tags []string, label string) bool {
	for _, t := range tags {
		if t == label {
			return true
		}
	}
	return false
}
