package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// Compute derives the fingerprint variants for a question. The first entry
// is the primary fingerprint over stem + answer set + correct answer; the
// lenient variants (stem-only, answer-set-only) catch partial rewordings.
//
// Matching is equality-only: textually different but semantically equivalent
// items are allowed to slip through (false negative), but two questions
// never collide unless their canonical content matches (no false positives).
func Compute(q *questiongen.Question) []string {
	stem := canonicalize(q.Text)

	options := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, canonicalize(opt))
	}
	sort.Strings(options)
	answerSet := strings.Join(options, "|")
	correct := canonicalize(q.CorrectAnswer)

	return []string{
		digest("full", stem+"|"+answerSet+"|"+correct),
		digest("stem", stem),
		digest("answers", answerSet+"|"+correct),
	}
}

// digest prefixes the payload with a variant label so the three variants of
// one question can never collide with each other.
func digest(variant, payload string) string {
	sum := sha256.Sum256([]byte(variant + ":" + payload))
	return hex.EncodeToString(sum[:])
}

// canonicalize folds content for hashing: lower-case, alphanumerics only,
// single spaces. Harsher than concept normalization on purpose — "What is
// X?" and "what is x" must hash identically.
func canonicalize(s string) string {
	lowered := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
