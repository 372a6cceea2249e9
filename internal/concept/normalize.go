package concept

import "strings"

// Key is the canonical form of a concept label. It is the join key between
// guide content, question tags, and mastery records, so it must be derived
// the same way everywhere.
type Key string

// Normalize canonicalizes a free-text concept label into a Key.
//
// The transform lower-cases, strips characters outside letters, digits,
// spaces, and hyphens, collapses runs of whitespace to single spaces, and
// trims the ends. It is total: unrecognized characters are dropped, never
// rejected. Applying Normalize to its own output is a no-op.
func Normalize(label string) Key {
	lowered := strings.ToLower(label)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		default:
			// Dropped. Punctuation and accented/locale-specific characters
			// must not influence the key, or the same idea written two ways
			// would track as two concepts.
		}
	}

	collapsed := strings.Join(strings.Fields(b.String()), " ")
	return Key(collapsed)
}
