package variant

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Assignment controls which source tier a learner's batches try first.
// Used for controlled comparison of curated-first vs bank-first sourcing.
type Assignment string

const (
	// VerifiedFirst tries curated items before the precomputed bank.
	VerifiedFirst Assignment = "verified-first"

	// BankFirst tries the precomputed bank before curated items.
	BankFirst Assignment = "bank-first"

	// Split alternates the leading tier per batch slot.
	Split Assignment = "split"
)

// buckets is the assignment ring indexed by hash remainder. Order is part
// of the contract: changing it would silently rebucket every learner.
var buckets = [3]Assignment{VerifiedFirst, BankFirst, Split}

// Overrides force an assignment for every learner on a guide, keyed by
// guide hash. Operator-maintained; checked before any hashing.
type Overrides map[string]Assignment

// ParseAssignment maps a config or flag string to an Assignment.
func ParseAssignment(s string) (Assignment, error) {
	switch Assignment(strings.ToLower(strings.TrimSpace(s))) {
	case VerifiedFirst:
		return VerifiedFirst, nil
	case BankFirst:
		return BankFirst, nil
	case Split:
		return Split, nil
	}
	return "", fmt.Errorf("unknown assignment %q (want %s, %s or %s)", s, VerifiedFirst, BankFirst, Split)
}

// ParseOverrides parses an operator override list of the form
// "guideHash=assignment,guideHash=assignment". An empty string yields
// nil so callers can pass the result straight through.
func ParseOverrides(s string) (Overrides, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	out := make(Overrides)
	for _, pair := range strings.Split(s, ",") {
		hash, val, ok := strings.Cut(pair, "=")
		hash = strings.TrimSpace(hash)
		if !ok || hash == "" {
			return nil, fmt.Errorf("malformed override %q (want guideHash=assignment)", pair)
		}
		a, err := ParseAssignment(val)
		if err != nil {
			return nil, err
		}
		out[hash] = a
	}
	return out, nil
}

// Assign returns the stable assignment for a (learner, guide) pair. With
// no override it hashes the opaque pair, so repeated calls always agree
// and no learner identity beyond the id itself is involved.
func Assign(userID, guideHash string, overrides Overrides) Assignment {
	if a, ok := overrides[guideHash]; ok {
		return a
	}
	h := xxhash.Sum64String(userID + ":" + guideHash)
	return buckets[h%uint64(len(buckets))]
}
