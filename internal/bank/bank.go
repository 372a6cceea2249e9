// Package bank provides read access to pre-existing question pools: the
// curated verified set and the precomputed item bank. The scheduler only
// ever reads from these stores.
package bank

import (
	"context"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// ItemStore returns stored questions tagged with a concept, scoped to a
// module. Implementations must not return more than limit items and must
// treat the pool as read-only.
type ItemStore interface {
	Questions(ctx context.Context, moduleID string, key concept.Key, limit int) ([]*questiongen.Question, error)
}
