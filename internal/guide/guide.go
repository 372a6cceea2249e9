package guide

import (
	"context"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
)

// Guide is one body of study material: the concepts it covers plus a
// stable content hash used for variant bucketing.
type Guide struct {
	Title    string
	Hash     string
	Concepts []concept.GuideConcept
}

// Provider loads guide content by reference. The scheduler treats guides
// as read-only input; what a reference means (file path, document id) is
// up to the implementation.
type Provider interface {
	Load(ctx context.Context, ref string) (*Guide, error)
}
