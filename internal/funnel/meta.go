package funnel

import (
	"time"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
)

// BatchMeta describes one completed batch selection. Immutable once built;
// a new selection produces a new instance.
type BatchMeta struct {
	// BatchID traces this batch through logs and answer events.
	BatchID string `json:"batchId"`

	// FocusTargets are the distinct weak concepts this batch practices.
	FocusTargets []concept.Key `json:"focusTargets"`

	// ExploreTargets are the novel/under-sampled concepts probed for
	// baseline data. May contain repeats on small universes.
	ExploreTargets []concept.Key `json:"exploreTargets"`

	// TargetByQuestionID maps each delivered question to the concept it
	// was sourced to satisfy.
	TargetByQuestionID map[string]concept.Key `json:"targetByQuestionId"`

	// SourceCounts tallies delivered questions per source tier.
	SourceCounts map[questiongen.SourceType]int `json:"sourceCounts"`

	// Shortfall is how many requested questions could not be sourced.
	Shortfall int `json:"shortfall,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Batch is what the scheduler hands back to the caller: the questions in
// delivery order plus the selection metadata.
type Batch struct {
	Questions []*questiongen.Question `json:"questions"`
	Meta      BatchMeta               `json:"meta"`
}
