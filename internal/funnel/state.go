package funnel

import (
	"encoding/json"
	"time"

	"github.com/Levisoloai/MediPrepBeta-sub001/internal/mastery"
)

// State is the persisted funnel state for one (learner, module) pair: the
// mastery records plus identifying scope. It serializes to JSON for the
// local snapshot store.
type State struct {
	LearnerID string          `json:"learnerId"`
	ModuleID  string          `json:"moduleId"`
	Mastery   mastery.Records `json:"mastery"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NewState creates an empty state for a learner/module pair.
func NewState(learnerID, moduleID string) *State {
	return &State{
		LearnerID: learnerID,
		ModuleID:  moduleID,
		Mastery:   make(mastery.Records),
	}
}

// DecodeState restores a state from its JSON snapshot. A missing mastery
// map is replaced with an empty one so callers never see nil.
func DecodeState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Mastery == nil {
		s.Mastery = make(mastery.Records)
	}
	return &s, nil
}

// Encode serializes the state for persistence.
func (s *State) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// CommandKind names a side effect the caller must execute after a state
// mutation. Mutations themselves stay pure with respect to I/O.
type CommandKind string

const (
	// PersistLocal writes the state snapshot to local storage.
	PersistLocal CommandKind = "persist-local"

	// PersistRemote reconciles learner data with the remote store.
	PersistRemote CommandKind = "persist-remote"
)

// Command is one requested side effect, carrying the state it refers to.
type Command struct {
	Kind  CommandKind
	State *State
}

// RecordAnswer applies one answered question to the state: every concept
// tag on the question gets an attempt, and a correct answer credits each.
// Returns the updated records and the side-effect commands the caller runs.
func RecordAnswer(s *State, questionTags []string, correct bool) ([]*mastery.Record, []Command) {
	updated := s.Mastery.ApplyAll(questionTags, correct)
	if len(updated) == 0 {
		return nil, nil
	}
	s.UpdatedAt = time.Now().UTC()

	return updated, []Command{
		{Kind: PersistLocal, State: s},
		{Kind: PersistRemote, State: s},
	}
}
