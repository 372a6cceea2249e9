package mastery

import (
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/concept"
)

// Record holds the persisted per-concept answer statistics for one learner.
// One record exists per concept ever encountered; records are created on
// first attempt and never deleted.
type Record struct {
	Key         concept.Key `json:"key"`
	DisplayName string      `json:"displayName"`
	Attempts    int         `json:"attempts"`
	Correct     int         `json:"correct"`
}

// Records is the full mastery map for one (learner, module) pair. It is the
// mutable heart of the persisted funnel state.
type Records map[concept.Key]*Record

// Get returns the record for a key, or nil if the concept was never attempted.
func (rs Records) Get(key concept.Key) *Record {
	return rs[key]
}

// Attempts returns the attempt count for a key, zero for unseen concepts.
func (rs Records) Attempts(key concept.Key) int {
	if r, ok := rs[key]; ok {
		return r.Attempts
	}
	return 0
}

// DisplayNames returns key → display name for every tracked concept.
// Used to seed the concept universe with long-tail history.
func (rs Records) DisplayNames() map[concept.Key]string {
	out := make(map[concept.Key]string, len(rs))
	for k, r := range rs {
		out[k] = r.DisplayName
	}
	return out
}

// Apply records one answered question for one concept label. The label is
// normalized to find or create the record; the raw label becomes the display
// name on first sight. Returns the updated record.
func (rs Records) Apply(label string, correct bool) *Record {
	key := concept.Normalize(label)
	if key == "" {
		return nil
	}

	r, ok := rs[key]
	if !ok {
		r = &Record{Key: key, DisplayName: label}
		rs[key] = r
	}

	r.Attempts++
	if correct {
		r.Correct++
	}
	return r
}

// ApplyAll records one answered question against every concept label tagged
// on it. Binary correctness only; partial credit is not modeled.
func (rs Records) ApplyAll(labels []string, correct bool) []*Record {
	updated := make([]*Record, 0, len(labels))
	for _, label := range labels {
		if r := rs.Apply(label, correct); r != nil {
			updated = append(updated, r)
		}
	}
	return updated
}
