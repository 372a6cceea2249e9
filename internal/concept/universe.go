package concept

import "sort"

// GuideConcept is a concept label as extracted from a study guide, together
// with the free text it was derived from. The text is carried for prompt
// context only; the label is what gets tracked.
type GuideConcept struct {
	Label string
	Text  string
}

// Universe is the full set of trackable concepts for one guide: every
// guide-derived concept plus every concept the learner has history on.
// It is ephemeral and recomputed per request, never persisted.
type Universe struct {
	names map[Key]string
}

// BuildUniverse merges guide-derived concepts with already-tracked keys.
//
// Guide labels are normalized and inserted in input order; when two labels
// normalize to the same key, the first-encountered display name wins.
// Keys present in tracked but absent from the guide are then added, so
// concepts the learner was tested on before stay selectable even when the
// current guide no longer emphasizes them.
func BuildUniverse(guide []GuideConcept, tracked map[Key]string) Universe {
	u := Universe{names: make(map[Key]string, len(guide)+len(tracked))}

	for _, gc := range guide {
		key := Normalize(gc.Label)
		if key == "" {
			continue
		}
		if _, exists := u.names[key]; !exists {
			u.names[key] = gc.Label
		}
	}

	for key, name := range tracked {
		if key == "" {
			continue
		}
		if _, exists := u.names[key]; !exists {
			u.names[key] = name
		}
	}

	return u
}

// Len returns the number of distinct concepts in the universe.
func (u Universe) Len() int { return len(u.names) }

// Contains reports whether the universe tracks the given key.
func (u Universe) Contains(key Key) bool {
	_, ok := u.names[key]
	return ok
}

// DisplayName returns the display form for a key, or the key itself when
// the universe has no entry for it.
func (u Universe) DisplayName(key Key) string {
	if name, ok := u.names[key]; ok {
		return name
	}
	return string(key)
}

// Keys returns all keys in lexical order. Sorted iteration keeps downstream
// selection deterministic under a fixed random seed.
func (u Universe) Keys() []Key {
	keys := make([]Key, 0, len(u.names))
	for k := range u.names {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
