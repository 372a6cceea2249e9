package funnel

import (
	"testing"
)

func TestRecordAnswerUpdatesEveryTag(t *testing.T) {
	state := NewState("u1", "cardio")

	updated, cmds := RecordAnswer(state, []string{"Heart Failure", "Pulmonary Edema"}, true)

	if len(updated) != 2 {
		t.Fatalf("updated records = %d, want 2", len(updated))
	}
	r := state.Mastery.Get("heart failure")
	if r == nil || r.Attempts != 1 || r.Correct != 1 {
		t.Errorf("heart failure record = %+v, want attempts=1 correct=1", r)
	}
	if len(cmds) != 2 {
		t.Fatalf("commands = %d, want 2", len(cmds))
	}
	if cmds[0].Kind != PersistLocal || cmds[1].Kind != PersistRemote {
		t.Errorf("command kinds = %s, %s", cmds[0].Kind, cmds[1].Kind)
	}
	for _, cmd := range cmds {
		if cmd.State != state {
			t.Error("command does not carry the mutated state")
		}
	}
}

func TestRecordAnswerIncorrect(t *testing.T) {
	state := NewState("u1", "cardio")

	RecordAnswer(state, []string{"Sepsis"}, false)
	RecordAnswer(state, []string{"Sepsis"}, false)
	RecordAnswer(state, []string{"Sepsis"}, true)

	r := state.Mastery.Get("sepsis")
	if r == nil {
		t.Fatal("no record for sepsis")
	}
	if r.Attempts != 3 || r.Correct != 1 {
		t.Errorf("record = attempts=%d correct=%d, want 3/1", r.Attempts, r.Correct)
	}
}

func TestRecordAnswerNoTagsNoCommands(t *testing.T) {
	state := NewState("u1", "cardio")

	updated, cmds := RecordAnswer(state, nil, true)
	if updated != nil || cmds != nil {
		t.Errorf("want no updates and no commands, got %v, %v", updated, cmds)
	}
}

func TestStateEncodeDecodeRoundTrip(t *testing.T) {
	state := NewState("u1", "cardio")
	RecordAnswer(state, []string{"Heart Failure"}, true)
	RecordAnswer(state, []string{"Heart Failure"}, false)

	data, err := state.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	restored, err := DecodeState(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if restored.LearnerID != "u1" || restored.ModuleID != "cardio" {
		t.Errorf("scope = %s/%s, want u1/cardio", restored.LearnerID, restored.ModuleID)
	}
	r := restored.Mastery.Get("heart failure")
	if r == nil || r.Attempts != 2 || r.Correct != 1 {
		t.Errorf("restored record = %+v, want attempts=2 correct=1", r)
	}
	if r != nil && r.DisplayName != "Heart Failure" {
		t.Errorf("display name = %q, want %q", r.DisplayName, "Heart Failure")
	}
}

func TestDecodeStateEmptySnapshot(t *testing.T) {
	restored, err := DecodeState([]byte(`{"learnerId":"u1","moduleId":"cardio"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if restored.Mastery == nil {
		t.Error("mastery map is nil, want empty map")
	}
}
