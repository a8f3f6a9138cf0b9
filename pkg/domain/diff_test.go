package domain

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestDiff(t *testing.T) {
	inProgress := PhaseInProgress
	finished := PhaseFinished
	win := OutcomeWin

	tests := []struct {
		name     string
		old      *Session
		new      *Session
		wantDiff *SessionDiff // nil means we expect no diff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new: &Session{
				ID:    "sess-1",
				Phase: PhaseInProgress,
				Score: 1,
			},
			wantDiff: &SessionDiff{
				SessionID: "sess-1",
				Phase:     &inProgress,
				Started:   &[]bool{false}[0],
				StepIndex: intPtr(0),
				Score:     intPtr(1),
			},
		},
		{
			name: "No Changes",
			old:  &Session{ID: "sess-1", Phase: PhaseInProgress, Selection: intPtr(1)},
			new:  &Session{ID: "sess-1", Phase: PhaseInProgress, Selection: intPtr(1)},
		},
		{
			name: "Selection Recorded",
			old:  &Session{ID: "sess-1", Phase: PhaseInProgress},
			new: &Session{
				ID:        "sess-1",
				Phase:     PhaseInProgress,
				Score:     1,
				Selection: intPtr(0),
				Answers:   []Answer{{Step: 0, Choice: 0, Correct: true}},
			},
			wantDiff: &SessionDiff{
				SessionID: "sess-1",
				Score:     intPtr(1),
				Selection: intPtr(0),
				Answered:  []Answer{{Step: 0, Choice: 0, Correct: true}},
			},
		},
		{
			name: "Advance Clears Selection",
			old:  &Session{ID: "sess-1", Phase: PhaseInProgress, Selection: intPtr(0)},
			new:  &Session{ID: "sess-1", Phase: PhaseInProgress, StepIndex: 1},
			wantDiff: &SessionDiff{
				SessionID:        "sess-1",
				StepIndex:        intPtr(1),
				SelectionCleared: true,
			},
		},
		{
			name: "Finished With Outcome",
			old:  &Session{ID: "sess-1", Phase: PhaseInProgress, Selection: intPtr(0)},
			new:  &Session{ID: "sess-1", Phase: PhaseFinished, Outcome: OutcomeWin},
			wantDiff: &SessionDiff{
				SessionID:        "sess-1",
				Phase:            &finished,
				Outcome:          &win,
				SelectionCleared: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.old, tt.new)
			if tt.wantDiff == nil {
				if got != nil {
					t.Errorf("Diff() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Diff() = nil, want %+v", tt.wantDiff)
			}
			if !reflect.DeepEqual(got, tt.wantDiff) {
				gotJSON, _ := json.Marshal(got)
				wantJSON, _ := json.Marshal(tt.wantDiff)
				t.Errorf("Diff() = %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDiffJSONSerialization(t *testing.T) {
	old := &Session{ID: "sess-1", Phase: PhaseInProgress, Selection: intPtr(0)}
	next := &Session{ID: "sess-1", Phase: PhaseInProgress, StepIndex: 1}

	diff := Diff(old, next)
	if diff == nil {
		t.Fatal("Expected diff, got nil")
	}
	bytes, _ := json.Marshal(diff)
	s := string(bytes)
	if strings.Contains(s, `"score"`) {
		t.Errorf("JSON should not contain unchanged 'score', got: %s", s)
	}
	if !strings.Contains(s, `"selection_cleared":true`) {
		t.Errorf("JSON should flag the cleared selection, got: %s", s)
	}
}

func TestSession_Clone(t *testing.T) {
	src := &Session{ID: "a", Selection: intPtr(1), Answers: []Answer{{Step: 0, Choice: 1}}}
	cp := src.Clone()

	*cp.Selection = 0
	cp.Answers[0].Choice = 0

	if *src.Selection != 1 {
		t.Errorf("Clone shares Selection with source")
	}
	if src.Answers[0].Choice != 1 {
		t.Errorf("Clone shares Answers with source")
	}
}

func TestLifecycleHooks_Fire(t *testing.T) {
	var fired []EventType
	record := func(_ context.Context, e *Event) { fired = append(fired, e.Type) }
	hooks := LifecycleHooks{OnWin: record, OnClose: record}

	for _, typ := range []EventType{EventStarted, EventWon, EventLost, EventClosed} {
		hooks.Fire(context.Background(), &Event{Type: typ})
	}

	want := []EventType{EventWon, EventClosed}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, want %v", fired, want)
	}
}

func TestQuiz_IsDismissable(t *testing.T) {
	no := false
	if !(Quiz{}).IsDismissable() {
		t.Error("nil Dismissable must default to true")
	}
	if (Quiz{Dismissable: &no}).IsDismissable() {
		t.Error("explicit false must be honored")
	}
}
