package domain

import "time"

// Phase defines where a session is in its lifecycle.
type Phase string

const (
	PhaseNotStarted Phase = "not_started" // Start screen is displayed
	PhaseInProgress Phase = "in_progress" // Questions are being answered
	PhaseFinished   Phase = "finished"    // Sink state reached (outcome or dismissal)
)

// Outcome is the terminal result of a session.
type Outcome string

const (
	OutcomeNone   Outcome = ""
	OutcomeWin    Outcome = "win"
	OutcomeLose   Outcome = "lose"
	OutcomeClosed Outcome = "closed" // Dismissed before the last step
)

// Answer records the choice submitted for a step.
type Answer struct {
	Step    int  `json:"step"`
	Choice  int  `json:"choice"`
	Correct bool `json:"correct"`
}

// Session represents the current snapshot of a quiz attempt.
type Session struct {
	ID     string `json:"id"`
	QuizID string `json:"quiz_id,omitempty"`

	Phase   Phase   `json:"phase"`
	Outcome Outcome `json:"outcome,omitempty"`

	// Started becomes true exactly once and never reverts.
	Started bool `json:"started"`
	// StepIndex is the active step, 0 <= StepIndex < len(steps) while in progress.
	StepIndex int `json:"step_index"`
	// Score counts correct answers. It never decreases.
	Score int `json:"score"`
	// Selection is the choice picked for the current step, nil until answered.
	Selection *int `json:"selection,omitempty"`

	// Answers is the append-only history of submitted choices.
	Answers []Answer `json:"answers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a clean session waiting on the start screen.
func NewSession(id, quizID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		QuizID:    quizID,
		Phase:     PhaseNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Answered reports whether the current step already has a selection.
func (s *Session) Answered() bool {
	return s.Selection != nil
}

// Finished reports whether the session reached its sink state.
func (s *Session) Finished() bool {
	return s.Phase == PhaseFinished
}

// Clone returns a deep copy safe for mutation.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	next := *s
	if s.Selection != nil {
		sel := *s.Selection
		next.Selection = &sel
	}
	if s.Answers != nil {
		next.Answers = make([]Answer, len(s.Answers))
		copy(next.Answers, s.Answers)
	}
	return &next
}
