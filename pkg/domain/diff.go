package domain

// SessionDiff represents the changes between two sessions.
// It is designed to be serialized to JSON for partial updates on the client.
type SessionDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	Phase     *Phase   `json:"phase,omitempty"`
	Outcome   *Outcome `json:"outcome,omitempty"`
	Started   *bool    `json:"started,omitempty"`
	StepIndex *int     `json:"step_index,omitempty"`
	Score     *int     `json:"score,omitempty"`

	// Selection is set when a choice was recorded.
	Selection *int `json:"selection,omitempty"`
	// SelectionCleared is set when the selection was reset (advance).
	SelectionCleared bool `json:"selection_cleared,omitempty"`

	// Answered contains the answers appended since the old session.
	Answered []Answer `json:"answered,omitempty"`
}

// Diff calculates the difference between oldSession and newSession.
// If oldSession is nil, it returns a diff representing the entire newSession (initial load).
// It returns nil when nothing changed.
func Diff(oldSession, newSession *Session) *SessionDiff {
	if newSession == nil {
		return nil
	}
	diff := &SessionDiff{SessionID: newSession.ID}

	if oldSession == nil {
		diff.Phase = &newSession.Phase
		diff.Started = &newSession.Started
		diff.StepIndex = &newSession.StepIndex
		diff.Score = &newSession.Score
		diff.Selection = newSession.Selection
		if newSession.Outcome != OutcomeNone {
			diff.Outcome = &newSession.Outcome
		}
		if len(newSession.Answers) > 0 {
			diff.Answered = newSession.Answers
		}
		return diff
	}

	if oldSession.Phase != newSession.Phase {
		diff.Phase = &newSession.Phase
	}
	if oldSession.Outcome != newSession.Outcome {
		diff.Outcome = &newSession.Outcome
	}
	if oldSession.Started != newSession.Started {
		diff.Started = &newSession.Started
	}
	if oldSession.StepIndex != newSession.StepIndex {
		diff.StepIndex = &newSession.StepIndex
	}
	if oldSession.Score != newSession.Score {
		diff.Score = &newSession.Score
	}

	switch {
	case oldSession.Selection == nil && newSession.Selection != nil:
		diff.Selection = newSession.Selection
	case oldSession.Selection != nil && newSession.Selection == nil:
		diff.SelectionCleared = true
	case oldSession.Selection != nil && *oldSession.Selection != *newSession.Selection:
		diff.Selection = newSession.Selection
	}

	// History is append-only.
	if len(newSession.Answers) > len(oldSession.Answers) {
		diff.Answered = newSession.Answers[len(oldSession.Answers):]
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SessionDiff) IsEmpty() bool {
	return d.Phase == nil &&
		d.Outcome == nil &&
		d.Started == nil &&
		d.StepIndex == nil &&
		d.Score == nil &&
		d.Selection == nil &&
		!d.SelectionCleared &&
		len(d.Answered) == 0
}
