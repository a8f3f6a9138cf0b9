package runtime

import (
	"time"

	"github.com/aretw0/quizflow/pkg/domain"
)

// Result is the outcome of a transition: the next session plus the events it emitted.
// Transitions never mutate the session they receive.
type Result struct {
	Session *domain.Session
	Events  []domain.Event
	// Rejected is set when the operation was ignored. Session is then the input, unchanged.
	Rejected *domain.InvalidTransitionError
}

// Applied reports whether the transition changed the session.
func (r Result) Applied() bool {
	return r.Rejected == nil
}

// Machine is the quiz state machine.
// It holds a validated quiz and computes transitions over sessions.
type Machine struct {
	quiz domain.Quiz
	now  func() time.Time
}

// Option configures the Machine.
type Option func(*Machine)

// WithClock overrides the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// NewMachine validates the quiz and creates a machine for it.
// It fails with *domain.ConfigurationError on invalid decks.
func NewMachine(quiz domain.Quiz, opts ...Option) (*Machine, []string, error) {
	warnings, err := Validate(quiz)
	if err != nil {
		return nil, nil, err
	}
	m := &Machine{
		quiz: quiz,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, warnings, nil
}

// Quiz returns the deck driven by this machine.
func (m *Machine) Quiz() domain.Quiz {
	return m.quiz
}

// StepCount returns the number of steps.
func (m *Machine) StepCount() int {
	return len(m.quiz.Steps)
}

// Start leaves the start screen. Calling it again is ignored.
func (m *Machine) Start(current *domain.Session) Result {
	if current.Started || current.Phase != domain.PhaseNotStarted {
		return m.reject(current, "start", "already started")
	}

	next := current.Clone()
	next.Started = true
	next.Phase = domain.PhaseInProgress
	next.StepIndex = 0
	next.Score = 0
	next.Selection = nil
	m.touch(next)

	return Result{
		Session: next,
		Events: []domain.Event{
			m.event(next, domain.EventStarted, nil),
			m.event(next, domain.EventStepViewed, nil),
		},
	}
}

// Select records the answer for the current step. The first answer wins.
// An index outside the step's choices fails with *domain.OutOfRangeError and leaves the session untouched.
func (m *Machine) Select(current *domain.Session, stepIndex, choiceIndex int) (Result, error) {
	if current.Phase != domain.PhaseInProgress {
		return m.reject(current, "select", "quiz is not in progress"), nil
	}
	if stepIndex != current.StepIndex {
		return m.reject(current, "select", "answer targets a step that is not displayed"), nil
	}

	choices := m.quiz.Steps[current.StepIndex].Choices
	if choiceIndex < 0 || choiceIndex >= len(choices) {
		return Result{}, &domain.OutOfRangeError{
			StepIndex:   current.StepIndex,
			ChoiceIndex: choiceIndex,
			Count:       len(choices),
		}
	}

	if current.Answered() {
		return m.reject(current, "select", "step already answered"), nil
	}

	correct := choices[choiceIndex].Correct

	next := current.Clone()
	next.Selection = &choiceIndex
	if correct {
		next.Score++
	}
	next.Answers = append(next.Answers, domain.Answer{
		Step:    current.StepIndex,
		Choice:  choiceIndex,
		Correct: correct,
	})
	m.touch(next)

	return Result{
		Session: next,
		Events:  []domain.Event{m.event(next, domain.EventChoiceMade, &correct)},
	}, nil
}

// Advance moves past an answered step.
// On the last step it concludes the quiz: win only on a perfect score.
func (m *Machine) Advance(current *domain.Session) Result {
	if current.Phase != domain.PhaseInProgress {
		return m.reject(current, "advance", "quiz is not in progress")
	}
	if !current.Answered() {
		return m.reject(current, "advance", "current step has no answer")
	}

	next := current.Clone()
	next.Selection = nil
	m.touch(next)

	if next.StepIndex >= len(m.quiz.Steps)-1 {
		next.Phase = domain.PhaseFinished
		outcome := domain.EventLost
		next.Outcome = domain.OutcomeLose
		if next.Score == len(m.quiz.Steps) {
			outcome = domain.EventWon
			next.Outcome = domain.OutcomeWin
		}
		return Result{
			Session: next,
			Events: []domain.Event{
				m.event(next, outcome, nil),
				m.event(next, domain.EventClosed, nil),
			},
		}
	}

	next.StepIndex++
	return Result{
		Session: next,
		Events:  []domain.Event{m.event(next, domain.EventStepViewed, nil)},
	}
}

// Close dismisses the quiz without deciding an outcome.
// It fails with domain.ErrNotDismissable when the quiz forbids it.
func (m *Machine) Close(current *domain.Session) (Result, error) {
	if !m.quiz.IsDismissable() {
		return Result{}, domain.ErrNotDismissable
	}
	if current.Finished() {
		return m.reject(current, "close", "quiz already finished"), nil
	}

	next := current.Clone()
	next.Phase = domain.PhaseFinished
	next.Outcome = domain.OutcomeClosed
	next.Selection = nil
	m.touch(next)

	return Result{
		Session: next,
		Events:  []domain.Event{m.event(next, domain.EventClosed, nil)},
	}, nil
}

func (m *Machine) reject(current *domain.Session, op, reason string) Result {
	return Result{
		Session: current,
		Rejected: &domain.InvalidTransitionError{
			Op:     op,
			Phase:  current.Phase,
			Reason: reason,
		},
	}
}

func (m *Machine) touch(s *domain.Session) {
	s.UpdatedAt = m.now().UTC()
}

func (m *Machine) event(s *domain.Session, typ domain.EventType, correct *bool) domain.Event {
	return domain.Event{
		Type:      typ,
		SessionID: s.ID,
		QuizID:    s.QuizID,
		StepIndex: s.StepIndex,
		Correct:   correct,
		Score:     s.Score,
		Timestamp: s.UpdatedAt,
	}
}
