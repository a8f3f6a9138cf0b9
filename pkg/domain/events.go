package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStarted    EventType = "started"
	EventStepViewed EventType = "step_viewed"
	EventChoiceMade EventType = "choice_made"
	EventWon        EventType = "won"
	EventLost       EventType = "lost"
	EventClosed     EventType = "closed"
)

// Event is a notification emitted by a transition.
// Its JSON shape is the telemetry contract: {event, step_index, correct?}.
type Event struct {
	Type      EventType `json:"event"`
	SessionID string    `json:"session_id,omitempty"`
	QuizID    string    `json:"quiz_id,omitempty"`
	StepIndex int       `json:"step_index"`
	Correct   *bool     `json:"correct,omitempty"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// IsOutcome reports whether the event decides the quiz (win or lose).
func (e Event) IsOutcome() bool {
	return e.Type == EventWon || e.Type == EventLost
}

// LifecycleHooks defines callbacks for flow observability.
// Every field is optional.
type LifecycleHooks struct {
	OnStart    func(context.Context, *Event)
	OnStepView func(context.Context, *Event)
	OnChoice   func(context.Context, *Event)
	OnWin      func(context.Context, *Event)
	OnLose     func(context.Context, *Event)
	OnClose    func(context.Context, *Event)
}

// Fire invokes the hook matching the event type, if any.
func (h LifecycleHooks) Fire(ctx context.Context, e *Event) {
	var fn func(context.Context, *Event)
	switch e.Type {
	case EventStarted:
		fn = h.OnStart
	case EventStepViewed:
		fn = h.OnStepView
	case EventChoiceMade:
		fn = h.OnChoice
	case EventWon:
		fn = h.OnWin
	case EventLost:
		fn = h.OnLose
	case EventClosed:
		fn = h.OnClose
	}
	if fn != nil {
		fn(ctx, e)
	}
}
