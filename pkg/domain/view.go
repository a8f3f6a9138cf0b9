package domain

// Tone is the background accent of the answer panel.
type Tone string

const (
	TonePrimary Tone = "primary" // No answer yet
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Variant is the visual state of a single choice.
type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
)

// ChoiceView is the presentation of one choice.
type ChoiceView struct {
	Index    int     `json:"index"`
	Label    string  `json:"label"`
	Variant  Variant `json:"variant"`
	Selected bool    `json:"selected,omitempty"`
}

// View is the presentation descriptor of a session.
// It is derived from the session and the quiz on every render and never stored.
type View struct {
	SessionID string `json:"session_id,omitempty"`
	QuizID    string `json:"quiz_id,omitempty"`
	Title     string `json:"title,omitempty"`
	// Description is the quiz introduction, only set on the start screen.
	Description string  `json:"description,omitempty"`
	Phase       Phase   `json:"phase"`
	Outcome     Outcome `json:"outcome,omitempty"`

	StepIndex int `json:"step_index"`
	StepCount int `json:"step_count"`
	// Progress is the human position, StepIndex+1.
	Progress int `json:"progress"`
	Score    int `json:"score"`

	Question string       `json:"question,omitempty"`
	Choices  []ChoiceView `json:"choices,omitempty"`

	Answered          bool   `json:"answered"`
	Correct           *bool  `json:"correct,omitempty"`
	AnswerTitle       string `json:"answer_title,omitempty"`
	AnswerExplanation string `json:"answer_explanation,omitempty"`
	Illustration      string `json:"illustration,omitempty"`
	Tone              Tone   `json:"tone"`

	// ContinueLabel is the localized text of the continue action.
	ContinueLabel string `json:"continue_label,omitempty"`
	// CanContinue is true once the current step is answered.
	CanContinue bool `json:"can_continue"`
	// IsLastStep tells the host that continuing concludes the quiz.
	IsLastStep  bool `json:"is_last_step"`
	Dismissable bool `json:"dismissable"`
}
