package domain

// Choice is one possible answer to a Step.
type Choice struct {
	// Label is the displayed text.
	Label string `json:"label" yaml:"label" mapstructure:"label"`
	// Correct marks this choice as a right answer.
	Correct bool `json:"correct" yaml:"correct" mapstructure:"correct"`
	// Title overrides the step's correct/incorrect title when this choice is picked.
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	// Explanation overrides every step-level explanation when this choice is picked.
	Explanation string `json:"explanation,omitempty" yaml:"explanation,omitempty" mapstructure:"explanation"`
}

// Step is a single question of a quiz.
type Step struct {
	Title   string   `json:"title" yaml:"title" mapstructure:"title"`
	Choices []Choice `json:"choices" yaml:"choices" mapstructure:"choices"`

	// Illustration is the default illustration reference (asset name, URL...).
	Illustration string `json:"illustration,omitempty" yaml:"illustration,omitempty" mapstructure:"illustration"`
	// AnswerExplanation is displayed on any answer unless a more specific text exists.
	AnswerExplanation string `json:"answer_explanation,omitempty" yaml:"answer_explanation,omitempty" mapstructure:"answer_explanation"`

	CorrectTitle        string `json:"correct_title" yaml:"correct_title" mapstructure:"correct_title"`
	CorrectExplanation  string `json:"correct_explanation,omitempty" yaml:"correct_explanation,omitempty" mapstructure:"correct_explanation"`
	CorrectIllustration string `json:"correct_illustration,omitempty" yaml:"correct_illustration,omitempty" mapstructure:"correct_illustration"`

	IncorrectTitle        string `json:"incorrect_title" yaml:"incorrect_title" mapstructure:"incorrect_title"`
	IncorrectExplanation  string `json:"incorrect_explanation,omitempty" yaml:"incorrect_explanation,omitempty" mapstructure:"incorrect_explanation"`
	IncorrectIllustration string `json:"incorrect_illustration,omitempty" yaml:"incorrect_illustration,omitempty" mapstructure:"incorrect_illustration"`
}

// HasCorrectChoice reports whether at least one choice is marked correct.
func (s Step) HasCorrectChoice() bool {
	for _, c := range s.Choices {
		if c.Correct {
			return true
		}
	}
	return false
}

// Quiz is a named, ordered deck of steps.
type Quiz struct {
	ID    string `json:"id" yaml:"id" mapstructure:"id"`
	Title string `json:"title" yaml:"title" mapstructure:"title"`
	// Description is optional markdown shown on the start screen.
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Steps       []Step `json:"steps" yaml:"steps" mapstructure:"steps"`
	// Dismissable controls whether the quiz can be closed before the end.
	// Nil means true.
	Dismissable *bool `json:"dismissable,omitempty" yaml:"dismissable,omitempty" mapstructure:"dismissable"`
}

// IsDismissable resolves the Dismissable default.
func (q Quiz) IsDismissable() bool {
	return q.Dismissable == nil || *q.Dismissable
}
