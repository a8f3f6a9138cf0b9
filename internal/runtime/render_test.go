package runtime_test

import (
	"testing"

	"github.com/aretw0/quizflow/internal/runtime"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(key string) string {
	switch key {
	case runtime.KeyContinueNext:
		return "Next"
	case runtime.KeyContinueFinish:
		return "Finish"
	}
	return key
}

func TestRender_StartScreen(t *testing.T) {
	m := newMachine(t, newDeck(2))
	view := m.Render(domain.NewSession("s", "deck"), labels)

	assert.Equal(t, domain.PhaseNotStarted, view.Phase)
	assert.Empty(t, view.Question)
	assert.Empty(t, view.Choices)
	assert.Equal(t, domain.TonePrimary, view.Tone)
	assert.True(t, view.Dismissable)
}

func TestRender_ContinueLabel(t *testing.T) {
	m := newMachine(t, newDeck(2))
	s := m.Start(domain.NewSession("s", "deck")).Session

	view := m.Render(s, labels)
	assert.Equal(t, "Next", view.ContinueLabel)
	assert.False(t, view.IsLastStep)
	assert.False(t, view.CanContinue)
	assert.Equal(t, 1, view.Progress)

	sel, err := m.Select(s, 0, 0)
	require.NoError(t, err)
	s = m.Advance(sel.Session).Session

	view = m.Render(s, labels)
	assert.Equal(t, "Finish", view.ContinueLabel)
	assert.True(t, view.IsLastStep)

	t.Run("Nil Translator Falls Back To Key", func(t *testing.T) {
		view := m.Render(s, nil)
		assert.Equal(t, runtime.KeyContinueFinish, view.ContinueLabel)
	})
}

func TestRender_AnsweredStep(t *testing.T) {
	m := newMachine(t, newDeck(2))
	s := m.Start(domain.NewSession("s", "deck")).Session
	sel, err := m.Select(s, 0, 1)
	require.NoError(t, err)

	view := m.Render(sel.Session, labels)
	assert.True(t, view.Answered)
	assert.True(t, view.CanContinue)
	require.NotNil(t, view.Correct)
	assert.False(t, *view.Correct)
	assert.Equal(t, domain.ToneError, view.Tone)
	assert.Equal(t, "Not quite", view.AnswerTitle)

	require.Len(t, view.Choices, 2)
	assert.Equal(t, domain.VariantSuccess, view.Choices[0].Variant)
	assert.Equal(t, domain.VariantError, view.Choices[1].Variant)
	assert.True(t, view.Choices[1].Selected)
	assert.False(t, view.Choices[0].Selected)
}

func TestRender_AnswerTextPrecedence(t *testing.T) {
	base := domain.Step{
		Title:                 "Q",
		Illustration:          "default.png",
		AnswerExplanation:     "generic",
		CorrectTitle:          "Correct",
		CorrectExplanation:    "correct field",
		CorrectIllustration:   "correct.png",
		IncorrectTitle:        "Incorrect",
		IncorrectExplanation:  "",
		IncorrectIllustration: "",
	}

	tests := []struct {
		name         string
		choice       domain.Choice
		title        string
		explanation  string
		illustration string
	}{
		{
			name:         "Correct Field",
			choice:       domain.Choice{Label: "a", Correct: true},
			title:        "Correct",
			explanation:  "correct field",
			illustration: "correct.png",
		},
		{
			name:         "Generic Fallback",
			choice:       domain.Choice{Label: "b"},
			title:        "Incorrect",
			explanation:  "generic",
			illustration: "default.png",
		},
		{
			name:         "Choice Override",
			choice:       domain.Choice{Label: "c", Correct: true, Title: "Spot on", Explanation: "because"},
			title:        "Spot on",
			explanation:  "because",
			illustration: "correct.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := base
			step.Choices = []domain.Choice{tt.choice}
			m := newMachine(t, domain.Quiz{ID: "deck", Steps: []domain.Step{step}})

			s := m.Start(domain.NewSession("s", "deck")).Session
			sel, err := m.Select(s, 0, 0)
			require.NoError(t, err)

			view := m.Render(sel.Session, labels)
			assert.Equal(t, tt.title, view.AnswerTitle)
			assert.Equal(t, tt.explanation, view.AnswerExplanation)
			assert.Equal(t, tt.illustration, view.Illustration)
		})
	}
}

func TestRender_Dismissable(t *testing.T) {
	quiz := newDeck(1)
	no := false
	quiz.Dismissable = &no
	m := newMachine(t, quiz)
	assert.False(t, m.Render(domain.NewSession("s", "deck"), labels).Dismissable)

	open := newMachine(t, newDeck(1))
	s, _ := play(t, open, []int{0})
	view := open.Render(s, labels)
	assert.False(t, view.Dismissable, "finished sessions cannot be closed")
	assert.Equal(t, domain.OutcomeWin, view.Outcome)
}
