package runtime

import (
	"github.com/aretw0/quizflow/pkg/domain"
)

// Translation keys of the continue action.
const (
	KeyContinueNext   = "onboarding.quizz.buttons.next"
	KeyContinueFinish = "onboarding.quizz.buttons.finish"
)

// Translator resolves a translation key. It must return a usable string for any key.
type Translator func(key string) string

// Render computes the presentation descriptor of a session.
func (m *Machine) Render(s *domain.Session, translate Translator) domain.View {
	count := len(m.quiz.Steps)
	view := domain.View{
		SessionID:   s.ID,
		QuizID:      m.quiz.ID,
		Title:       m.quiz.Title,
		Phase:       s.Phase,
		Outcome:     s.Outcome,
		StepIndex:   s.StepIndex,
		StepCount:   count,
		Progress:    s.StepIndex + 1,
		Score:       s.Score,
		Tone:        domain.TonePrimary,
		Dismissable: m.quiz.IsDismissable() && !s.Finished(),
	}

	if s.Phase == domain.PhaseNotStarted {
		view.Description = m.quiz.Description
	}
	if s.Phase != domain.PhaseInProgress {
		return view
	}

	step := m.quiz.Steps[s.StepIndex]
	view.Question = step.Title
	view.Illustration = step.Illustration
	view.IsLastStep = s.StepIndex+1 >= count
	view.CanContinue = s.Answered()

	key := KeyContinueNext
	if view.IsLastStep {
		key = KeyContinueFinish
	}
	if translate != nil {
		view.ContinueLabel = translate(key)
	} else {
		view.ContinueLabel = key
	}

	view.Choices = make([]domain.ChoiceView, len(step.Choices))
	for i, c := range step.Choices {
		cv := domain.ChoiceView{Index: i, Label: c.Label, Variant: domain.VariantDefault}
		if s.Answered() {
			cv.Selected = *s.Selection == i
			cv.Variant = domain.VariantError
			if c.Correct {
				cv.Variant = domain.VariantSuccess
			}
		}
		view.Choices[i] = cv
	}

	if !s.Answered() {
		return view
	}

	choice := step.Choices[*s.Selection]
	correct := choice.Correct
	view.Answered = true
	view.Correct = &correct
	view.AnswerTitle, view.AnswerExplanation, view.Illustration = resolveAnswer(step, choice)
	view.Tone = domain.ToneError
	if correct {
		view.Tone = domain.ToneSuccess
	}
	return view
}

// resolveAnswer applies the precedence rules of answer texts:
// per-choice override > outcome-specific field > generic field.
func resolveAnswer(step domain.Step, choice domain.Choice) (title, explanation, illustration string) {
	if choice.Correct {
		title = step.CorrectTitle
		explanation = step.CorrectExplanation
		illustration = step.CorrectIllustration
	} else {
		title = step.IncorrectTitle
		explanation = step.IncorrectExplanation
		illustration = step.IncorrectIllustration
	}

	if choice.Title != "" {
		title = choice.Title
	}
	if explanation == "" {
		explanation = step.AnswerExplanation
	}
	if choice.Explanation != "" {
		explanation = choice.Explanation
	}
	if illustration == "" {
		illustration = step.Illustration
	}
	return title, explanation, illustration
}
