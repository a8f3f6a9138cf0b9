package dsl

import "github.com/aretw0/quizflow/pkg/domain"

// StepBuilder provides a fluent API for configuring a step.
// Step and Quiz return to the deck, so steps chain naturally.
type StepBuilder struct {
	builder *Builder
	index   int
	choice  int
}

func (s *StepBuilder) step() *domain.Step {
	return &s.builder.quiz.Steps[s.index]
}

// Choice appends an answer. Following Correct, Title and Feedback calls apply to it.
func (s *StepBuilder) Choice(label string) *StepBuilder {
	st := s.step()
	st.Choices = append(st.Choices, domain.Choice{Label: label})
	s.choice = len(st.Choices) - 1
	return s
}

// Correct marks the last choice as a correct answer.
func (s *StepBuilder) Correct() *StepBuilder {
	if c := s.lastChoice(); c != nil {
		c.Correct = true
	}
	return s
}

// Feedback overrides the answer title and explanation when the last choice is picked.
func (s *StepBuilder) Feedback(title, explanation string) *StepBuilder {
	if c := s.lastChoice(); c != nil {
		c.Title = title
		c.Explanation = explanation
	}
	return s
}

// Explain sets the explanation shown after any answer.
func (s *StepBuilder) Explain(text string) *StepBuilder {
	s.step().AnswerExplanation = text
	return s
}

// OnCorrect sets the title and explanation of a correct answer.
func (s *StepBuilder) OnCorrect(title, explanation string) *StepBuilder {
	st := s.step()
	st.CorrectTitle = title
	st.CorrectExplanation = explanation
	return s
}

// OnIncorrect sets the title and explanation of an incorrect answer.
func (s *StepBuilder) OnIncorrect(title, explanation string) *StepBuilder {
	st := s.step()
	st.IncorrectTitle = title
	st.IncorrectExplanation = explanation
	return s
}

// Illustration sets the default illustration of the step.
func (s *StepBuilder) Illustration(ref string) *StepBuilder {
	s.step().Illustration = ref
	return s
}

// Step appends the next question.
func (s *StepBuilder) Step(question string) *StepBuilder {
	return s.builder.Step(question)
}

// Quiz finishes the deck.
func (s *StepBuilder) Quiz() domain.Quiz {
	return s.builder.Quiz()
}

// Deck returns the deck builder.
func (s *StepBuilder) Deck() *Builder {
	return s.builder
}

func (s *StepBuilder) lastChoice() *domain.Choice {
	st := s.step()
	if len(st.Choices) == 0 {
		return nil
	}
	return &st.Choices[s.choice]
}
