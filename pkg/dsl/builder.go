package dsl

import (
	"fmt"

	"github.com/aretw0/quizflow/pkg/adapters/memory"
	"github.com/aretw0/quizflow/pkg/domain"
)

// Builder manages the deck construction.
type Builder struct {
	quiz domain.Quiz
}

// New creates a new deck builder.
func New(id string) *Builder {
	return &Builder{quiz: domain.Quiz{ID: id}}
}

// Title sets the deck title.
func (b *Builder) Title(title string) *Builder {
	b.quiz.Title = title
	return b
}

// Description sets the text of the start screen.
func (b *Builder) Description(text string) *Builder {
	b.quiz.Description = text
	return b
}

// Dismissable controls whether the quiz can be closed before the end.
func (b *Builder) Dismissable(dismissable bool) *Builder {
	b.quiz.Dismissable = &dismissable
	return b
}

// Step appends a question and returns its builder.
func (b *Builder) Step(question string) *StepBuilder {
	b.quiz.Steps = append(b.quiz.Steps, domain.Step{Title: question})
	return &StepBuilder{builder: b, index: len(b.quiz.Steps) - 1}
}

// Quiz returns the deck as built. It is not validated.
func (b *Builder) Quiz() domain.Quiz {
	q := b.quiz
	q.Steps = make([]domain.Step, len(b.quiz.Steps))
	for i, s := range b.quiz.Steps {
		s.Choices = append([]domain.Choice(nil), s.Choices...)
		q.Steps[i] = s
	}
	return q
}

// Build compiles one or more decks into a memory loader, validating IDs.
func Build(builders ...*Builder) (*memory.Loader, error) {
	quizzes := make([]domain.Quiz, 0, len(builders))
	for _, b := range builders {
		quizzes = append(quizzes, b.Quiz())
	}

	loader, err := memory.NewLoader(quizzes...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}
