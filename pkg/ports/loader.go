package ports

import (
	"context"

	"github.com/aretw0/quizflow/pkg/domain"
)

// QuizLoader defines how quiz decks are retrieved.
// This allows the definition source (files, Loam, Memory) to be decoupled.
type QuizLoader interface {
	// Load returns the quiz with the given ID.
	// Returns domain.ErrQuizNotFound if no such quiz exists.
	Load(ctx context.Context, quizID string) (domain.Quiz, error)

	// List returns the IDs of all available quizzes.
	List(ctx context.Context) ([]string, error)
}
