package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/quizflow/pkg/domain"
)

// Loader implements ports.QuizLoader over quizzes held in memory.
type Loader struct {
	quizzes map[string]domain.Quiz
}

// NewLoader creates a loader serving the given quizzes, keyed by their ID.
func NewLoader(quizzes ...domain.Quiz) (*Loader, error) {
	l := &Loader{quizzes: make(map[string]domain.Quiz, len(quizzes))}
	for _, q := range quizzes {
		if q.ID == "" {
			return nil, fmt.Errorf("quiz %q missing ID", q.Title)
		}
		if _, dup := l.quizzes[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz ID %q", q.ID)
		}
		l.quizzes[q.ID] = q
	}
	return l, nil
}

// Load returns the quiz with the given ID.
func (l *Loader) Load(ctx context.Context, quizID string) (domain.Quiz, error) {
	q, ok := l.quizzes[quizID]
	if !ok {
		return domain.Quiz{}, fmt.Errorf("%w: %s", domain.ErrQuizNotFound, quizID)
	}
	return q, nil
}

// List returns all quiz IDs, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.quizzes))
	for k := range l.quizzes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
