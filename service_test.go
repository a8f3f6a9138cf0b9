package quizflow_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/pkg/adapters/memory"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, opts ...quizflow.ServiceOption) (*quizflow.Service, *memory.Store) {
	t.Helper()
	no := false
	loader, err := memory.NewLoader(
		domain.Quiz{ID: "onboarding", Title: "Onboarding", Steps: steps(3)},
		domain.Quiz{ID: "locked", Title: "Locked", Steps: steps(1), Dismissable: &no},
	)
	require.NoError(t, err)

	store := memory.NewStore()
	seq := 0
	opts = append([]quizflow.ServiceOption{
		quizflow.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("session-%d", seq)
		}),
	}, opts...)
	return quizflow.NewService(loader, session.NewManager(store), opts...), store
}

func TestService_Quizzes(t *testing.T) {
	svc, _ := newService(t)

	quizzes, err := svc.Quizzes(context.Background())
	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, quizflow.QuizSummary{ID: "locked", Title: "Locked", Steps: 1, Dismissable: false}, quizzes[0])
	assert.Equal(t, quizflow.QuizSummary{ID: "onboarding", Title: "Onboarding", Steps: 3, Dismissable: true}, quizzes[1])
}

func TestService_OpenUnknownQuiz(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)
}

func TestService_FullRun(t *testing.T) {
	var wins int
	svc, store := newService(t, quizflow.WithServiceHooks(domain.LifecycleHooks{
		OnWin: func(context.Context, *domain.Event) { wins++ },
	}))
	ctx := context.Background()

	opened, err := svc.Open(ctx, "onboarding")
	require.NoError(t, err)
	id := opened.View.SessionID
	assert.Equal(t, "session-1", id)
	assert.Equal(t, domain.PhaseNotStarted, opened.View.Phase)
	require.NotNil(t, opened.Diff)

	started, err := svc.Start(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Question 1", started.View.Question)
	require.NotNil(t, started.Diff.Started)
	assert.True(t, *started.Diff.Started)

	var last quizflow.Response
	for step := 0; step < 3; step++ {
		sel, err := svc.Select(ctx, id, step, 0)
		require.NoError(t, err)
		assert.True(t, sel.View.Answered)
		require.Len(t, sel.Diff.Answered, 1)

		last, err = svc.Advance(ctx, id)
		require.NoError(t, err)
	}

	assert.Equal(t, domain.OutcomeWin, last.View.Outcome)
	assert.Equal(t, 3, last.View.Score)
	require.Len(t, last.Events, 2)
	assert.Equal(t, domain.EventWon, last.Events[0].Type)
	assert.Equal(t, domain.EventClosed, last.Events[1].Type)
	assert.Equal(t, 1, wins)

	// Finished sessions are torn down.
	_, err = svc.View(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestService_IgnoredOperations(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "onboarding")
	require.NoError(t, err)
	id := opened.View.SessionID

	res, err := svc.Advance(ctx, id)
	require.NoError(t, err, "advance before start is a no-op")
	assert.Nil(t, res.Diff)
	assert.Empty(t, res.Events)

	_, err = svc.Start(ctx, id)
	require.NoError(t, err)

	res, err = svc.Select(ctx, id, 2, 0)
	require.NoError(t, err, "answering a step that is not displayed is a no-op")
	assert.Nil(t, res.Diff)

	_, err = svc.Select(ctx, id, 0, 1)
	require.NoError(t, err)
	res, err = svc.Select(ctx, id, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, res.Diff, "first answer wins")
	assert.Equal(t, 0, res.View.Score)
}

func TestService_SelectOutOfRange(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "onboarding")
	require.NoError(t, err)
	id := opened.View.SessionID
	_, err = svc.Start(ctx, id)
	require.NoError(t, err)

	_, err = svc.Select(ctx, id, 0, 9)
	var oor *domain.OutOfRangeError
	require.ErrorAs(t, err, &oor)

	view, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.False(t, view.Answered)
}

func TestService_Close(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	opened, err := svc.Open(ctx, "onboarding")
	require.NoError(t, err)
	res, err := svc.Close(ctx, opened.View.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeClosed, res.View.Outcome)

	locked, err := svc.Open(ctx, "locked")
	require.NoError(t, err)
	assert.False(t, locked.View.Dismissable)
	_, err = svc.Close(ctx, locked.View.SessionID)
	assert.True(t, errors.Is(err, domain.ErrNotDismissable))

	view, err := svc.View(ctx, locked.View.SessionID)
	require.NoError(t, err, "a rejected close keeps the session")
	assert.Equal(t, domain.PhaseNotStarted, view.Phase)
}

func TestService_UnknownSession(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Start(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestService_LocalizerPanicsAreSwallowed(t *testing.T) {
	svc, _ := newService(t, quizflow.WithServiceLocalizer(explodingLocalizer{}))
	ctx := context.Background()

	opened, err := svc.Open(ctx, "onboarding")
	require.NoError(t, err)
	id := opened.View.SessionID

	var started quizflow.Response
	assert.NotPanics(t, func() {
		started, err = svc.Start(ctx, id)
	})
	require.NoError(t, err)
	assert.Equal(t, "onboarding.quizz.buttons.next", started.View.ContinueLabel)

	_, err = svc.Select(ctx, id, 0, 0)
	require.NoError(t, err)
	view, err := svc.View(ctx, id)
	require.NoError(t, err)
	assert.True(t, view.Answered)
}

// countingLoader serves one deck and counts reads.
type countingLoader struct {
	quiz  domain.Quiz
	loads int
}

func (l *countingLoader) Load(ctx context.Context, quizID string) (domain.Quiz, error) {
	if quizID != l.quiz.ID {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	l.loads++
	return l.quiz, nil
}

func (l *countingLoader) List(ctx context.Context) ([]string, error) {
	return []string{l.quiz.ID}, nil
}

func TestService_DeckIsPinnedAfterFirstLoad(t *testing.T) {
	loader := &countingLoader{quiz: domain.Quiz{ID: "onboarding", Steps: steps(2)}}
	svc := quizflow.NewService(loader, session.NewManager(memory.NewStore()))
	ctx := context.Background()

	first, err := svc.Open(ctx, "onboarding")
	require.NoError(t, err)

	loader.quiz.Steps = steps(5)
	second, err := svc.Open(ctx, "onboarding")
	require.NoError(t, err)

	assert.Equal(t, 1, loader.loads)
	assert.Equal(t, 2, first.View.StepCount)
	assert.Equal(t, 2, second.View.StepCount)
}
