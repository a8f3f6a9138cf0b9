package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		selection := 1
		session := domain.NewSession(sessionID, "onboarding")
		session.Started = true
		session.Phase = domain.PhaseInProgress
		session.StepIndex = 2
		session.Score = 1
		session.Selection = &selection
		session.Answers = []domain.Answer{
			{Step: 0, Choice: 0, Correct: true},
			{Step: 1, Choice: 1, Correct: false},
			{Step: 2, Choice: 1, Correct: false},
		}

		err := store.Save(ctx, sessionID, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "onboarding", loaded.QuizID)
		assert.Equal(t, domain.PhaseInProgress, loaded.Phase)
		assert.True(t, loaded.Started)
		assert.Equal(t, 2, loaded.StepIndex)
		assert.Equal(t, 1, loaded.Score)
		require.NotNil(t, loaded.Selection)
		assert.Equal(t, 1, *loaded.Selection)
		assert.Equal(t, session.Answers, loaded.Answers)
	})

	t.Run("Load Returns A Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Score = 99

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotEqual(t, 99, again.Score, "mutating a loaded session must not affect the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID, "onboarding"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1, "onboarding"))
		_ = store.Save(ctx, id2, domain.NewSession(id2, "onboarding"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
