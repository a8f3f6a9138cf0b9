package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/quizflow/pkg/adapters/sqlite"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, newStore(t, filepath.Join(t.TempDir(), "sessions.db")))
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sessions.db")
	ctx := context.Background()

	first, err := sqlite.New(ctx, path)
	require.NoError(t, err)
	s := domain.NewSession("persisted", "quiz")
	s.Score = 3
	require.NoError(t, first.Save(ctx, s.ID, s))
	require.NoError(t, first.Close())

	second := newStore(t, path)
	loaded, err := second.Load(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Score)
	assert.Equal(t, "quiz", loaded.QuizID)
}
