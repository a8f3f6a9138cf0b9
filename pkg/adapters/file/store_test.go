package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/quizflow/pkg/adapters/file"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", domain.NewSession("abc", "quiz")))
	assert.FileExists(t, filepath.Join(dir, "abc.json"))

	// Leftover temp files from a crashed write are not sessions.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-xyz-123.json"), []byte("{"), 0o644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)
}

func TestFileStore_Overwrite(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	s := domain.NewSession("abc", "quiz")
	require.NoError(t, store.Save(ctx, "abc", s))
	s.Score = 2
	require.NoError(t, store.Save(ctx, "abc", s))

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Score)
}

func TestFileStore_InvalidIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", "a/b", ".."} {
		assert.Error(t, store.Save(ctx, id, domain.NewSession(id, "quiz")), id)
		_, err := store.Load(ctx, id)
		assert.Error(t, err, id)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
