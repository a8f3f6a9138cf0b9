package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/quizflow/internal/config"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDeck = `
title: Capitals
steps:
  - title: Capital of France?
    choices:
      - label: Paris
        correct: true
      - label: Lyon
`

const warningDeck = `
title: Opinions
steps:
  - title: Favourite color?
    choices:
      - label: Blue
      - label: Red
`

const brokenDeck = `
title: Empty
steps: []
`

func TestReport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "capitals.yaml"), []byte(validDeck), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "opinions.yml"), []byte(warningDeck), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte(brokenDeck), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	decks, err := collectDecks(t.Context(), dir, "files")
	require.NoError(t, err)
	require.Len(t, decks, 3)

	var out bytes.Buffer
	failed := report(&out, decks)
	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "✓ "+filepath.Join(dir, "capitals.yaml")+" (capitals, 1 steps)")
	assert.Contains(t, out.String(), "✗ "+filepath.Join(dir, "empty.yaml"))
	assert.Contains(t, out.String(), "⚠")
}

func TestCollectDecks_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capitals.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"Capitals","steps":[{"title":"Q","choices":[{"label":"A","correct":true}]}]}`), 0o644))

	decks, err := collectDecks(t.Context(), path, "files")
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.NoError(t, decks[0].err)
	assert.Equal(t, "capitals", decks[0].quiz.ID)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "quizflow version")
}

func TestGraphCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capitals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validDeck), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"graph", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "graph TD")
	assert.Contains(t, out.String(), "✓ Paris")
	assert.Contains(t, out.String(), `step_0 -- "all correct" --> win`)
}

func TestResolveQuiz_ByID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "capitals.yaml"), []byte(validDeck), 0o644))

	quiz, err := resolveQuiz(t.Context(), config.QuizzesConfig{Dir: dir, Format: config.FormatFiles}, "capitals")
	require.NoError(t, err)
	assert.Equal(t, "Capitals", quiz.Title)

	_, err = resolveQuiz(t.Context(), config.QuizzesConfig{Dir: dir, Format: config.FormatFiles}, "missing")
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)
}
