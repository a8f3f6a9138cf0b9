package quizfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/quizfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const onboardingYAML = `
title: Getting started
dismissable: false
steps:
  - title: Which command starts a quiz?
    illustration: terminal.png
    correct_title: Right!
    incorrect_title: Not this one
    answer_explanation: "Use play."
    choices:
      - label: quizflow play
        correct: true
      - label: quizflow serve
        explanation: serve starts the HTTP API.
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFile_YAML(t *testing.T) {
	path := write(t, t.TempDir(), "onboarding.yaml", onboardingYAML)

	quiz, err := quizfile.ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "onboarding", quiz.ID)
	assert.Equal(t, "Getting started", quiz.Title)
	assert.False(t, quiz.IsDismissable())
	require.Len(t, quiz.Steps, 1)

	step := quiz.Steps[0]
	assert.Equal(t, "terminal.png", step.Illustration)
	assert.Equal(t, "Use play.", step.AnswerExplanation)
	require.Len(t, step.Choices, 2)
	assert.True(t, step.Choices[0].Correct)
	assert.Equal(t, "serve starts the HTTP API.", step.Choices[1].Explanation)
}

func TestParse_JSON(t *testing.T) {
	quiz, err := quizfile.Parse([]byte(`{"id":"j","title":"JSON","steps":[{"title":"q","choices":[{"label":"a","correct":true}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "j", quiz.ID)
	assert.True(t, quiz.IsDismissable())
	assert.Len(t, quiz.Steps, 1)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := quizfile.Parse([]byte("title: x\nstepz: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stepz")
}

func TestParse_Empty(t *testing.T) {
	_, err := quizfile.Parse([]byte(""))
	assert.Error(t, err)
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "onboarding.yaml", onboardingYAML)
	write(t, dir, "other.json", `{"id":"custom-id","title":"Other","steps":[]}`)
	write(t, dir, "README.md", "# not a deck")

	loader := quizfile.NewDirLoader(dir)
	ctx := context.Background()

	ids, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"custom-id", "onboarding"}, ids)

	quiz, err := loader.Load(ctx, "onboarding")
	require.NoError(t, err)
	assert.Equal(t, "Getting started", quiz.Title)

	quiz, err = loader.Load(ctx, "custom-id")
	require.NoError(t, err)
	assert.Equal(t, "Other", quiz.Title)

	_, err = loader.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)
}

func TestDirLoader_Collision(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.yaml", "id: same\ntitle: A\n")
	write(t, dir, "b.yaml", "id: same\ntitle: B\n")

	_, err := quizfile.NewDirLoader(dir).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}
