package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/quizflow/pkg/adapters/memory"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	ctx := context.Background()
	loader, err := memory.NewLoader(
		domain.Quiz{ID: "b", Title: "B"},
		domain.Quiz{ID: "a", Title: "A"},
	)
	require.NoError(t, err)

	ids, err := loader.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	q, err := loader.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", q.Title)

	_, err = loader.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)
}

func TestLoader_RejectsBadInput(t *testing.T) {
	_, err := memory.NewLoader(domain.Quiz{Title: "no id"})
	assert.Error(t, err)

	_, err = memory.NewLoader(domain.Quiz{ID: "x"}, domain.Quiz{ID: "x"})
	assert.Error(t, err)
}
