package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/pkg/adapters/memory"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	loader, err := memory.NewLoader(domain.Quiz{
		ID:    "capitals",
		Title: "Capitals",
		Steps: []domain.Step{{
			Title: "Capital of France?",
			Choices: []domain.Choice{
				{Label: "Paris", Correct: true},
				{Label: "Lyon"},
			},
		}},
	})
	require.NoError(t, err)
	svc := quizflow.NewService(loader, session.NewManager(memory.NewStore()),
		quizflow.WithIDGenerator(func() string { return "abc" }),
	)
	return NewServer(svc, nil)
}

func TestServer_PlayQuiz(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	list, err := s.handleListQuizzes(ctx, req, nil)
	require.NoError(t, err)
	require.Len(t, list.Quizzes, 1)
	assert.Equal(t, "capitals", list.Quizzes[0].ID)

	opened, err := s.handleOpen(ctx, req, openArgs{QuizID: "capitals"})
	require.NoError(t, err)
	assert.Equal(t, "abc", opened.View.SessionID)
	assert.False(t, opened.Terminal)

	started, err := s.handleStart(ctx, req, sessionArgs{SessionID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "Capital of France?", started.View.Question)

	answered, err := s.handleSelect(ctx, req, selectArgs{SessionID: "abc", Step: 0, Choice: 0})
	require.NoError(t, err)
	require.NotNil(t, answered.View.Correct)
	assert.True(t, *answered.View.Correct)

	viewed, err := s.handleView(ctx, req, sessionArgs{SessionID: "abc"})
	require.NoError(t, err)
	assert.True(t, viewed.View.Answered)

	done, err := s.handleAdvance(ctx, req, sessionArgs{SessionID: "abc"})
	require.NoError(t, err)
	assert.True(t, done.Terminal)
	assert.Equal(t, domain.OutcomeWin, done.View.Outcome)
}

func TestServer_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleOpen(ctx, req, openArgs{})
	assert.Error(t, err)

	_, err = s.handleOpen(ctx, req, openArgs{QuizID: "nope"})
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)

	_, err = s.handleStart(ctx, req, sessionArgs{SessionID: "missing"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = s.handleOpen(ctx, req, openArgs{QuizID: "capitals"})
	require.NoError(t, err)
	_, err = s.handleStart(ctx, req, sessionArgs{SessionID: "abc"})
	require.NoError(t, err)

	var oor *domain.OutOfRangeError
	_, err = s.handleSelect(ctx, req, selectArgs{SessionID: "abc", Step: 0, Choice: 5})
	assert.ErrorAs(t, err, &oor)
}

func TestServer_CloseQuiz(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}

	_, err := s.handleOpen(ctx, req, openArgs{QuizID: "capitals"})
	require.NoError(t, err)

	closed, err := s.handleClose(ctx, req, sessionArgs{SessionID: "abc"})
	require.NoError(t, err)
	assert.True(t, closed.Terminal)
	assert.Equal(t, domain.OutcomeClosed, closed.View.Outcome)
}

func TestServer_ListTools(t *testing.T) {
	s := newTestServer(t)

	msg := json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	resp := s.MCPServer().HandleMessage(context.Background(), msg)
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"list_quizzes", "open_quiz", "view_session", "start_quiz", "select_choice", "advance", "close_quiz"} {
		assert.Contains(t, string(data), `"`+name+`"`)
	}
}
