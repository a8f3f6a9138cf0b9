package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []domain.Event
	err    error
}

func (r *recorder) Track(ctx context.Context, e domain.Event) error {
	r.events = append(r.events, e)
	return r.err
}

type panicker struct{}

func (panicker) Track(context.Context, domain.Event) error { panic("boom") }

func boolPtr(b bool) *bool { return &b }

func TestSafe_SwallowsErrorsAndPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	ctx := context.Background()
	e := domain.Event{Type: domain.EventStepViewed, SessionID: "s1"}

	assert.NoError(t, telemetry.NewSafe(panicker{}, logger).Track(ctx, e))
	assert.Contains(t, buf.String(), "panic: boom")

	failing := &recorder{err: errors.New("sink down")}
	assert.NoError(t, telemetry.NewSafe(failing, logger).Track(ctx, e))
	assert.Contains(t, buf.String(), "sink down")

	assert.NoError(t, telemetry.NewSafe(nil, nil).Track(ctx, e))
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{err: errors.New("b failed")}
	err := telemetry.Multi{a, b}.Track(context.Background(), domain.Event{Type: domain.EventClosed})

	assert.ErrorContains(t, err, "b failed")
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	sink := telemetry.NewLog(logging.NewWithWriter(&buf, slog.LevelInfo))

	require.NoError(t, sink.Track(context.Background(), domain.Event{
		Type:      domain.EventChoiceMade,
		SessionID: "s1",
		QuizID:    "onboarding",
		StepIndex: 2,
		Correct:   boolPtr(true),
	}))

	out := buf.String()
	assert.Contains(t, out, "msg=choice_made")
	assert.Contains(t, out, "step_index=2")
	assert.Contains(t, out, "correct=true")
}

func TestPrometheus(t *testing.T) {
	sink, err := telemetry.NewPrometheus()
	require.NoError(t, err)
	ctx := context.Background()

	events := []domain.Event{
		{Type: domain.EventStarted, QuizID: "q"},
		{Type: domain.EventStepViewed, QuizID: "q"},
		{Type: domain.EventChoiceMade, QuizID: "q", Correct: boolPtr(true)},
		{Type: domain.EventWon, QuizID: "q"},
		{Type: domain.EventClosed, QuizID: "q"},
	}
	for _, e := range events {
		require.NoError(t, sink.Track(ctx, e))
	}

	rec := httptest.NewRecorder()
	sink.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `quizflow_events_total{event="step_viewed",quiz_id="q"} 1`)
	assert.Contains(t, body, `quizflow_answers_total{correct="true",quiz_id="q",step="0"} 1`)
	assert.Contains(t, body, `quizflow_outcomes_total{outcome="win",quiz_id="q"} 1`)
}
