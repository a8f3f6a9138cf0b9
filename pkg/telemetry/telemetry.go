package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/ports"
)

// Nop discards every event.
type Nop struct{}

func (Nop) Track(context.Context, domain.Event) error { return nil }

// Log writes each event as a structured log record.
type Log struct {
	Logger *slog.Logger
	Level  slog.Level
}

// NewLog creates a log sink at info level.
func NewLog(logger *slog.Logger) *Log {
	return &Log{Logger: logger, Level: slog.LevelInfo}
}

func (l *Log) Track(ctx context.Context, e domain.Event) error {
	attrs := []any{
		"session_id", e.SessionID,
		"quiz_id", e.QuizID,
		"step_index", e.StepIndex,
		"score", e.Score,
	}
	if e.Correct != nil {
		attrs = append(attrs, "correct", *e.Correct)
	}
	l.Logger.Log(ctx, l.Level, string(e.Type), attrs...)
	return nil
}

// Multi fans an event out to several sinks and joins their errors.
type Multi []ports.Telemetry

func (m Multi) Track(ctx context.Context, e domain.Event) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Track(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Safe wraps a sink so that it never fails nor panics: errors and panics are logged and dropped.
type Safe struct {
	sink   ports.Telemetry
	logger *slog.Logger
}

// NewSafe wraps sink. A nil sink tracks nothing; a nil logger discards failures.
func NewSafe(sink ports.Telemetry, logger *slog.Logger) *Safe {
	if sink == nil {
		sink = Nop{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Safe{sink: sink, logger: logger}
}

// Track always returns nil.
func (s *Safe) Track(ctx context.Context, e domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			s.logger.Warn("telemetry sink failed", "event", e.Type, "session_id", e.SessionID, "err", err)
		}
		err = nil
	}()
	return s.sink.Track(ctx, e)
}

// TrackAll sends events in order.
func (s *Safe) TrackAll(ctx context.Context, events []domain.Event) {
	for _, e := range events {
		_ = s.Track(ctx, e)
	}
}
