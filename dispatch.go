package quizflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/quizflow/internal/runtime"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/ports"
	"github.com/aretw0/quizflow/pkg/telemetry"
)

// dispatcher delivers transition events to hooks and telemetry.
// It must be called without holding any session lock.
type dispatcher struct {
	hooks     domain.LifecycleHooks
	telemetry *telemetry.Safe
}

func newDispatcher(hooks domain.LifecycleHooks, sink ports.Telemetry, logger *slog.Logger) dispatcher {
	return dispatcher{
		hooks:     hooks,
		telemetry: telemetry.NewSafe(sink, logger),
	}
}

func (d dispatcher) emit(ctx context.Context, events []domain.Event) {
	for i := range events {
		e := events[i]
		d.hooks.Fire(ctx, &e)
		_ = d.telemetry.Track(ctx, e)
	}
}

// translator adapts a localizer for rendering. A panicking localizer falls back to the key.
func translator(l ports.Localizer, logger *slog.Logger) runtime.Translator {
	return func(key string) (msg string) {
		defer func() {
			if r := recover(); r != nil {
				logger.Warn("localizer failed", "key", key, "err", fmt.Errorf("panic: %v", r))
				msg = key
			}
		}()
		return l.Translate(key)
	}
}

func logRejected(logger *slog.Logger, sessionID string, res runtime.Result) {
	if res.Rejected != nil {
		logger.Debug("transition ignored",
			"session_id", sessionID,
			"op", res.Rejected.Op,
			"phase", res.Rejected.Phase,
			"reason", res.Rejected.Reason,
		)
	}
}

func logWarnings(logger *slog.Logger, quizID string, warnings []string) {
	for _, w := range warnings {
		logger.Warn("quiz definition warning", "quiz_id", quizID, "warning", w)
	}
}
