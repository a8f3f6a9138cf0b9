package ports

import (
	"context"

	"github.com/aretw0/quizflow/pkg/domain"
)

// Telemetry receives the events emitted by quiz flows.
// Calls are best-effort: errors are logged and never change the flow.
type Telemetry interface {
	Track(ctx context.Context, event domain.Event) error
}

// Localizer resolves translation keys, e.g. the label of the continue action.
// It must return a usable string for unknown keys (typically the key itself).
type Localizer interface {
	Translate(key string) string
}
