package runner

import (
	"context"

	"github.com/aretw0/quizflow/pkg/domain"
)

// IOHandler defines the strategy for interacting with the player.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents the current view.
	Output(ctx context.Context, view domain.View) error

	// Input reads the next command.
	// It returns io.EOF when the input is exhausted.
	Input(ctx context.Context) (Command, error)

	// SystemOutput presents a meta-message (e.g. a rejected command).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms markdown before it is written, e.g. to ANSI.
type ContentRenderer func(string) (string, error)
