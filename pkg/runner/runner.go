package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/pkg/domain"
)

// Service is the part of quizflow.Service a runner drives.
type Service interface {
	View(ctx context.Context, sessionID string) (domain.View, error)
	Start(ctx context.Context, sessionID string) (quizflow.Response, error)
	Select(ctx context.Context, sessionID string, stepIndex, choiceIndex int) (quizflow.Response, error)
	Advance(ctx context.Context, sessionID string) (quizflow.Response, error)
	Close(ctx context.Context, sessionID string) (quizflow.Response, error)
}

// Runner handles the play loop of one session using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	Service Service

	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// NewRunner creates a new Runner for svc.
func NewRunner(svc Service, opts ...Option) *Runner {
	r := &Runner{
		Service: svc,
		Logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run plays sessionID until it finishes, the player quits or the input ends.
// It returns the last view shown. A session left unfinished stays in the store.
func (r *Runner) Run(ctx context.Context, sessionID string) (domain.View, error) {
	view, err := r.Service.View(ctx, sessionID)
	if err != nil {
		return domain.View{}, fmt.Errorf("load session: %w", err)
	}

	for {
		if err := r.Handler.Output(ctx, view); err != nil {
			return view, fmt.Errorf("output error: %w", err)
		}
		if view.Phase == domain.PhaseFinished {
			return view, nil
		}

		cmd, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("runner: input closed, leaving session", "session_id", sessionID)
				return view, nil
			}
			if ctx.Err() != nil {
				return view, ctx.Err()
			}
			if errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrInvalidCommand) {
				r.systemOutput(ctx, err.Error())
				continue
			}
			return view, fmt.Errorf("input error: %w", err)
		}
		if cmd.Action == ActionQuit {
			r.Logger.Debug("runner: player quit", "session_id", sessionID)
			return view, nil
		}

		res, err := r.apply(ctx, sessionID, view, cmd)
		if err != nil {
			if msg, ok := playerError(err); ok {
				r.systemOutput(ctx, msg)
				continue
			}
			return view, err
		}
		view = res.View
	}
}

func (r *Runner) apply(ctx context.Context, sessionID string, view domain.View, cmd Command) (quizflow.Response, error) {
	r.Logger.Debug("runner: command", "session_id", sessionID, "action", cmd.Action, "choice", cmd.Choice)

	switch cmd.Action {
	case ActionStart:
		return r.Service.Start(ctx, sessionID)
	case ActionSelect:
		return r.Service.Select(ctx, sessionID, view.StepIndex, cmd.Choice)
	case ActionAdvance:
		return r.Service.Advance(ctx, sessionID)
	case ActionClose:
		return r.Service.Close(ctx, sessionID)
	}
	return quizflow.Response{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Action)
}

// playerError turns recoverable errors into a message for the player.
func playerError(err error) (string, bool) {
	var oor *domain.OutOfRangeError
	switch {
	case errors.As(err, &oor):
		return fmt.Sprintf("Pick a number between 1 and %d.", oor.Count), true
	case errors.Is(err, domain.ErrNotDismissable):
		return "This quiz cannot be closed.", true
	case errors.Is(err, ErrUnknownCommand):
		return err.Error(), true
	}
	return "", false
}

func (r *Runner) systemOutput(ctx context.Context, msg string) {
	if err := r.Handler.SystemOutput(ctx, msg); err != nil {
		r.Logger.Warn("runner: system output failed", "err", err)
	}
}
