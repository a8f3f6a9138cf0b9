package runner

import (
	"log/slog"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger logs ignored commands and recoverable errors to logger. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithInputHandler plays the session through handler, e.g. a JSONHandler for automation.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}
