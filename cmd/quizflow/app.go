package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/internal/config"
	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/pkg/adapters/file"
	"github.com/aretw0/quizflow/pkg/adapters/loam"
	"github.com/aretw0/quizflow/pkg/adapters/memory"
	"github.com/aretw0/quizflow/pkg/adapters/redis"
	"github.com/aretw0/quizflow/pkg/adapters/sqlite"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/i18n"
	"github.com/aretw0/quizflow/pkg/ports"
	"github.com/aretw0/quizflow/pkg/quizfile"
	"github.com/aretw0/quizflow/pkg/session"
	"github.com/aretw0/quizflow/pkg/telemetry"
	"github.com/spf13/cobra"
)

// app is the wiring shared by every command.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	service *quizflow.Service
	metrics *telemetry.Prometheus

	closers []func() error
}

type appOptions struct {
	metrics bool
}

func newApp(ctx context.Context, cmd *cobra.Command, opts appOptions) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logging.New(level)}

	loader, err := newLoader(cfg.Quizzes)
	if err != nil {
		return nil, err
	}

	manager, err := a.newSessions(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	catalog, err := i18n.Load(cfg.Locale.File, cfg.Locale.Lang)
	if err != nil {
		a.Close()
		return nil, err
	}

	sinks := telemetry.Multi{telemetry.NewLog(a.logger.With("component", "telemetry"))}
	if opts.metrics {
		if a.metrics, err = telemetry.NewPrometheus(); err != nil {
			a.Close()
			return nil, fmt.Errorf("metrics: %w", err)
		}
		sinks = append(sinks, a.metrics)
	}

	a.service = quizflow.NewService(loader, manager,
		quizflow.WithServiceTelemetry(sinks),
		quizflow.WithServiceLocalizer(catalog),
		quizflow.WithServiceLogger(a.logger),
	)
	return a, nil
}

func newLoader(cfg config.QuizzesConfig) (ports.QuizLoader, error) {
	if cfg.Format == config.FormatMarkdown {
		l, err := loam.Open(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return quizfile.NewDirLoader(cfg.Dir), nil
}

// newSessions builds the configured session store.
func (a *app) newSessions(ctx context.Context) (*session.Manager, error) {
	sc := a.cfg.Store
	opts := []session.Option{session.WithLogger(a.logger)}

	var store ports.SessionStore
	switch sc.Backend {
	case config.BackendFile:
		store = file.New(sc.File.Dir)
	case config.BackendSQLite:
		s, err := sqlite.New(ctx, sc.SQLite.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		store = s
	case config.BackendRedis:
		s := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB,
			redis.WithTTL(sc.Redis.TTL),
			redis.WithPrefix(sc.Redis.Prefix),
		)
		a.closers = append(a.closers, s.Close)
		if err := s.Client().Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis %s: %w", sc.Redis.Addr, err)
		}
		if sc.Redis.Lock {
			opts = append(opts, session.WithLocker(redis.NewLocker(s.Client(), sc.Redis.Prefix)))
		}
		store = s
	default:
		store = memory.NewStore()
	}

	a.logger.Debug("session store ready", "backend", sc.Backend)
	return session.NewManager(store, opts...), nil
}

// Close releases store connections.
func (a *app) Close() {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("close failed", "err", err)
	}
}

// quizNotFound adds the available IDs to a missing quiz error.
func (a *app) quizNotFound(ctx context.Context, quizID string, err error) error {
	if !errors.Is(err, domain.ErrQuizNotFound) {
		return err
	}
	quizzes, lerr := a.service.Quizzes(ctx)
	if lerr != nil || len(quizzes) == 0 {
		return fmt.Errorf("quiz %q not found in %s", quizID, a.cfg.Quizzes.Dir)
	}
	ids := make([]string, len(quizzes))
	for i, q := range quizzes {
		ids[i] = q.ID
	}
	return fmt.Errorf("quiz %q not found (available: %v)", quizID, ids)
}
