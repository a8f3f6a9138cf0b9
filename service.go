package quizflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/internal/runtime"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/i18n"
	"github.com/aretw0/quizflow/pkg/ports"
	"github.com/aretw0/quizflow/pkg/session"
	"github.com/google/uuid"
)

// Response is what every Service operation returns: the rendered view,
// the changes applied to the session and the events they produced.
type Response struct {
	View   domain.View         `json:"view"`
	Diff   *domain.SessionDiff `json:"diff,omitempty"`
	Events []domain.Event      `json:"events,omitempty"`
}

// QuizSummary describes an available deck.
type QuizSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Steps       int    `json:"steps"`
	Dismissable bool   `json:"dismissable"`
}

// Service runs many quiz sessions concurrently on top of a session store.
// Each deck is loaded and validated once, on first use, and kept for the life of the Service.
type Service struct {
	loader    ports.QuizLoader
	sessions  *session.Manager
	sink      ports.Telemetry
	localizer ports.Localizer
	translate runtime.Translator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	clock     func() time.Time
	newID     func() string
	dispatch  dispatcher

	mu       sync.Mutex
	machines map[string]*runtime.Machine
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceTelemetry sends every event to sink.
func WithServiceTelemetry(sink ports.Telemetry) ServiceOption {
	return func(s *Service) {
		s.sink = sink
	}
}

// WithServiceLocalizer resolves the continue label.
func WithServiceLocalizer(l ports.Localizer) ServiceOption {
	return func(s *Service) {
		s.localizer = l
	}
}

// WithServiceHooks registers observability hooks.
func WithServiceHooks(hooks domain.LifecycleHooks) ServiceOption {
	return func(s *Service) {
		s.hooks = hooks
	}
}

// WithServiceLogger sets a custom structured logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithServiceClock overrides the time source.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.clock = now
	}
}

// WithIDGenerator overrides the session ID generator (UUIDv4 by default).
func WithIDGenerator(fn func() string) ServiceOption {
	return func(s *Service) {
		s.newID = fn
	}
}

// NewService creates a Service resolving decks through loader and persisting through sessions.
func NewService(loader ports.QuizLoader, sessions *session.Manager, opts ...ServiceOption) *Service {
	s := &Service{
		loader:   loader,
		sessions: sessions,
		logger:   logging.NewNop(),
		clock:    time.Now,
		newID:    uuid.NewString,
		machines: make(map[string]*runtime.Machine),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.localizer == nil {
		s.localizer = i18n.New(i18n.DefaultLanguage)
	}
	s.translate = translator(s.localizer, s.logger)
	s.dispatch = newDispatcher(s.hooks, s.sink, s.logger)
	return s
}

// machine returns the validated state machine of a deck, building it on first use.
// Decks are read once per Service: edits to deck files apply after a restart,
// and sessions in flight never see a deck change shape under them.
func (s *Service) machine(ctx context.Context, quizID string) (*runtime.Machine, error) {
	s.mu.Lock()
	m, ok := s.machines[quizID]
	s.mu.Unlock()
	if ok {
		return m, nil
	}

	quiz, err := s.loader.Load(ctx, quizID)
	if err != nil {
		return nil, err
	}
	quiz.ID = quizID

	m, warnings, err := runtime.NewMachine(quiz, runtime.WithClock(s.clock))
	if err != nil {
		return nil, fmt.Errorf("quiz %s: %w", quizID, err)
	}
	logWarnings(s.logger, quizID, warnings)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.machines[quizID]; ok {
		return existing, nil
	}
	s.machines[quizID] = m
	return m, nil
}

// Quizzes lists the available decks.
func (s *Service) Quizzes(ctx context.Context) ([]QuizSummary, error) {
	ids, err := s.loader.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	out := make([]QuizSummary, 0, len(ids))
	for _, id := range ids {
		quiz, err := s.loader.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, QuizSummary{
			ID:          id,
			Title:       quiz.Title,
			Steps:       len(quiz.Steps),
			Dismissable: quiz.IsDismissable(),
		})
	}
	return out, nil
}

// Open creates a new session of quizID, waiting on the start screen.
func (s *Service) Open(ctx context.Context, quizID string) (Response, error) {
	m, err := s.machine(ctx, quizID)
	if err != nil {
		return Response{}, err
	}

	sess := domain.NewSession(s.newID(), quizID)
	sess.CreatedAt = s.clock().UTC()
	sess.UpdatedAt = sess.CreatedAt
	if err := s.sessions.Create(ctx, sess); err != nil {
		return Response{}, err
	}
	s.logger.Info("session opened", "session_id", sess.ID, "quiz_id", quizID)

	return Response{
		View: m.Render(sess, s.translate),
		Diff: domain.Diff(nil, sess),
	}, nil
}

// View renders a session without changing it.
func (s *Service) View(ctx context.Context, sessionID string) (domain.View, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		return domain.View{}, err
	}
	m, err := s.machine(ctx, sess.QuizID)
	if err != nil {
		return domain.View{}, err
	}
	return m.Render(sess, s.translate), nil
}

// Start leaves the start screen.
func (s *Service) Start(ctx context.Context, sessionID string) (Response, error) {
	return s.transition(ctx, sessionID, func(m *runtime.Machine, cur *domain.Session) (runtime.Result, error) {
		return m.Start(cur), nil
	})
}

// Select answers step stepIndex with choiceIndex. Answers to a step other
// than the displayed one, or to an already answered step, are ignored.
func (s *Service) Select(ctx context.Context, sessionID string, stepIndex, choiceIndex int) (Response, error) {
	return s.transition(ctx, sessionID, func(m *runtime.Machine, cur *domain.Session) (runtime.Result, error) {
		return m.Select(cur, stepIndex, choiceIndex)
	})
}

// Advance moves past the answered step, concluding the quiz on the last one.
func (s *Service) Advance(ctx context.Context, sessionID string) (Response, error) {
	return s.transition(ctx, sessionID, func(m *runtime.Machine, cur *domain.Session) (runtime.Result, error) {
		return m.Advance(cur), nil
	})
}

// Close dismisses the quiz.
func (s *Service) Close(ctx context.Context, sessionID string) (Response, error) {
	return s.transition(ctx, sessionID, func(m *runtime.Machine, cur *domain.Session) (runtime.Result, error) {
		return m.Close(cur)
	})
}

type transitionFunc func(*runtime.Machine, *domain.Session) (runtime.Result, error)

// transition runs load, transition, persist under the session lock,
// then dispatches the events once the lock is released.
func (s *Service) transition(ctx context.Context, sessionID string, op transitionFunc) (Response, error) {
	var (
		m   *runtime.Machine
		old *domain.Session
		res runtime.Result
	)
	next, err := s.sessions.Update(ctx, sessionID, func(cur *domain.Session) (*domain.Session, error) {
		var err error
		if m, err = s.machine(ctx, cur.QuizID); err != nil {
			return nil, err
		}
		old = cur
		if res, err = op(m, cur); err != nil {
			return nil, err
		}
		logRejected(s.logger, sessionID, res)
		if !res.Applied() {
			return cur, nil
		}
		return res.Session, nil
	})
	if err != nil {
		return Response{}, err
	}

	if res.Applied() {
		s.dispatch.emit(ctx, res.Events)
	}
	if next.Finished() {
		s.logger.Info("session finished", "session_id", sessionID, "outcome", next.Outcome, "score", next.Score)
	}

	return Response{
		View:   m.Render(next, s.translate),
		Diff:   domain.Diff(old, next),
		Events: res.Events,
	}, nil
}
