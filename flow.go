package quizflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/internal/runtime"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/i18n"
	"github.com/aretw0/quizflow/pkg/ports"
	"github.com/google/uuid"
)

// Flow controls a single quiz session in process.
// It is safe for concurrent use.
type Flow struct {
	mu      sync.Mutex
	machine *runtime.Machine
	session *domain.Session
	done    chan struct{}

	quizID      string
	title       string
	sessionID   string
	dismissable *bool

	onWin   func()
	onLose  func()
	onClose func()

	sink      ports.Telemetry
	localizer ports.Localizer
	translate runtime.Translator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	clock     func() time.Time
	dispatch  dispatcher

	settleDelay time.Duration
	settleFn    func(domain.View)
	settleTimer *time.Timer
	settleGen   uint64

	warnings []string
}

// Option configures a Flow.
type Option func(*Flow)

// WithTitle sets the quiz title shown in views.
func WithTitle(title string) Option {
	return func(f *Flow) {
		f.title = title
	}
}

// WithQuizID sets the quiz ID reported in events.
func WithQuizID(id string) Option {
	return func(f *Flow) {
		f.quizID = id
	}
}

// WithSessionID sets the session ID reported in events. A random UUID is used otherwise.
func WithSessionID(id string) Option {
	return func(f *Flow) {
		f.sessionID = id
	}
}

// WithOnWin is called once when the last step is passed with a perfect score.
func WithOnWin(fn func()) Option {
	return func(f *Flow) {
		f.onWin = fn
	}
}

// WithOnLose is called once when the last step is passed with at least one mistake.
func WithOnLose(fn func()) Option {
	return func(f *Flow) {
		f.onLose = fn
	}
}

// WithOnClose is called once when the quiz ends, after onWin/onLose or on dismissal.
func WithOnClose(fn func()) Option {
	return func(f *Flow) {
		f.onClose = fn
	}
}

// WithDismissable overrides whether the quiz can be closed early (default true).
func WithDismissable(dismissable bool) Option {
	return func(f *Flow) {
		f.dismissable = &dismissable
	}
}

// WithTelemetry sends every event to sink. Failures never affect the flow.
func WithTelemetry(sink ports.Telemetry) Option {
	return func(f *Flow) {
		f.sink = sink
	}
}

// WithLocalizer resolves the continue label.
func WithLocalizer(l ports.Localizer) Option {
	return func(f *Flow) {
		f.localizer = l
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Flow) {
		f.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithClock overrides the time source used to stamp sessions and events.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) {
		f.clock = now
	}
}

// WithSettle calls fn with the current view once delay has elapsed after construction,
// unless the quiz has ended or CancelSettle was called by then. Hosts use it to reveal the quiz after an entrance transition.
func WithSettle(delay time.Duration, fn func(domain.View)) Option {
	return func(f *Flow) {
		f.settleDelay = delay
		f.settleFn = fn
	}
}

// New validates the steps and creates a Flow waiting on the start screen.
// It fails with *domain.ConfigurationError if the steps cannot be played.
func New(steps []domain.Step, opts ...Option) (*Flow, error) {
	return NewFromQuiz(domain.Quiz{Steps: steps}, opts...)
}

// NewFromQuiz is New for a loaded deck. Options override the deck's ID, title and dismissable flag.
func NewFromQuiz(quiz domain.Quiz, opts ...Option) (*Flow, error) {
	f := &Flow{
		done:   make(chan struct{}),
		quizID: quiz.ID,
		title:  quiz.Title,
		logger: logging.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}

	quiz.ID = f.quizID
	quiz.Title = f.title
	if f.dismissable != nil {
		quiz.Dismissable = f.dismissable
	}
	if f.localizer == nil {
		f.localizer = i18n.New(i18n.DefaultLanguage)
	}
	if f.sessionID == "" {
		f.sessionID = uuid.NewString()
	}

	machine, warnings, err := runtime.NewMachine(quiz, runtime.WithClock(f.clock))
	if err != nil {
		return nil, err
	}
	logWarnings(f.logger, quiz.ID, warnings)

	f.machine = machine
	f.warnings = warnings
	f.translate = translator(f.localizer, f.logger)
	f.dispatch = newDispatcher(f.hooks, f.sink, f.logger)

	s := domain.NewSession(f.sessionID, quiz.ID)
	s.CreatedAt = f.clock().UTC()
	s.UpdatedAt = s.CreatedAt
	f.session = s

	if f.settleFn != nil {
		f.mu.Lock()
		gen := f.settleGen
		f.settleTimer = time.AfterFunc(f.settleDelay, func() { f.settle(gen) })
		f.mu.Unlock()
	}
	return f, nil
}

// Warnings returns the non-fatal problems found in the quiz definition.
func (f *Flow) Warnings() []string {
	return f.warnings
}

// Start leaves the start screen. Subsequent calls are ignored.
func (f *Flow) Start(ctx context.Context) domain.View {
	return f.apply(ctx, f.machine.Start)
}

// SelectChoice answers the current step. Only the first answer of a step counts.
// An index outside the step's choices returns *domain.OutOfRangeError.
func (f *Flow) SelectChoice(ctx context.Context, choiceIndex int) (domain.View, error) {
	var opErr error
	view := f.apply(ctx, func(s *domain.Session) runtime.Result {
		res, err := f.machine.Select(s, s.StepIndex, choiceIndex)
		if err != nil {
			opErr = err
			return runtime.Result{Session: s}
		}
		return res
	})
	return view, opErr
}

// Advance moves to the next step, or concludes the quiz on the last one.
// Without an answer for the current step it does nothing.
func (f *Flow) Advance(ctx context.Context) domain.View {
	return f.apply(ctx, f.machine.Advance)
}

// Close dismisses the quiz. It returns domain.ErrNotDismissable when the quiz forbids it.
func (f *Flow) Close(ctx context.Context) (domain.View, error) {
	var opErr error
	view := f.apply(ctx, func(s *domain.Session) runtime.Result {
		res, err := f.machine.Close(s)
		if err != nil {
			opErr = err
			return runtime.Result{Session: s}
		}
		return res
	})
	return view, opErr
}

// View renders the current session.
func (f *Flow) View() domain.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.machine.Render(f.session, f.translate)
}

// Session returns a copy of the current session.
func (f *Flow) Session() *domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session.Clone()
}

// Done is closed when the quiz reaches its finished state.
func (f *Flow) Done() <-chan struct{} {
	return f.done
}

// apply runs a transition under the lock, then delivers its events with the lock released.
func (f *Flow) apply(ctx context.Context, op func(*domain.Session) runtime.Result) domain.View {
	view, res := f.transition(op)
	if len(res.Events) > 0 && res.Applied() {
		f.dispatch.emit(ctx, res.Events)
		f.fireCallbacks(res.Events)
	}
	return view
}

func (f *Flow) transition(op func(*domain.Session) runtime.Result) (domain.View, runtime.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res := op(f.session)
	logRejected(f.logger, f.session.ID, res)

	if res.Applied() && res.Session != nil && res.Session != f.session {
		finished := !f.session.Finished() && res.Session.Finished()
		f.session = res.Session
		if finished {
			f.cancelSettleLocked()
			close(f.done)
		}
	}
	return f.machine.Render(f.session, f.translate), res
}

func (f *Flow) fireCallbacks(events []domain.Event) {
	for _, e := range events {
		var fn func()
		switch e.Type {
		case domain.EventWon:
			fn = f.onWin
		case domain.EventLost:
			fn = f.onLose
		case domain.EventClosed:
			fn = f.onClose
		}
		if fn != nil {
			fn()
		}
	}
}

func (f *Flow) cancelSettleLocked() {
	f.settleGen++
	if f.settleTimer != nil {
		f.settleTimer.Stop()
		f.settleTimer = nil
	}
}

// CancelSettle stops a pending settle callback. It is a no-op once the callback ran.
func (f *Flow) CancelSettle() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelSettleLocked()
}

// settle runs on the timer goroutine.
func (f *Flow) settle(gen uint64) {
	view, ok := f.settledView(gen)
	if ok {
		f.settleFn(view)
	}
}

func (f *Flow) settledView(gen uint64) (domain.View, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.settleGen || f.session.Finished() {
		return domain.View{}, false
	}
	f.settleTimer = nil
	return f.machine.Render(f.session, f.translate), true
}
