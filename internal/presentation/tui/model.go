// Package tui is the interactive terminal front end of a quiz session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/runner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ResultMsg carries the outcome of a service call.
type ResultMsg struct {
	Response quizflow.Response
	Err      error
}

// Model is the Bubble Tea model of one session.
type Model struct {
	ctx       context.Context
	svc       runner.Service
	sessionID string

	view   domain.View
	cursor int
	busy   bool
	status string
	err    error

	render func(string) (string, error)
	width  int
}

// Option configures the Model.
type Option func(*Model)

// WithRenderer sets the markdown renderer of descriptions and explanations.
func WithRenderer(render func(string) (string, error)) Option {
	return func(m *Model) {
		m.render = render
	}
}

// New creates a model starting from view, the current state of sessionID.
func New(ctx context.Context, svc runner.Service, sessionID string, view domain.View, opts ...Option) Model {
	m := Model{
		ctx:       ctx,
		svc:       svc,
		sessionID: sessionID,
		view:      view,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// QuizView returns the last rendered quiz view.
func (m Model) QuizView() domain.View { return m.view }

// Err returns the error that stopped the model, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ResultMsg:
		m.busy = false
		if msg.Err != nil {
			if status, ok := playerStatus(msg.Err); ok {
				m.status = status
				return m, nil
			}
			m.err = msg.Err
			return m, tea.Quit
		}
		if msg.Response.View.StepIndex != m.view.StepIndex || msg.Response.View.Phase != m.view.Phase {
			m.cursor = 0
		}
		m.view = msg.Response.View
		m.status = ""

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.view.Phase == domain.PhaseFinished {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil
	}

	switch key {
	case "esc", "q":
		if !m.view.Dismissable {
			m.status = "This quiz cannot be closed."
			return m, nil
		}
		return m.call(func(ctx context.Context) (quizflow.Response, error) {
			return m.svc.Close(ctx, m.sessionID)
		})

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Choices)-1 {
			m.cursor++
		}

	case "enter", " ":
		switch {
		case m.view.Phase == domain.PhaseNotStarted:
			return m.call(func(ctx context.Context) (quizflow.Response, error) {
				return m.svc.Start(ctx, m.sessionID)
			})
		case m.view.Answered:
			return m.call(func(ctx context.Context) (quizflow.Response, error) {
				return m.svc.Advance(ctx, m.sessionID)
			})
		default:
			return m.selectChoice(m.cursor)
		}

	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' && m.view.Phase == domain.PhaseInProgress && !m.view.Answered {
			choice := int(key[0] - '1')
			if choice < len(m.view.Choices) {
				m.cursor = choice
				return m.selectChoice(choice)
			}
		}
	}
	return m, nil
}

func (m Model) selectChoice(choice int) (tea.Model, tea.Cmd) {
	step := m.view.StepIndex
	return m.call(func(ctx context.Context) (quizflow.Response, error) {
		return m.svc.Select(ctx, m.sessionID, step, choice)
	})
}

// call runs fn as a command; its result comes back as a ResultMsg.
func (m Model) call(fn func(context.Context) (quizflow.Response, error)) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx := m.ctx
	return m, func() tea.Msg {
		res, err := fn(ctx)
		return ResultMsg{Response: res, Err: err}
	}
}

func playerStatus(err error) (string, bool) {
	var oor *domain.OutOfRangeError
	switch {
	case errors.As(err, &oor):
		return fmt.Sprintf("Pick a number between 1 and %d.", oor.Count), true
	case errors.Is(err, domain.ErrNotDismissable):
		return "This quiz cannot be closed.", true
	}
	return "", false
}

func (m Model) View() string {
	var b strings.Builder

	switch m.view.Phase {
	case domain.PhaseNotStarted:
		b.WriteString(Banner())
		b.WriteString(titleStyle.Render(m.view.Title))
		b.WriteString("\n\n")
		if m.view.Description != "" {
			b.WriteString(m.markdown(m.view.Description))
			b.WriteString("\n")
		}
		help := fmt.Sprintf("%d questions · enter to start", m.view.StepCount)
		if m.view.Dismissable {
			help += " · esc to close"
		}
		b.WriteString(mutedStyle.Render(help))

	case domain.PhaseInProgress:
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %d/%d", m.view.Title, m.view.Progress, m.view.StepCount)))
		b.WriteString("\n\n")
		b.WriteString(questionStyle.Render(m.view.Question))
		b.WriteString("\n")
		for _, c := range m.view.Choices {
			b.WriteString(m.renderChoice(c))
			b.WriteString("\n")
		}
		if m.view.Answered {
			b.WriteString(m.renderFeedback())
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("enter: " + m.view.ContinueLabel))
		} else {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("↑/↓ to move · enter or 1-9 to answer"))
		}

	case domain.PhaseFinished:
		switch m.view.Outcome {
		case domain.OutcomeWin:
			b.WriteString(titleStyle.Foreground(Green).Render("Perfect score!"))
			b.WriteString(fmt.Sprintf("\n\nYou answered all %d questions correctly.", m.view.StepCount))
		case domain.OutcomeLose:
			b.WriteString(titleStyle.Render("Quiz finished"))
			b.WriteString(fmt.Sprintf("\n\nYou scored %d out of %d.", m.view.Score, m.view.StepCount))
		default:
			b.WriteString(titleStyle.Render("Quiz closed"))
		}
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("press any key to exit"))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderChoice(c domain.ChoiceView) string {
	label := fmt.Sprintf("%d. %s", c.Index+1, c.Label)
	switch {
	case c.Variant == domain.VariantSuccess:
		return successStyle.Render(label + " ✓")
	case c.Variant == domain.VariantError:
		return errorStyle.Render(label + " ✗")
	case !m.view.Answered && c.Index == m.cursor:
		return cursorStyle.Render("> " + label)
	}
	return choiceStyle.Render("  " + label)
}

func (m Model) renderFeedback() string {
	border := Red
	if m.view.Tone == domain.ToneSuccess {
		border = Green
	}

	var parts []string
	if m.view.AnswerTitle != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(border).Render(m.view.AnswerTitle))
	}
	if m.view.AnswerExplanation != "" {
		parts = append(parts, m.markdown(m.view.AnswerExplanation))
	}
	if len(parts) == 0 {
		return ""
	}
	style := feedbackStyle.BorderForeground(border)
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.Join(parts, "\n"))
}

func (m Model) markdown(s string) string {
	if m.render == nil {
		return strings.TrimSpace(s)
	}
	out, err := m.render(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(out)
}

// Run plays sessionID in the terminal and returns the last view.
func Run(ctx context.Context, svc runner.Service, sessionID string, opts ...Option) (domain.View, error) {
	view, err := svc.View(ctx, sessionID)
	if err != nil {
		return domain.View{}, fmt.Errorf("load session: %w", err)
	}

	p := tea.NewProgram(New(ctx, svc, sessionID, view, opts...), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return view, err
	}
	m, ok := final.(Model)
	if !ok {
		return view, nil
	}
	return m.view, m.err
}
