package runner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/quizflow/pkg/domain"
)

// Action names a player command.
type Action string

const (
	ActionStart   Action = "start"
	ActionSelect  Action = "select"
	ActionAdvance Action = "advance"
	ActionClose   Action = "close"
	// ActionQuit leaves the runner without touching the session.
	ActionQuit Action = "quit"
)

// Command is one player instruction.
// Choice is the zero-based choice index of ActionSelect.
type Command struct {
	Action Action `json:"action"`
	Choice int    `json:"choice,omitempty"`
}

// ErrUnknownCommand is returned for input that maps to no command.
var ErrUnknownCommand = errors.New("unknown command")

// ParseCommand maps a line typed by a human to a command.
// Numbers are one-based, as displayed. An empty line starts the quiz on the
// start screen and continues otherwise.
func ParseCommand(line string, view domain.View) (Command, error) {
	text := strings.ToLower(strings.TrimSpace(line))

	switch text {
	case "":
		if view.Phase == domain.PhaseNotStarted {
			return Command{Action: ActionStart}, nil
		}
		return Command{Action: ActionAdvance}, nil
	case "s", "start":
		return Command{Action: ActionStart}, nil
	case "n", "next":
		return Command{Action: ActionAdvance}, nil
	case "q", "close":
		return Command{Action: ActionClose}, nil
	case "exit", "quit":
		return Command{Action: ActionQuit}, nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
	return Command{Action: ActionSelect, Choice: n - 1}, nil
}
