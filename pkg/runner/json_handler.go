package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/quizflow/pkg/domain"
)

// ErrInvalidCommand is returned for a JSON line that is not a command.
var ErrInvalidCommand = errors.New("invalid command")

// Message is one line written by the JSONHandler.
type Message struct {
	Type  string       `json:"type"`
	View  *domain.View `json:"view,omitempty"`
	Error string       `json:"error,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
//
// Input lines are either a command object, {"action":"select","choice":0},
// or a JSON string holding a text command ("2", "next").
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder

	last domain.View
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

// Output emits the view as a single JSON line.
func (h *JSONHandler) Output(ctx context.Context, view domain.View) error {
	h.last = view
	return h.Encoder.Encode(Message{Type: "view", View: &view})
}

// Input reads one command line. Blank lines are skipped.
func (h *JSONHandler) Input(ctx context.Context) (Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Command{}, err
		}

		line, err := h.Reader.ReadString('\n')
		text := strings.TrimSpace(line)
		if text == "" {
			if err != nil {
				return Command{}, err
			}
			continue
		}

		cmd, perr := h.parse(text)
		if perr != nil {
			return Command{}, perr
		}
		return cmd, nil
	}
}

func (h *JSONHandler) parse(text string) (Command, error) {
	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		clean, err := SanitizeInput(s)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
		}
		return ParseCommand(clean, h.last)
	}

	var cmd Command
	if err := json.Unmarshal([]byte(text), &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}
	switch cmd.Action {
	case ActionStart, ActionSelect, ActionAdvance, ActionClose, ActionQuit:
		return cmd, nil
	}
	return Command{}, fmt.Errorf("%w: unknown action %q", ErrInvalidCommand, cmd.Action)
}

// SystemOutput emits a {"type":"system"} line.
func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Message{Type: "system", Error: msg})
}
