package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/quizflow/pkg/domain"
)

// Node IDs of the fixed vertices.
const (
	startID  = "start"
	winID    = "win"
	loseID   = "lose"
	closedID = "closed"
)

// Overlay contains session state to visualize on the graph.
type Overlay struct {
	// Visited lists the steps already answered.
	Visited []int
	// Current is the displayed step, or -1 when no step is displayed.
	Current int
	// Outcome highlights the terminal vertex of a finished session.
	Outcome domain.Outcome
	// NotStarted highlights the start vertex.
	NotStarted bool
}

// OverlayFromView derives the overlay of a rendered session.
func OverlayFromView(v domain.View) *Overlay {
	o := &Overlay{Current: -1, Outcome: v.Outcome}
	switch v.Phase {
	case domain.PhaseNotStarted:
		o.NotStarted = true
	case domain.PhaseInProgress:
		o.Current = v.StepIndex
		for i := 0; i < v.StepIndex; i++ {
			o.Visited = append(o.Visited, i)
		}
		if v.Answered {
			o.Visited = append(o.Visited, v.StepIndex)
		}
	case domain.PhaseFinished:
		for i := 0; i < v.StepIndex; i++ {
			o.Visited = append(o.Visited, i)
		}
		if v.Outcome != domain.OutcomeClosed || v.Answered {
			o.Visited = append(o.Visited, v.StepIndex)
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a quiz.
// Shapes:
// - Start and outcomes: ((Circle))
// - Steps: [/Parallelogram/], listing choices with the correct ones checked
// - Closed: [[Subroutine]], reachable from every step when the quiz is dismissable
func GenerateMermaid(quiz domain.Quiz, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	title := quiz.Title
	if title == "" {
		title = quiz.ID
	}
	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", startID, escape(title))

	prev := startID
	for i, step := range quiz.Steps {
		id := stepID(i)
		fmt.Fprintf(&sb, "    %s[/\"%s\"/]\n", id, stepLabel(i, step))
		fmt.Fprintf(&sb, "    %s --> %s\n", prev, id)
		prev = id
	}

	if len(quiz.Steps) > 0 {
		fmt.Fprintf(&sb, "    %s((\"Win\"))\n", winID)
		fmt.Fprintf(&sb, "    %s((\"Lose\"))\n", loseID)
		fmt.Fprintf(&sb, "    %s -- \"all correct\" --> %s\n", prev, winID)
		fmt.Fprintf(&sb, "    %s -- \"otherwise\" --> %s\n", prev, loseID)
	}

	if quiz.IsDismissable() {
		fmt.Fprintf(&sb, "    %s[[\"Closed\"]]\n", closedID)
		fmt.Fprintf(&sb, "    %s -.-> %s\n", startID, closedID)
		for i := range quiz.Steps {
			fmt.Fprintf(&sb, "    %s -.-> %s\n", stepID(i), closedID)
		}
	}

	if overlay != nil {
		writeOverlay(&sb, len(quiz.Steps), overlay)
	}
	return sb.String()
}

func writeOverlay(sb *strings.Builder, steps int, o *Overlay) {
	sb.WriteString("\n    %% Overlay Styles\n")
	// Black text keeps contrast on both light and dark themes.
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	if !o.NotStarted {
		fmt.Fprintf(sb, "    class %s visited;\n", startID)
	}

	seen := make(map[int]bool)
	for _, i := range o.Visited {
		if i < 0 || i >= steps || seen[i] || i == o.Current {
			continue
		}
		seen[i] = true
		fmt.Fprintf(sb, "    class %s visited;\n", stepID(i))
	}

	switch {
	case o.NotStarted:
		fmt.Fprintf(sb, "    class %s current;\n", startID)
	case o.Current >= 0 && o.Current < steps:
		fmt.Fprintf(sb, "    class %s current;\n", stepID(o.Current))
	}

	switch o.Outcome {
	case domain.OutcomeWin:
		fmt.Fprintf(sb, "    class %s current;\n", winID)
	case domain.OutcomeLose:
		fmt.Fprintf(sb, "    class %s current;\n", loseID)
	case domain.OutcomeClosed:
		fmt.Fprintf(sb, "    class %s current;\n", closedID)
	}
}

func stepID(i int) string {
	return fmt.Sprintf("step_%d", i)
}

func stepLabel(i int, step domain.Step) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. %s", i+1, escape(step.Title))
	for _, c := range step.Choices {
		mark := "○"
		if c.Correct {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "<br/>%s %s", mark, escape(c.Label))
	}
	return sb.String()
}

// escape keeps labels from breaking the quoted Mermaid string.
func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
