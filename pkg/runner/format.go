package runner

import (
	"fmt"
	"strings"

	"github.com/aretw0/quizflow/pkg/domain"
)

// FormatView writes a view as markdown.
func FormatView(view domain.View) string {
	var b strings.Builder

	switch view.Phase {
	case domain.PhaseNotStarted:
		fmt.Fprintf(&b, "# %s\n\n", titleOr(view.Title, "Quiz"))
		if view.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(view.Description))
		}
		fmt.Fprintf(&b, "%d questions. Press *enter* to start", view.StepCount)
		if view.Dismissable {
			b.WriteString(", *q* to close")
		}
		b.WriteString(".\n")

	case domain.PhaseInProgress:
		fmt.Fprintf(&b, "## %d/%d · %s\n\n", view.Progress, view.StepCount, view.Question)
		for _, c := range view.Choices {
			fmt.Fprintf(&b, "%d. %s%s\n", c.Index+1, c.Label, mark(c))
		}
		if view.Answered {
			b.WriteString("\n")
			if view.AnswerTitle != "" {
				fmt.Fprintf(&b, "**%s**\n\n", view.AnswerTitle)
			}
			if view.AnswerExplanation != "" {
				fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(view.AnswerExplanation))
			}
			fmt.Fprintf(&b, "Press *enter* for **%s**.\n", view.ContinueLabel)
		} else {
			fmt.Fprintf(&b, "\nType a number from 1 to %d.\n", len(view.Choices))
		}

	case domain.PhaseFinished:
		switch view.Outcome {
		case domain.OutcomeWin:
			fmt.Fprintf(&b, "# Perfect score!\n\nYou answered all %d questions correctly.\n", view.StepCount)
		case domain.OutcomeLose:
			fmt.Fprintf(&b, "# Quiz finished\n\nYou scored %d out of %d.\n", view.Score, view.StepCount)
		default:
			b.WriteString("# Quiz closed\n")
		}
	}

	return b.String()
}

func mark(c domain.ChoiceView) string {
	switch c.Variant {
	case domain.VariantSuccess:
		return " ✓"
	case domain.VariantError:
		return " ✗"
	}
	return ""
}

func titleOr(title, fallback string) string {
	if title == "" {
		return fallback
	}
	return title
}
