package runtime

import (
	"fmt"

	"github.com/aretw0/quizflow/pkg/domain"
)

// Validate checks that a quiz can be played.
// Hard failures are returned as *domain.ConfigurationError. Soft problems,
// such as a step without any correct choice (which makes winning impossible),
// are returned as warnings.
func Validate(quiz domain.Quiz) ([]string, error) {
	if len(quiz.Steps) == 0 {
		return nil, &domain.ConfigurationError{Problems: []string{"quiz has no steps"}}
	}

	var problems, warnings []string
	for i, step := range quiz.Steps {
		if len(step.Choices) == 0 {
			problems = append(problems, fmt.Sprintf("step %d (%q) has no choices", i, step.Title))
			continue
		}
		if step.CorrectTitle == "" || step.IncorrectTitle == "" {
			warnings = append(warnings, fmt.Sprintf("step %d (%q) is missing a correct or incorrect answer title", i, step.Title))
		}
		if !step.HasCorrectChoice() {
			warnings = append(warnings, fmt.Sprintf("step %d (%q) has no correct choice: the quiz cannot be won", i, step.Title))
		}
	}

	if len(problems) > 0 {
		return warnings, &domain.ConfigurationError{Problems: problems}
	}
	return warnings, nil
}
