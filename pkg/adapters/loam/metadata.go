package loam

import "github.com/aretw0/quizflow/pkg/domain"

// DeckMetadata is the frontmatter of a markdown quiz deck.
// The markdown body becomes the quiz description.
type DeckMetadata struct {
	ID          string        `json:"id" mapstructure:"id"`
	Title       string        `json:"title" mapstructure:"title"`
	Dismissable *bool         `json:"dismissable,omitempty" mapstructure:"dismissable"`
	Steps       []domain.Step `json:"steps" mapstructure:"steps"`
}
