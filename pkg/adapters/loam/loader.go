package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/quizflow/pkg/domain"
)

// Loader adapts a Loam repository of markdown decks to ports.QuizLoader.
type Loader struct {
	Repo *loam.TypedRepository[DeckMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[DeckMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Read-only avoids Loam's dev-mode sandbox: decks are never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[DeckMetadata](repo)), nil
}

// Load returns the deck whose normalized ID is quizID.
func (l *Loader) Load(ctx context.Context, quizID string) (domain.Quiz, error) {
	decks, err := l.decks(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	d, ok := decks[quizID]
	if !ok {
		return domain.Quiz{}, fmt.Errorf("%w: %s", domain.ErrQuizNotFound, quizID)
	}

	// List leaves the body empty; the description comes from a full read.
	doc, err := l.Repo.Get(ctx, d.docID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("loam get failed for %s: %w", d.docID, err)
	}
	return domain.Quiz{
		ID:          quizID,
		Title:       doc.Data.Title,
		Description: strings.TrimSpace(doc.Content),
		Steps:       doc.Data.Steps,
		Dismissable: doc.Data.Dismissable,
	}, nil
}

// List lists all deck IDs in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	decks, err := l.decks(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(decks))
	for id := range decks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// deck maps a normalized quiz ID to the document that defines it.
type deck struct {
	docID string
}

func (l *Loader) decks(ctx context.Context) (map[string]deck, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	decks := make(map[string]deck, len(docs))
	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		decks[id] = deck{docID: doc.ID}
	}
	return decks, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
