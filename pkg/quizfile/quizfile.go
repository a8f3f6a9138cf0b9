// Package quizfile reads quiz decks from YAML or JSON documents.
//
// Documents are decoded into a generic tree first and then mapped onto
// domain.Quiz with mapstructure, so unknown keys are reported instead of
// silently ignored.
package quizfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions recognised as quiz decks, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Parse decodes a deck. JSON is accepted as a subset of YAML.
func Parse(data []byte) (domain.Quiz, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Quiz{}, fmt.Errorf("failed to parse quiz document: %w", err)
	}
	if raw == nil {
		return domain.Quiz{}, errors.New("empty quiz document")
	}

	var quiz domain.Quiz
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "mapstructure",
		ErrorUnused: true,
		Result:      &quiz,
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return domain.Quiz{}, fmt.Errorf("failed to decode quiz: %w", err)
	}
	return quiz, nil
}

// ParseFile reads and decodes one deck. The ID defaults to the file name without extension.
func ParseFile(path string) (domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz, err := Parse(data)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("%s: %w", path, err)
	}
	if quiz.ID == "" {
		quiz.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return quiz, nil
}

// IsQuizFile reports whether the path has a deck extension.
func IsQuizFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DirLoader implements ports.QuizLoader over a flat directory of deck files.
type DirLoader struct {
	Dir string
}

// NewDirLoader creates a loader reading decks from dir.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{Dir: dir}
}

// Load finds the deck whose file name (or declared ID) matches quizID.
func (l *DirLoader) Load(ctx context.Context, quizID string) (domain.Quiz, error) {
	for _, ext := range Extensions {
		path := filepath.Join(l.Dir, quizID+ext)
		if _, err := os.Stat(path); err == nil {
			quiz, err := ParseFile(path)
			if err != nil {
				return domain.Quiz{}, err
			}
			quiz.ID = quizID
			return quiz, nil
		}
	}

	// Fall back to declared IDs that differ from file names.
	quizzes, err := l.all()
	if err != nil {
		return domain.Quiz{}, err
	}
	for _, q := range quizzes {
		if q.ID == quizID {
			return q, nil
		}
	}
	return domain.Quiz{}, fmt.Errorf("%w: %s", domain.ErrQuizNotFound, quizID)
}

// List returns the IDs of all decks in the directory, sorted.
func (l *DirLoader) List(ctx context.Context) ([]string, error) {
	quizzes, err := l.all()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (l *DirLoader) all() ([]domain.Quiz, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read quiz directory: %w", err)
	}

	seen := make(map[string]string)
	var quizzes []domain.Quiz
	for _, entry := range entries {
		if entry.IsDir() || !IsQuizFile(entry.Name()) {
			continue
		}
		path := filepath.Join(l.Dir, entry.Name())
		quiz, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[quiz.ID]; ok {
			return nil, fmt.Errorf("collision detected: quiz ID '%s' is defined in both '%s' and '%s'", quiz.ID, prev, entry.Name())
		}
		seen[quiz.ID] = entry.Name()
		quizzes = append(quizzes, quiz)
	}
	return quizzes, nil
}
