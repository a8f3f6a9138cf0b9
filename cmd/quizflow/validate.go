package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/internal/config"
	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/pkg/adapters/loam"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/quizfile"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Check quiz decks for errors",
	Long: `Parses every deck and checks it can be played: at least one step, every
step with choices. Steps without a correct choice are reported as warnings.

Paths may be deck files or directories; the default is --dir.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path, cmd.Flags())
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = []string{cfg.Quizzes.Dir}
		}

		var decks []deckSource
		for _, p := range args {
			found, err := collectDecks(cmd.Context(), p, cfg.Quizzes.Format)
			if err != nil {
				return err
			}
			decks = append(decks, found...)
		}
		if len(decks) == 0 {
			return fmt.Errorf("no quiz decks found in %v", args)
		}

		if failed := report(cmd.OutOrStdout(), decks); failed > 0 {
			return fmt.Errorf("%d of %d decks are invalid", failed, len(decks))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "All %d decks are valid! ✅\n", len(decks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// deckSource is a parsed deck, or the error that prevented parsing it.
type deckSource struct {
	name string
	quiz domain.Quiz
	err  error
}

func collectDecks(ctx context.Context, path, format string) ([]deckSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		quiz, err := quizfile.ParseFile(path)
		return []deckSource{{name: path, quiz: quiz, err: err}}, nil
	}

	if format == config.FormatMarkdown {
		loader, err := loam.Open(path)
		if err != nil {
			return nil, err
		}
		ids, err := loader.List(ctx)
		if err != nil {
			return nil, err
		}
		decks := make([]deckSource, 0, len(ids))
		for _, id := range ids {
			quiz, err := loader.Load(ctx, id)
			decks = append(decks, deckSource{name: id, quiz: quiz, err: err})
		}
		return decks, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var decks []deckSource
	for _, entry := range entries {
		if entry.IsDir() || !quizfile.IsQuizFile(entry.Name()) {
			continue
		}
		file := filepath.Join(path, entry.Name())
		quiz, err := quizfile.ParseFile(file)
		decks = append(decks, deckSource{name: file, quiz: quiz, err: err})
	}
	sort.Slice(decks, func(i, j int) bool { return decks[i].name < decks[j].name })
	return decks, nil
}

// report prints one line per deck and returns the number of invalid decks.
func report(w io.Writer, decks []deckSource) int {
	failed := 0
	for _, d := range decks {
		if d.err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", d.name, d.err)
			continue
		}
		flow, err := quizflow.NewFromQuiz(d.quiz, quizflow.WithLogger(logging.NewNop()))
		if err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", d.name, err)
			continue
		}
		fmt.Fprintf(w, "✓ %s (%s, %d steps)\n", d.name, d.quiz.ID, len(d.quiz.Steps))
		for _, warning := range flow.Warnings() {
			fmt.Fprintf(w, "  ⚠ %s\n", warning)
		}
	}
	return failed
}
