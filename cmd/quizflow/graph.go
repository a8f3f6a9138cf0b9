package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/quizflow/internal/config"
	"github.com/aretw0/quizflow/internal/presentation/graph"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/quizfile"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <quiz-id|file>",
	Short: "Print a Mermaid flowchart of a quiz",
	Long: `Prints the quiz as a Mermaid flowchart: start screen, steps with their
choices, and the win, lose and closed outcomes.

With --session, the steps already answered and the current position of that
session are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		ctx := cmd.Context()

		if sessionID == "" {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path, cmd.Flags())
			if err != nil {
				return err
			}
			quiz, err := resolveQuiz(ctx, cfg.Quizzes, args[0])
			if err != nil {
				return err
			}
			return writeGraph(cmd.OutOrStdout(), quiz, nil)
		}

		a, err := newApp(ctx, cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		view, err := a.service.View(ctx, sessionID)
		if err != nil {
			return err
		}
		quiz, err := resolveQuiz(ctx, a.cfg.Quizzes, view.QuizID)
		if err != nil {
			return err
		}
		return writeGraph(cmd.OutOrStdout(), quiz, graph.OverlayFromView(view))
	},
}

func init() {
	graphCmd.Flags().String("session", "", "Highlight the progress of this session")
	rootCmd.AddCommand(graphCmd)
}

// resolveQuiz reads ref as a deck file when it exists, otherwise loads it by ID.
func resolveQuiz(ctx context.Context, cfg config.QuizzesConfig, ref string) (domain.Quiz, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return quizfile.ParseFile(ref)
	}
	loader, err := newLoader(cfg)
	if err != nil {
		return domain.Quiz{}, err
	}
	return loader.Load(ctx, ref)
}

func writeGraph(w io.Writer, quiz domain.Quiz, overlay *graph.Overlay) error {
	_, err := fmt.Fprint(w, graph.GenerateMermaid(quiz, overlay))
	return err
}
