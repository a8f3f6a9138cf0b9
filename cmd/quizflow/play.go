package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/quizflow/internal/config"
	"github.com/aretw0/quizflow/internal/presentation/tui"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/aretw0/quizflow/pkg/runner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play <quiz-id>",
	Short: "Play a quiz in the terminal",
	Long: `Opens a new session of the quiz and plays it.

On a terminal this starts the interactive UI. With --headless, or when stdin
or stdout is not a terminal, a line-based prompt is used instead; --json
switches it to JSON lines for automation.

Use --session to resume a session kept by a persistent store (--store file,
sqlite or redis).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")
		if len(args) == 0 && sessionID == "" {
			return fmt.Errorf("a quiz ID or --session is required")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		if sessionID == "" {
			res, err := a.service.Open(ctx, args[0])
			if err != nil {
				return a.quizNotFound(ctx, args[0], err)
			}
			sessionID = res.View.SessionID
		}

		interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)
		var view domain.View
		switch {
		case interactive && !headless && !jsonMode:
			view, err = tui.Run(ctx, a.service, sessionID, tui.WithRenderer(tui.NewRenderer(0)))
		case jsonMode:
			r := runner.NewRunner(a.service,
				runner.WithLogger(a.logger),
				runner.WithInputHandler(runner.NewJSONHandler(os.Stdin, os.Stdout)),
			)
			view, err = r.Run(ctx, sessionID)
		default:
			var opts []runner.TextHandlerOption
			if isTerminal(os.Stdout) {
				opts = append(opts, runner.WithTextHandlerRenderer(tui.NewRenderer(0)))
			}
			r := runner.NewRunner(a.service,
				runner.WithLogger(a.logger),
				runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout, opts...)),
			)
			view, err = r.Run(ctx, sessionID)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		if view.Phase != domain.PhaseFinished && a.cfg.Store.Backend != config.BackendMemory {
			fmt.Fprintf(os.Stderr, "Session saved. Resume with: quizflow play --store %s --session %s\n", a.cfg.Store.Backend, sessionID)
		}
		return nil
	},
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("session", "", "Resume an existing session")
	playCmd.Flags().Bool("headless", false, "Use the line-based prompt even on a terminal")
	playCmd.Flags().Bool("json", false, "Read commands and write views as JSON lines")
}
