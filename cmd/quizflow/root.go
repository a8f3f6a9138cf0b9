package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quizflow",
	Short: "QuizFlow runs short multiple-choice quizzes",
	Long: `QuizFlow plays onboarding quizzes defined in YAML, JSON or Markdown files,
in the terminal, over an HTTP API or as MCP tools for AI agents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands). Each maps to a config key.
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./quizflow.yaml, or $QUIZFLOW_CONFIG)")
	pf.String("log-level", "info", "Log level: debug, info, warn or error")
	pf.String("dir", ".", "Directory containing the quiz decks")
	pf.String("format", "files", "Quiz format: 'files' (YAML/JSON) or 'markdown' (Loam vault)")
	pf.String("locale", "", "YAML catalog of button labels")
	pf.String("lang", "en", "Language of the button labels")
	pf.String("store", "memory", "Session store: memory, file, redis or sqlite")
	pf.String("store-dir", ".quizflow/sessions", "Directory of the file store")
	pf.String("redis-addr", "localhost:6379", "Redis address")
	pf.Int("redis-db", 0, "Redis database")
	pf.Duration("redis-ttl", 0, "Expiry of Redis sessions (0 keeps the configured default)")
	pf.Bool("redis-lock", false, "Lock sessions in Redis, for several servers sharing one store")
	pf.String("sqlite-path", ".quizflow/sessions.db", "Database file of the sqlite store")
}
