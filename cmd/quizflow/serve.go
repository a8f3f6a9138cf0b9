package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/quizflow/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves the quizzes as a JSON API, with Prometheus metrics on /metrics and session updates over SSE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cmd, appOptions{metrics: true})
		if err != nil {
			return err
		}
		defer a.Close()

		handler := httpAdapter.NewHandler(a.service,
			httpAdapter.WithLogger(a.logger),
			httpAdapter.WithMetrics(a.metrics.Handler()),
			httpAdapter.WithAllowedOrigins(a.cfg.HTTP.Origins...),
		)

		srv := &http.Server{
			Addr:              a.cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			a.logger.Info("Starting QuizFlow server", "addr", srv.Addr, "quizzes", a.cfg.Quizzes.Dir, "store", a.cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-ctx.Done():
			a.logger.Info("Shutdown signal received")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			a.logger.Info("QuizFlow server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringSlice("allow-origins", []string{"*"}, "CORS allowed origins")
}
