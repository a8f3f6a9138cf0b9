package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// maxBodyBytes bounds request bodies; every body here is a tiny JSON object.
const maxBodyBytes = 1 << 16

// QuizService is the subset of quizflow.Service exposed over HTTP.
type QuizService interface {
	Quizzes(ctx context.Context) ([]quizflow.QuizSummary, error)
	Open(ctx context.Context, quizID string) (quizflow.Response, error)
	View(ctx context.Context, sessionID string) (domain.View, error)
	Start(ctx context.Context, sessionID string) (quizflow.Response, error)
	Select(ctx context.Context, sessionID string, stepIndex, choiceIndex int) (quizflow.Response, error)
	Advance(ctx context.Context, sessionID string) (quizflow.Response, error)
	Close(ctx context.Context, sessionID string) (quizflow.Response, error)
}

// SelectRequest is the body of POST /sessions/{id}/select.
type SelectRequest struct {
	Step   *int `json:"step"`
	Choice *int `json:"choice"`
}

// Server exposes a QuizService as a JSON API.
type Server struct {
	Service QuizService
	Streams *StreamManager

	logger  *slog.Logger
	metrics http.Handler
	origins []string
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithAllowedOrigins restricts CORS origins (default "*").
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = origins
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc QuizService, opts ...Option) http.Handler {
	s := &Server{
		Service: svc,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
		origins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Get("/quizzes", s.ListQuizzes)
	r.Post("/quizzes/{quizID}/sessions", s.OpenSession)

	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Get("/events", s.SubscribeEvents)
		r.Post("/start", s.Start)
		r.Post("/select", s.Select)
		r.Post("/advance", s.Advance)
		r.Post("/close", s.Close)
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "quizflow-http",
		"version": strings.TrimSpace(quizflow.Version),
	})
}

// ListQuizzes handles GET /quizzes.
func (s *Server) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := s.Service.Quizzes(r.Context())
	if err != nil {
		s.writeError(w, r, "ListQuizzes", err)
		return
	}
	s.writeJSON(w, http.StatusOK, quizzes)
}

// OpenSession handles POST /quizzes/{quizID}/sessions.
func (s *Server) OpenSession(w http.ResponseWriter, r *http.Request) {
	res, err := s.Service.Open(r.Context(), chi.URLParam(r, "quizID"))
	if err != nil {
		s.writeError(w, r, "OpenSession", err)
		return
	}
	w.Header().Set("Location", "/sessions/"+res.View.SessionID)
	s.writeJSON(w, http.StatusCreated, res)
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.Service.View(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, quizflow.Response{View: view})
}

// Start handles POST /sessions/{sessionID}/start.
func (s *Server) Start(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	res, err := s.Service.Start(r.Context(), id)
	s.respond(w, r, "Start", id, res, err)
}

// Select handles POST /sessions/{sessionID}/select.
func (s *Server) Select(w http.ResponseWriter, r *http.Request) {
	var body SelectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.logger.Warn("Select: Invalid request body", "err", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if body.Step == nil || body.Choice == nil {
		http.Error(w, `Invalid request body: "step" and "choice" are required`, http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "sessionID")
	res, err := s.Service.Select(r.Context(), id, *body.Step, *body.Choice)
	s.respond(w, r, "Select", id, res, err)
}

// Advance handles POST /sessions/{sessionID}/advance.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	res, err := s.Service.Advance(r.Context(), id)
	s.respond(w, r, "Advance", id, res, err)
}

// Close handles POST /sessions/{sessionID}/close.
func (s *Server) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	res, err := s.Service.Close(r.Context(), id)
	s.respond(w, r, "Close", id, res, err)
}

// respond writes a transition result and broadcasts its diff to SSE subscribers.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, op, sessionID string, res quizflow.Response, err error) {
	if err != nil {
		s.writeError(w, r, op, err)
		return
	}
	if res.Diff != nil {
		if payload, err := json.Marshal(res.Diff); err == nil {
			s.Streams.Broadcast(sessionID, string(payload))
		}
		if res.View.Phase == domain.PhaseFinished {
			s.Streams.CloseSession(sessionID)
		}
	} else {
		s.logger.Debug(op+": No diff calculated", "session_id", sessionID)
	}
	s.writeJSON(w, http.StatusOK, res)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		oor     *domain.OutOfRangeError
		invalid *domain.ConfigurationError
	)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotDismissable):
		return http.StatusConflict
	case errors.As(err, &oor):
		return http.StatusUnprocessableEntity
	case errors.As(err, &invalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err, "request_id", middleware.GetReqID(r.Context()))
	} else {
		s.logger.Debug(op+" rejected", "err", err, "status", status)
	}
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// SubscribeEvents handles GET /sessions/{sessionID}/events (SSE).
// Every applied transition is pushed as a JSON session diff.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.Service.View(r.Context(), sessionID); err != nil {
		s.writeError(w, r, "SubscribeEvents", err)
		return
	}

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: Subscribing to session updates", "session_id", sessionID)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				fmt.Fprintf(w, "event: end\ndata: finished\n\n")
				flusher.Flush()
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
