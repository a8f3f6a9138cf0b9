package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/quizflow"
	"github.com/aretw0/quizflow/internal/logging"
	"github.com/aretw0/quizflow/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/cors"
)

// Service is the subset of quizflow.Service exposed as MCP tools.
type Service interface {
	Quizzes(ctx context.Context) ([]quizflow.QuizSummary, error)
	Open(ctx context.Context, quizID string) (quizflow.Response, error)
	View(ctx context.Context, sessionID string) (domain.View, error)
	Start(ctx context.Context, sessionID string) (quizflow.Response, error)
	Select(ctx context.Context, sessionID string, stepIndex, choiceIndex int) (quizflow.Response, error)
	Advance(ctx context.Context, sessionID string) (quizflow.Response, error)
	Close(ctx context.Context, sessionID string) (quizflow.Response, error)
}

// QuizList is the result of list_quizzes.
type QuizList struct {
	Quizzes []quizflow.QuizSummary `json:"quizzes" jsonschema_description:"Available quizzes"`
}

// ViewResponse is the result of every session tool.
type ViewResponse struct {
	View     domain.View    `json:"view" jsonschema_description:"The rendered session"`
	Events   []domain.Event `json:"events,omitempty" jsonschema_description:"Events produced by the call"`
	Terminal bool           `json:"terminal" jsonschema_description:"True once the quiz is finished"`
}

type openArgs struct {
	QuizID string `json:"quiz_id"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type selectArgs struct {
	SessionID string `json:"session_id"`
	Step      int    `json:"step"`
	Choice    int    `json:"choice"`
}

// Server exposes a quiz Service as an MCP server.
type Server struct {
	svc       Service
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(svc Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		svc:       svc,
		logger:    logger,
		mcpServer: server.NewMCPServer("quizflow-mcp", quizflow.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	mux := http.NewServeMux()
	mux.Handle("/sse", c.Handler(sseServer.SSEHandler()))
	mux.Handle("/message", c.Handler(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_quizzes",
		mcp.WithDescription("List the quizzes that can be opened."),
		mcp.WithOutputSchema[QuizList](),
	), mcp.NewStructuredToolHandler(s.handleListQuizzes))

	s.mcpServer.AddTool(mcp.NewTool("open_quiz",
		mcp.WithDescription("Open a new session of a quiz. Returns the start screen and the session ID."),
		mcp.WithString("quiz_id", mcp.Required(), mcp.Description("ID of the quiz to open")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleOpen))

	s.mcpServer.AddTool(mcp.NewTool("view_session",
		mcp.WithDescription("Render the current screen of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleView))

	s.mcpServer.AddTool(mcp.NewTool("start_quiz",
		mcp.WithDescription("Leave the start screen and show the first question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("select_choice",
		mcp.WithDescription("Answer the displayed question. Only the first answer of a question counts."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithNumber("step", mcp.Required(), mcp.Description("Zero-based index of the displayed question")),
		mcp.WithNumber("choice", mcp.Required(), mcp.Description("Zero-based index of the chosen answer")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleSelect))

	s.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Continue past an answered question. On the last question this concludes the quiz."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleAdvance))

	s.mcpServer.AddTool(mcp.NewTool("close_quiz",
		mcp.WithDescription("Dismiss the quiz without an outcome."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[ViewResponse](),
	), mcp.NewStructuredToolHandler(s.handleClose))
}

func (s *Server) handleListQuizzes(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (QuizList, error) {
	quizzes, err := s.svc.Quizzes(ctx)
	if err != nil {
		return QuizList{}, fmt.Errorf("list quizzes: %w", err)
	}
	return QuizList{Quizzes: quizzes}, nil
}

func (s *Server) handleOpen(ctx context.Context, _ mcp.CallToolRequest, args openArgs) (ViewResponse, error) {
	if args.QuizID == "" {
		return ViewResponse{}, errors.New("quiz_id is required")
	}
	return s.wrap("open_quiz", args.QuizID)(s.svc.Open(ctx, args.QuizID))
}

func (s *Server) handleView(ctx context.Context, _ mcp.CallToolRequest, args sessionArgs) (ViewResponse, error) {
	if args.SessionID == "" {
		return ViewResponse{}, errors.New("session_id is required")
	}
	view, err := s.svc.View(ctx, args.SessionID)
	if err != nil {
		return ViewResponse{}, fmt.Errorf("view_session: %w", err)
	}
	return ViewResponse{View: view, Terminal: view.Phase == domain.PhaseFinished}, nil
}

func (s *Server) handleStart(ctx context.Context, _ mcp.CallToolRequest, args sessionArgs) (ViewResponse, error) {
	return s.wrap("start_quiz", args.SessionID)(s.svc.Start(ctx, args.SessionID))
}

func (s *Server) handleSelect(ctx context.Context, _ mcp.CallToolRequest, args selectArgs) (ViewResponse, error) {
	return s.wrap("select_choice", args.SessionID)(s.svc.Select(ctx, args.SessionID, args.Step, args.Choice))
}

func (s *Server) handleAdvance(ctx context.Context, _ mcp.CallToolRequest, args sessionArgs) (ViewResponse, error) {
	return s.wrap("advance", args.SessionID)(s.svc.Advance(ctx, args.SessionID))
}

func (s *Server) handleClose(ctx context.Context, _ mcp.CallToolRequest, args sessionArgs) (ViewResponse, error) {
	return s.wrap("close_quiz", args.SessionID)(s.svc.Close(ctx, args.SessionID))
}

// wrap converts a service response into a tool result.
func (s *Server) wrap(tool, target string) func(quizflow.Response, error) (ViewResponse, error) {
	return func(res quizflow.Response, err error) (ViewResponse, error) {
		if err != nil {
			s.logger.Warn("MCP tool failed", "tool", tool, "target", target, "err", err)
			return ViewResponse{}, fmt.Errorf("%s: %w", tool, err)
		}
		return ViewResponse{
			View:     res.View,
			Events:   res.Events,
			Terminal: res.View.Phase == domain.PhaseFinished,
		}, nil
	}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("quizflow://quizzes", "Available Quizzes",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		quizzes, err := s.svc.Quizzes(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list quizzes: %w", err)
		}
		data, err := json.Marshal(quizzes)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "quizflow://quizzes",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
