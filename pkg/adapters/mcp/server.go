// Package mcp exposes dialogue sessions as MCP tools so agent hosts can
// drive the research bot over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"researchbot/internal/logging"
	"researchbot/pkg/domain"
	"researchbot/pkg/session"
)

// SessionResponse is the structured result returned by every tool.
type SessionResponse struct {
	SessionID string               `json:"session_id" jsonschema_description:"Identifier for follow-up calls"`
	Phase     session.Phase        `json:"phase" jsonschema_description:"Current session phase"`
	Events    []session.Event      `json:"events,omitempty" jsonschema_description:"Messages and input requests produced by this call"`
	Pending   *domain.InputRequest `json:"pending,omitempty" jsonschema_description:"Input the session is waiting for, if any"`
}

// ControllerFactory builds a fresh controller for a new session.
type ControllerFactory func() (*session.Controller, error)

// Server wraps session controllers and exposes them as an MCP server.
type Server struct {
	factory   ControllerFactory
	logger    *slog.Logger
	mcpServer *server.MCPServer

	mu       sync.RWMutex
	sessions map[string]*session.Controller
}

// Option configures a Server.
type Option func(*Server)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an MCP server named after the bot.
func NewServer(factory ControllerFactory, version string, opts ...Option) *Server {
	s := &Server{
		factory:   factory,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("researchbot-mcp", version),
		sessions:  map[string]*session.Controller{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	startTool := mcp.NewTool("start_session",
		mcp.WithDescription("Start a research dialogue about a topic. Returns the assistant's answer and the next input request."),
		mcp.WithString("topic", mcp.Required(), mcp.Description("The research question to open the dialogue with")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(startTool, mcp.NewStructuredToolHandler(s.handleStart))

	resumeTool := mcp.NewTool("resume_session",
		mcp.WithDescription("Answer the pending input request of an existing session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier returned by start_session")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The user's input for the pending request")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(resumeTool, mcp.NewStructuredToolHandler(s.handleResume))

	statusTool := mcp.NewTool("get_session",
		mcp.WithDescription("Inspect the phase and pending input request of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithOutputSchema[SessionResponse](),
	)
	s.mcpServer.AddTool(statusTool, mcp.NewStructuredToolHandler(s.handleStatus))
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	topic, _ := args["topic"].(string)
	if topic == "" {
		return SessionResponse{}, fmt.Errorf("topic is required")
	}

	ctrl, err := s.factory()
	if err != nil {
		return SessionResponse{}, fmt.Errorf("create session: %w", err)
	}
	events, err := ctrl.Start(ctx, topic)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("start session: %w", err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = ctrl
	s.mu.Unlock()

	s.logger.Info("mcp session started", "session_id", id, "thread", ctrl.Thread())
	return s.response(id, ctrl, events), nil
}

func (s *Server) handleResume(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	id, _ := args["session_id"].(string)
	value, _ := args["value"].(string)

	ctrl, ok := s.lookup(id)
	if !ok {
		return SessionResponse{}, fmt.Errorf("unknown session %q", id)
	}
	events, err := ctrl.Resume(ctx, value)
	if err != nil {
		return SessionResponse{}, fmt.Errorf("resume session: %w", err)
	}
	return s.response(id, ctrl, events), nil
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SessionResponse, error) {
	id, _ := args["session_id"].(string)
	ctrl, ok := s.lookup(id)
	if !ok {
		return SessionResponse{}, fmt.Errorf("unknown session %q", id)
	}
	return s.response(id, ctrl, nil), nil
}

func (s *Server) lookup(id string) (*session.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctrl, ok := s.sessions[id]
	return ctrl, ok
}

func (s *Server) response(id string, ctrl *session.Controller, events []session.Event) SessionResponse {
	resp := SessionResponse{SessionID: id, Phase: ctrl.Phase(), Events: events}
	if req, ok := ctrl.Pending(); ok {
		resp.Pending = &req
	}
	return resp
}
