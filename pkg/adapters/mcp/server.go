package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/conncheck"
	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/app"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server exposes the demo actions as MCP tools.
type Server struct {
	app       *app.App
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(a *app.App, opts ...Option) *Server {
	s := &Server{
		app:       a,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("conncheck-mcp", strings.TrimSpace(conncheck.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
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
	s.mcpServer.AddTool(mcp.NewTool("check_health",
		mcp.WithDescription("Check whether the backend is reachable."),
	), s.handleCheckHealth)

	s.mcpServer.AddTool(mcp.NewTool("get_greeting",
		mcp.WithDescription("Fetch a greeting from the backend."),
		mcp.WithString("name", mcp.Description("Name to greet (optional, defaults to World)")),
	), s.handleGreeting)

	s.mcpServer.AddTool(mcp.NewTool("list_todos",
		mcp.WithDescription("Fetch the full todo list."),
	), s.handleListTodos)

	s.mcpServer.AddTool(mcp.NewTool("add_todo",
		mcp.WithDescription("Create a todo and return the refreshed list."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Todo title")),
	), s.handleAddTodo)

	s.mcpServer.AddTool(mcp.NewTool("toggle_todo",
		mcp.WithDescription("Flip the completion flag of a todo and return the refreshed list."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo ID")),
	), s.handleToggleTodo)

	s.mcpServer.AddTool(mcp.NewTool("delete_todo",
		mcp.WithDescription("Delete a todo and return the refreshed list."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Todo ID")),
	), s.handleDeleteTodo)

	ops := make([]string, 0, len(domain.Operations))
	for _, op := range domain.Operations {
		ops = append(ops, string(op))
	}
	s.mcpServer.AddTool(mcp.NewTool("calculate",
		mcp.WithDescription("Ask the backend to apply an arithmetic operation."),
		mcp.WithNumber("a", mcp.Required(), mcp.Description("Left operand")),
		mcp.WithNumber("b", mcp.Required(), mcp.Description("Right operand")),
		mcp.WithString("operation", mcp.Required(), mcp.Enum(ops...), mcp.Description("Operation")),
	), s.handleCalculate)

	s.mcpServer.AddTool(mcp.NewTool("random_number",
		mcp.WithDescription("Fetch a random number between 1 and 100."),
	), s.handleRandom)
}

func (s *Server) handleCheckHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.CheckHealth(ctx); err != nil {
		return s.failure("check_health", err), nil
	}
	health, _ := s.app.Health()
	return jsonResult(health)
}

func (s *Server) handleGreeting(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.FetchGreeting(ctx, request.GetString("name", "")); err != nil {
		return s.failure("get_greeting", err), nil
	}
	greeting, _ := s.app.Greeting()
	return jsonResult(greeting)
}

func (s *Server) handleListTodos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.FetchTodos(ctx); err != nil {
		return s.failure("list_todos", err), nil
	}
	return jsonResult(s.app.Todos())
}

func (s *Server) handleAddTodo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.app.AddTodo(ctx, title); err != nil {
		return s.failure("add_todo", err), nil
	}
	return jsonResult(s.app.Todos())
}

func (s *Server) handleToggleTodo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.app.ToggleTodo(ctx, id); err != nil {
		return s.failure("toggle_todo", err), nil
	}
	return jsonResult(s.app.Todos())
}

func (s *Server) handleDeleteTodo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.app.DeleteTodo(ctx, id); err != nil {
		return s.failure("delete_todo", err), nil
	}
	return jsonResult(s.app.Todos())
}

func (s *Server) handleCalculate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := request.RequireFloat("a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := request.RequireFloat("b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	op, err := request.RequireString("operation")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.app.Calculate(ctx, a, b, domain.Operation(op)); err != nil {
		return s.failure("calculate", err), nil
	}
	calc, _ := s.app.Calculation()
	return jsonResult(calc)
}

func (s *Server) handleRandom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.app.FetchRandom(ctx); err != nil {
		return s.failure("random_number", err), nil
	}
	n, _ := s.app.Random()
	return jsonResult(n)
}

// failure turns the error of this call into a tool error. Action failures
// already carry "<label>: <cause>"; input rejected before any request carries
// its own message.
func (s *Server) failure(tool string, err error) *mcp.CallToolResult {
	s.logger.Warn("MCP tool failed", "tool", tool, "err", err)
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("conncheck://state", "Action Controller State",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.app.State())
		if err != nil {
			return nil, fmt.Errorf("failed to encode state: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "conncheck://state",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
