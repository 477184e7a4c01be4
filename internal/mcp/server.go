package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stickies/internal/service"
	"stickies/internal/storage"
)

// Server is the MCP server for the sticky-note board.
// It exposes tools, resources, and prompts so AI agents can work on the board.
type Server struct {
	mcp      *server.MCPServer
	approval *ApprovalQueue
	layout   *LayoutEngine
	board    *service.BoardService
	log      *slog.Logger
}

// Deps holds everything the MCP server needs from the app layer.
type Deps struct {
	Emitter service.EventEmitter
	Board   *service.BoardService
	// Approvals enables stored approval mode (standalone process).
	Approvals *storage.ApprovalStore
	Log       *slog.Logger
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	approval := NewApprovalQueue(deps.Emitter, log)
	if deps.Approvals != nil {
		approval.SetStore(deps.Approvals)
	}
	s := &Server{
		approval: approval,
		layout:   NewLayoutEngine(deps.Board.Settings().GridUnit),
		board:    deps.Board,
		log:      log,
	}

	s.mcp = server.NewMCPServer(
		"stickies-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerCardTools()
	s.registerTransferTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("mcp: starting stdio server")
	return server.ServeStdio(s.mcp)
}

// HTTP returns a streamable HTTP transport for s, for hosting MCP inside the
// desktop app. Call Start on it and Shutdown when done.
func (s *Server) HTTP() *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(s.mcp)
}

// Approvals returns the queue destructive tools wait on.
func (s *Server) Approvals() *ApprovalQueue {
	return s.approval
}

// ── Helpers ────────────────────────────────────────────────

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// requireID returns the "id" argument.
func requireID(args map[string]any) (string, error) {
	id, _ := args["id"].(string)
	if id == "" {
		return "", fmt.Errorf("id is required")
	}
	return id, nil
}

// number returns a numeric argument and whether it was given.
func number(args map[string]any, key string) (float64, bool) {
	v, ok := args[key].(float64)
	return v, ok
}

func boolPtr(v bool) *bool { return &v }

// background detaches a tool call from the request so a slow approval is
// not cut short by the client's own deadline handling.
func background(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
