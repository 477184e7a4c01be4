package app

import (
	"log/slog"

	mcpserver "stickies/internal/mcp"
	"stickies/internal/service"
)

// ServeMCP runs a standalone MCP server on stdin/stdout with no GUI.
// Destructive tools wait for approval through the mcp_approvals table, which
// a running desktop app shows to the user.
func ServeMCP(core *Core, log *slog.Logger) error {
	srv := mcpserver.New(mcpserver.Deps{
		Emitter:   service.NoopEmitter{},
		Board:     core.Board,
		Approvals: core.Approvals,
		Log:       log,
	})
	return srv.ServeStdio()
}
