package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"

	mcpserver "stickies/internal/mcp"
)

// ============================================================
// In-process MCP
// ============================================================

// startMCP serves MCP over HTTP from the desktop app when mcp_listen is set.
// Destructive tools then ask through mcp:approval-required events, answered
// with ResolveApproval.
func (a *App) startMCP() {
	addr := a.core.Config.MCPListen
	if addr == "" {
		return
	}
	a.mcp = mcpserver.New(mcpserver.Deps{Emitter: a.emitter, Board: a.core.Board, Log: a.log})
	a.mcpHTTP = a.mcp.HTTP()
	go func(h *server.StreamableHTTPServer) {
		if err := h.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("mcp: http server stopped", "addr", addr, "err", err)
		}
	}(a.mcpHTTP)
	a.log.Info("mcp: serving over http", "addr", addr)
}

func (a *App) stopMCP(ctx context.Context) {
	if a.mcpHTTP == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.mcpHTTP.Shutdown(ctx); err != nil {
		a.log.Warn("mcp: http shutdown", "err", err)
	}
	a.mcpHTTP = nil
}

// ResolveApproval answers an approval the user saw in the frontend. Requests
// from the in-process server are answered directly; anything else is a row
// written by the standalone server.
func (a *App) ResolveApproval(id string, approved bool) error {
	if a.mcp != nil && a.mcp.Approvals().Resolve(id, approved) {
		return nil
	}
	_, err := a.core.Approvals.Resolve(id, approved)
	return err
}
