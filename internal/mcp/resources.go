package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	snapshotURI   = "board://snapshot"
	cardURIPrefix = "board://card/"
)

func (s *Server) registerResources() {
	// ── board://snapshot ───────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		snapshotURI,
		"Board Snapshot",
		mcp.WithResourceDescription("The persisted board, keyed by card id"),
		mcp.WithMIMEType("application/json"),
	), s.handleSnapshotResource)

	// ── board://card/{id} ──────────────────────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			cardURIPrefix+"{id}",
			"One Card",
		),
		s.handleCardResource,
	)
}

func (s *Server) handleSnapshotResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      snapshotURI,
			MIMEType: "application/json",
			Text:     s.board.Store().Raw(),
		},
	}, nil
}

func (s *Server) handleCardResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id := strings.TrimPrefix(uri, cardURIPrefix)
	if id == "" || id == uri {
		return nil, fmt.Errorf("could not extract card id from URI: %s", uri)
	}

	card, err := s.board.GetCard(id)
	if err != nil {
		return nil, err
	}
	data, _ := json.MarshalIndent(card, "", "  ")
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
