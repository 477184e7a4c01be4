package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"stickies/internal/service"
)

func (s *Server) registerTransferTools() {
	s.mcp.AddTool(mcp.NewTool("export_board",
		mcp.WithDescription("Export the whole board as the JSON snapshot it is stored as"),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
	), s.handleExportBoard)

	s.mcp.AddTool(mcp.NewTool("import_board",
		mcp.WithDescription("🛑 DESTRUCTIVE: Merge a board snapshot into the board. Cards with matching ids are overwritten. Requires user approval."),
		mcp.WithString("snapshot",
			mcp.Description(`JSON object mapping card ids to {"x","y","width","height","text","z"}`),
			mcp.Required(),
		),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleImportBoard)
}

func (s *Server) handleExportBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(string(s.board.Export().Data)), nil
}

func (s *Server) handleImportBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snapshot, _ := req.GetArguments()["snapshot"].(string)
	plan, err := s.board.Import(background(ctx), []byte(snapshot), s.approval)
	if service.IsDeclined(err) {
		return textResult("Import was rejected by the user"), nil
	}
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Imported %d cards: %d overwritten, %d new", plan.Total, plan.Existing, plan.New)), nil
}
