package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"stickies/internal/domain"
	"stickies/internal/service"
)

func (s *Server) registerCardTools() {
	// ── list_cards ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_cards",
		mcp.WithDescription("List every card on the board, bottom of the stack first. Positions are pixels, sizes are grid units."),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
	), s.handleListCards)

	// ── get_card ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_card",
		mcp.WithDescription("Get one card by id"),
		mcp.WithString("id", mcp.Description("Card ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
	), s.handleGetCard)

	// ── create_card ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_card",
		mcp.WithDescription("Create a card on top of the stack. Position is auto-calculated if not provided."),
		mcp.WithNumber("x", mcp.Description("X position in pixels (optional, auto-layout if omitted)")),
		mcp.WithNumber("y", mcp.Description("Y position in pixels (optional, auto-layout if omitted)")),
		mcp.WithNumber("width", mcp.Description("Width in grid units (optional)")),
		mcp.WithNumber("height", mcp.Description("Height in grid units (optional)")),
		mcp.WithString("text", mcp.Description("Card text, markdown (optional)")),
	), s.handleCreateCard)

	// ── move_card ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_card",
		mcp.WithDescription("Move a card. The position snaps to the grid and stays on the canvas."),
		mcp.WithString("id", mcp.Description("Card ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New X position in pixels"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New Y position in pixels"), mcp.Required()),
	), s.handleMoveCard)

	// ── resize_card ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_card",
		mcp.WithDescription("Resize a card. Sizes below the minimum are raised to it."),
		mcp.WithString("id", mcp.Description("Card ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width in grid units"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height in grid units"), mcp.Required()),
	), s.handleResizeCard)

	// ── update_card_content ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_card_content",
		mcp.WithDescription("Replace a card's text"),
		mcp.WithString("id", mcp.Description("Card ID"), mcp.Required()),
		mcp.WithString("text", mcp.Description("New text"), mcp.Required()),
	), s.handleUpdateCardContent)

	// ── append_card_content ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("append_card_content",
		mcp.WithDescription("Append text to a card on a new line"),
		mcp.WithString("id", mcp.Description("Card ID"), mcp.Required()),
		mcp.WithString("text", mcp.Description("Text to append"), mcp.Required()),
	), s.handleAppendCardContent)

	// ── bring_to_front ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("bring_to_front",
		mcp.WithDescription("Raise a card above every other card"),
		mcp.WithString("id", mcp.Description("Card ID"), mcp.Required()),
	), s.handleBringToFront)

	// ── arrange_cards ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("arrange_cards",
		mcp.WithDescription("Lay every card out in rows, keeping stacking order"),
		mcp.WithNumber("startX", mcp.Description("Starting X position (default 0)")),
		mcp.WithNumber("startY", mcp.Description("Starting Y position (default 0)")),
	), s.handleArrangeCards)

	// ── render_card ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("render_card",
		mcp.WithDescription("Render a card's markdown text to HTML"),
		mcp.WithString("id", mcp.Description("Card ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
	), s.handleRenderCard)

	// ── delete_card (destructive) ──────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_card",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete a card. Requires user approval."),
		mcp.WithString("id", mcp.Description("Card ID to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteCard)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleListCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.board.ListCards())
}

func (s *Server) handleGetCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	card, err := s.board.GetCard(id)
	if err != nil {
		return nil, err
	}
	return jsonResult(card)
}

func (s *Server) handleCreateCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	in := service.CardInput{}
	in.Width, _ = number(args, "width")
	in.Height, _ = number(args, "height")
	in.Text, _ = args["text"].(string)

	x, hasX := number(args, "x")
	y, hasY := number(args, "y")
	if hasX && hasY {
		in.X, in.Y = x, y
	} else {
		w, h := in.Width, in.Height
		def := s.board.DefaultSize()
		if w <= 0 {
			w = def.Width
		}
		if h <= 0 {
			h = def.Height
		}
		in.X, in.Y = s.layout.NextPosition(s.board.Store().All().Cards(), w, h)
	}

	card, err := s.board.CreateCard(ctx, in)
	if err != nil {
		return nil, err
	}
	return jsonResult(card)
}

func (s *Server) handleMoveCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireID(args)
	if err != nil {
		return nil, err
	}
	x, okX := number(args, "x")
	y, okY := number(args, "y")
	if !okX || !okY {
		return nil, fmt.Errorf("x and y are required")
	}
	card, err := s.board.MoveCard(ctx, id, domain.Point{X: x, Y: y})
	if err != nil {
		return nil, err
	}
	return jsonResult(card)
}

func (s *Server) handleResizeCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireID(args)
	if err != nil {
		return nil, err
	}
	w, okW := number(args, "width")
	h, okH := number(args, "height")
	if !okW || !okH {
		return nil, fmt.Errorf("width and height are required")
	}
	card, err := s.board.ResizeCard(ctx, id, domain.Size{Width: w, Height: h})
	if err != nil {
		return nil, err
	}
	return jsonResult(card)
}

func (s *Server) handleUpdateCardContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireID(args)
	if err != nil {
		return nil, err
	}
	text, _ := args["text"].(string)
	if _, err := s.board.UpdateContent(ctx, id, text); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Card %s updated", id)), nil
}

func (s *Server) handleAppendCardContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireID(args)
	if err != nil {
		return nil, err
	}
	extra, _ := args["text"].(string)
	card, err := s.board.GetCard(id)
	if err != nil {
		return nil, err
	}
	text := extra
	if card.Text != "" {
		text = card.Text + "\n" + extra
	}
	if _, err := s.board.UpdateContent(ctx, id, text); err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Appended to card %s", id)), nil
}

func (s *Server) handleBringToFront(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	card, err := s.board.BringToFront(ctx, id)
	if err != nil {
		return nil, err
	}
	return jsonResult(card)
}

func (s *Server) handleArrangeCards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	startX, _ := number(args, "startX")
	startY, _ := number(args, "startY")

	cards := s.layout.Arrange(s.board.Store().All().Cards(), startX, startY)
	for _, c := range cards {
		if _, err := s.board.MoveCard(ctx, c.ID, domain.Point{X: c.X, Y: c.Y}); err != nil {
			return nil, fmt.Errorf("arrange %s: %w", c.ID, err)
		}
	}
	return textResult(fmt.Sprintf("Arranged %d cards", len(cards))), nil
}

func (s *Server) handleRenderCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	html, err := s.board.RenderCard(id)
	if err != nil {
		return nil, err
	}
	return textResult(html), nil
}

func (s *Server) handleDeleteCard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requireID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	err = s.board.DeleteCard(background(ctx), id, s.approval)
	if service.IsDeclined(err) {
		return textResult(fmt.Sprintf("Deleting card %s was rejected by the user", id)), nil
	}
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Card %s deleted", id)), nil
}
