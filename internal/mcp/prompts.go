package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("tidy_board",
		mcp.WithPromptDescription("Group related cards and lay the board out so nothing overlaps"),
		mcp.WithArgument("focus",
			mcp.ArgumentDescription("Optional theme to group cards by"),
		),
	), s.handleTidyPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("brainstorm",
		mcp.WithPromptDescription("Capture ideas on a topic as one card each"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Topic to brainstorm"),
			mcp.RequiredArgument(),
		),
	), s.handleBrainstormPrompt)
}

func (s *Server) handleTidyPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	focus := req.Params.Arguments["focus"]
	if focus == "" {
		focus = "whatever themes the cards share"
	}
	return &mcp.GetPromptResult{
		Description: "Tidy the board",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Tidy my sticky-note board, grouping cards by %s.

1. Read board://snapshot or call list_cards.
2. Decide on groups. Do not delete or rewrite any card.
3. Use move_card to put each group in its own row; positions snap to a %.0fpx grid.
4. Use bring_to_front on the card that heads each group.
5. If you have no grouping in mind, call arrange_cards instead.`, focus, s.board.Settings().GridUnit),
				},
			},
		},
	}, nil
}

func (s *Server) handleBrainstormPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := req.Params.Arguments["topic"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Brainstorm: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Brainstorm about "%s" on my sticky-note board.

1. Create a heading card with create_card, text "# %s".
2. Add one create_card per idea, a short markdown line or list each. Omit x and y so cards are placed without overlapping.
3. Finish by calling list_cards and summarizing what you added.`, topic, topic),
				},
			},
		},
	}, nil
}
