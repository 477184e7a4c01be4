package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickies/internal/canvas"
	"stickies/internal/domain"
	"stickies/internal/service"
	"stickies/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *service.MockEmitter) {
	t.Helper()
	kv := storage.NewMemoryKV()
	store := canvas.NewStore(kv, domain.Size{Width: 6, Height: 6}, nil)
	store.Load()

	n := 0
	settings := canvas.DefaultSettings()
	settings.NewID = func() string {
		n++
		return fmt.Sprintf("card-%d", n)
	}
	em := &service.MockEmitter{}
	board := service.NewBoardService(store, settings, domain.Size{Width: 20, Height: 10}, em, nil)
	return New(Deps{Emitter: em, Board: board}), em
}

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h toolHandler, args map[string]any) (string, error) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		return "", err
	}
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, nil
}

// approveNext resolves the next approval request with answer.
func approveNext(t *testing.T, s *Server, em *service.MockEmitter, answer bool) {
	t.Helper()
	go func() {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if reqs := em.Named(EventApprovalRequired); len(reqs) > 0 {
				action := reqs[len(reqs)-1].Data.(PendingAction)
				if s.Approvals().Resolve(action.ID, answer) {
					return
				}
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
}

func TestCreateCard_AutoPlacement(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := call(t, s.handleCreateCard, map[string]any{"text": "first"})
	require.NoError(t, err)
	_, err = call(t, s.handleCreateCard, map[string]any{"text": "second"})
	require.NoError(t, err)

	first, _ := s.board.GetCard("card-1")
	second, _ := s.board.GetCard("card-2")
	assert.Equal(t, domain.Point{X: 0, Y: 0}, domain.Point{X: first.X, Y: first.Y})
	assert.Equal(t, 352.0, second.X)
	assert.Equal(t, 0.0, second.Y)
	assert.Greater(t, second.Z, first.Z)
}

func TestCreateCard_ExplicitPositionSnaps(t *testing.T) {
	s, _ := newTestServer(t)

	_, err := call(t, s.handleCreateCard, map[string]any{"x": 30.0, "y": 7.0, "width": 8.0, "height": 8.0})
	require.NoError(t, err)

	c, err := s.board.GetCard("card-1")
	require.NoError(t, err)
	assert.Equal(t, 32.0, c.X)
	assert.Equal(t, 0.0, c.Y)
	assert.Equal(t, 8.0, c.Width)
}

func TestMoveResizeAppend(t *testing.T) {
	s, _ := newTestServer(t)
	_, err := call(t, s.handleCreateCard, map[string]any{"text": "line one"})
	require.NoError(t, err)

	_, err = call(t, s.handleMoveCard, map[string]any{"id": "card-1", "x": 100.0, "y": 50.0})
	require.NoError(t, err)
	_, err = call(t, s.handleResizeCard, map[string]any{"id": "card-1", "width": 2.0, "height": 12.0})
	require.NoError(t, err)
	_, err = call(t, s.handleAppendCardContent, map[string]any{"id": "card-1", "text": "line two"})
	require.NoError(t, err)

	c, _ := s.board.GetCard("card-1")
	assert.Equal(t, 96.0, c.X)
	assert.Equal(t, 48.0, c.Y)
	assert.Equal(t, 6.0, c.Width)
	assert.Equal(t, 12.0, c.Height)
	assert.Equal(t, "line one\nline two", c.Text)

	_, err = call(t, s.handleMoveCard, map[string]any{"id": "card-1"})
	require.Error(t, err)
	_, err = call(t, s.handleGetCard, map[string]any{})
	require.Error(t, err)
}

func TestArrangeCards(t *testing.T) {
	s, _ := newTestServer(t)
	for i := 0; i < 3; i++ {
		_, err := call(t, s.handleCreateCard, map[string]any{"x": 0.0, "y": 0.0})
		require.NoError(t, err)
	}

	text, err := call(t, s.handleArrangeCards, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "Arranged 3 cards", text)

	cards := s.board.ListCards()
	for i := range cards {
		for j := i + 1; j < len(cards); j++ {
			a := domain.Rect{X: cards[i].X, Y: cards[i].Y, W: cards[i].Width * 16, H: cards[i].Height * 16}
			b := domain.Rect{X: cards[j].X, Y: cards[j].Y, W: cards[j].Width * 16, H: cards[j].Height * 16}
			assert.False(t, a.Intersects(b))
		}
	}
}

func TestDeleteCard_Approved(t *testing.T) {
	s, em := newTestServer(t)
	_, err := call(t, s.handleCreateCard, map[string]any{})
	require.NoError(t, err)

	approveNext(t, s, em, true)
	text, err := call(t, s.handleDeleteCard, map[string]any{"id": "card-1"})
	require.NoError(t, err)
	assert.Equal(t, "Card card-1 deleted", text)
	assert.Empty(t, s.board.ListCards())
}

func TestDeleteCard_Rejected(t *testing.T) {
	s, em := newTestServer(t)
	_, err := call(t, s.handleCreateCard, map[string]any{})
	require.NoError(t, err)

	approveNext(t, s, em, false)
	text, err := call(t, s.handleDeleteCard, map[string]any{"id": "card-1"})
	require.NoError(t, err)
	assert.Contains(t, text, "rejected")
	assert.Len(t, s.board.ListCards(), 1)
}

func TestImportBoard(t *testing.T) {
	s, em := newTestServer(t)
	_, err := call(t, s.handleCreateCard, map[string]any{})
	require.NoError(t, err)

	approveNext(t, s, em, true)
	text, err := call(t, s.handleImportBoard, map[string]any{
		"snapshot": `{"card-1":{"width":8,"height":8,"text":"replaced"},"other":{"width":8,"height":8}}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 cards: 1 overwritten, 1 new", text)

	action := em.Named(EventApprovalRequired)[0].Data.(PendingAction)
	assert.Equal(t, string(service.ActionImport), action.Tool)
	assert.Contains(t, action.Metadata, `"existing":1`)

	_, err = call(t, s.handleImportBoard, map[string]any{"snapshot": `[]`})
	require.ErrorIs(t, err, domain.ErrFormat)
}

func TestExportBoardAndSnapshotResource(t *testing.T) {
	s, _ := newTestServer(t)
	_, err := call(t, s.handleCreateCard, map[string]any{"text": "exported"})
	require.NoError(t, err)

	text, err := call(t, s.handleExportBoard, nil)
	require.NoError(t, err)
	assert.Equal(t, s.board.Store().Raw(), text)

	contents, err := s.handleSnapshotResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, text, contents[0].(mcp.TextResourceContents).Text)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "board://card/card-1"
	contents, err = s.handleCardResource(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, contents[0].(mcp.TextResourceContents).Text, `"exported"`)
}

// ─────────────────────────────────────────────────────────────
// ApprovalQueue
// ─────────────────────────────────────────────────────────────

func TestApproval_Timeout(t *testing.T) {
	em := &service.MockEmitter{}
	q := NewApprovalQueue(em, nil)
	q.SetTimeout(30 * time.Millisecond)

	ok, err := q.Confirm(context.Background(), service.Prompt{Action: service.ActionDelete})
	assert.False(t, ok)
	require.ErrorIs(t, err, ErrApprovalTimeout)
	assert.Len(t, em.Named(EventApprovalDismissed), 1)
	assert.False(t, q.Resolve("unknown", true))
}

func TestApproval_StoredMode(t *testing.T) {
	dir := t.TempDir()
	db, err := storage.New(filepath.Join(dir, "stickies.db"), dir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	approvals := storage.NewApprovalStore(db)

	q := NewApprovalQueue(nil, nil)
	q.SetStore(approvals)
	q.poll = 10 * time.Millisecond

	// the desktop app answers through the table
	go func() {
		for i := 0; i < 200; i++ {
			pending, _ := approvals.Pending()
			if len(pending) == 1 {
				approvals.Resolve(pending[0].ID, true)
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	ok, err := q.Confirm(context.Background(), service.Prompt{Action: service.ActionDelete, CardID: "x", Message: "Delete?"})
	require.NoError(t, err)
	assert.True(t, ok)

	pending, err := approvals.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending, "answered approvals are removed")
}
