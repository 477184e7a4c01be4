package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"stickies/internal/service"
	"stickies/internal/storage"
)

// ErrApprovalTimeout is returned when nobody answers an approval in time.
var ErrApprovalTimeout = errors.New("approval timed out")

// Approval events sent to the desktop shell.
const (
	EventApprovalRequired  = "mcp:approval-required"
	EventApprovalDismissed = "mcp:approval-dismissed"
)

// PendingAction represents a destructive operation awaiting user approval.
type PendingAction struct {
	ID          string `json:"id"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	Metadata    string `json:"metadata"` // JSON with the card id or import counts
}

// ApprovalQueue asks a human to approve destructive tool calls. It is the
// service.Confirmer the MCP tools hand to delete and import. Two modes:
//   - In-process (desktop app hosting MCP): channels plus an emitted event
//   - Stored (standalone MCP): rows in mcp_approvals, polled until resolved
type ApprovalQueue struct {
	mu      sync.Mutex
	pending map[string]chan bool
	emitter service.EventEmitter
	timeout time.Duration
	poll    time.Duration
	store   *storage.ApprovalStore
	log     *slog.Logger
}

var _ service.Confirmer = (*ApprovalQueue)(nil)

func NewApprovalQueue(emitter service.EventEmitter, log *slog.Logger) *ApprovalQueue {
	if emitter == nil {
		emitter = service.NoopEmitter{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &ApprovalQueue{
		pending: make(map[string]chan bool),
		emitter: emitter,
		timeout: 120 * time.Second,
		poll:    500 * time.Millisecond,
		log:     log,
	}
}

// SetStore switches to stored mode for a standalone MCP process.
func (q *ApprovalQueue) SetStore(store *storage.ApprovalStore) {
	q.store = store
}

// SetTimeout changes how long a request waits for an answer.
func (q *ApprovalQueue) SetTimeout(d time.Duration) {
	q.timeout = d
}

// Confirm blocks until the prompt is approved, rejected or times out.
// A rejection is (false, nil).
func (q *ApprovalQueue) Confirm(ctx context.Context, p service.Prompt) (bool, error) {
	meta, _ := json.Marshal(map[string]any{"cardId": p.CardID, "plan": p.Plan})
	action := PendingAction{
		ID:          uuid.New().String(),
		Tool:        string(p.Action),
		Description: p.Message,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata:    string(meta),
	}
	if q.store != nil {
		return q.requestStored(ctx, action)
	}
	return q.requestViaChannel(ctx, action)
}

// requestStored writes a pending approval and polls until it is resolved.
func (q *ApprovalQueue) requestStored(ctx context.Context, a PendingAction) (bool, error) {
	err := q.store.Insert(&storage.Approval{ID: a.ID, Tool: a.Tool, Description: a.Description, Metadata: a.Metadata})
	if err != nil {
		return false, err
	}
	defer q.store.Delete(a.ID)

	deadline := time.After(q.timeout)
	ticker := time.NewTicker(q.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status, err := q.store.Status(a.ID)
			if err != nil {
				q.log.Warn("mcp approval: poll", "id", a.ID, "err", err)
				continue
			}
			switch status {
			case storage.ApprovalApproved:
				return true, nil
			case storage.ApprovalRejected:
				return false, nil
			}
		case <-deadline:
			return false, fmt.Errorf("%w after %s: %s", ErrApprovalTimeout, q.timeout, a.Tool)
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
}

func (q *ApprovalQueue) requestViaChannel(ctx context.Context, a PendingAction) (bool, error) {
	ch := make(chan bool, 1)

	q.mu.Lock()
	q.pending[a.ID] = ch
	q.mu.Unlock()
	defer q.cleanup(a.ID)

	q.emitter.Emit(ctx, EventApprovalRequired, a)

	select {
	case approved := <-ch:
		return approved, nil
	case <-time.After(q.timeout):
		q.emitter.Emit(ctx, EventApprovalDismissed, map[string]string{"id": a.ID})
		return false, fmt.Errorf("%w after %s: %s", ErrApprovalTimeout, q.timeout, a.Tool)
	case <-ctx.Done():
		q.emitter.Emit(ctx, EventApprovalDismissed, map[string]string{"id": a.ID})
		return false, ctx.Err()
	}
}

// Resolve answers an in-process request. It reports false for unknown ids.
func (q *ApprovalQueue) Resolve(actionID string, approved bool) bool {
	q.mu.Lock()
	ch, ok := q.pending[actionID]
	q.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case ch <- approved:
	default:
	}
	return true
}

func (q *ApprovalQueue) cleanup(id string) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}
