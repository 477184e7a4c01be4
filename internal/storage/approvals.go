package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Approval statuses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Approval is a destructive MCP action written by the standalone server and
// resolved by the desktop app.
type Approval struct {
	ID          string    `json:"id"`
	Tool        string    `json:"tool"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Metadata    string    `json:"metadata"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ApprovalStore is the cross-process approval mailbox in mcp_approvals.
type ApprovalStore struct {
	db *DB
}

func NewApprovalStore(db *DB) *ApprovalStore {
	return &ApprovalStore{db: db}
}

func (s *ApprovalStore) Insert(a *Approval) error {
	a.Status = ApprovalPending
	a.CreatedAt = time.Now().UTC()
	if a.Metadata == "" {
		a.Metadata = "{}"
	}
	_, err := s.db.Conn().Exec(
		`INSERT INTO mcp_approvals (id, tool, description, status, metadata, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Tool, a.Description, a.Status, a.Metadata, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert approval: %w", err)
	}
	return nil
}

// Status returns the approval's status, or "" when it no longer exists.
func (s *ApprovalStore) Status(id string) (string, error) {
	var status string
	err := s.db.Conn().QueryRow(`SELECT status FROM mcp_approvals WHERE id = ?`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return status, err
}

func (s *ApprovalStore) Delete(id string) error {
	_, err := s.db.Conn().Exec(`DELETE FROM mcp_approvals WHERE id = ?`, id)
	return err
}

// Pending lists unresolved approvals, oldest first.
func (s *ApprovalStore) Pending() ([]Approval, error) {
	rows, err := s.db.Conn().Query(
		`SELECT id, tool, description, status, metadata, created_at FROM mcp_approvals
		 WHERE status = ? ORDER BY created_at`, ApprovalPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Approval
	for rows.Next() {
		var a Approval
		if err := rows.Scan(&a.ID, &a.Tool, &a.Description, &a.Status, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Resolve records the user's answer. Resolving an unknown or already
// resolved approval returns false.
func (s *ApprovalStore) Resolve(id string, approved bool) (bool, error) {
	status := ApprovalRejected
	if approved {
		status = ApprovalApproved
	}
	res, err := s.db.Conn().Exec(
		`UPDATE mcp_approvals SET status = ? WHERE id = ? AND status = ?`, status, id, ApprovalPending,
	)
	if err != nil {
		return false, fmt.Errorf("resolve approval: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
