package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the sender of a conversation turn
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Valid reports whether r is a role a session turn may carry
func (r MessageRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ConversationEntry is one row of the append-only conversation log
type ConversationEntry struct {
	ID        uuid.UUID   `json:"id"`
	SessionID string      `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// ConversationRepository defines the interface for the conversation log
type ConversationRepository interface {
	Append(ctx context.Context, entry *ConversationEntry) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]ConversationEntry, error)
}
