package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Rrens/shopchat/internal/domain"
)

// ConversationRepository implements domain.ConversationRepository
type ConversationRepository struct {
	db *DB
}

// NewConversationRepository creates a new conversation log repository
func NewConversationRepository(db *DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Append inserts a conversation turn
func (r *ConversationRepository) Append(ctx context.Context, entry *domain.ConversationEntry) error {
	query := `
		INSERT INTO conversaciones (id, session_id, role, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.conn.ExecContext(ctx, query,
		entry.ID.String(),
		entry.SessionID,
		string(entry.Role),
		entry.Content,
		r.db.timeArg(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to append conversation entry: %w", err)
	}

	return nil
}

// ListBySession retrieves the latest turns of a session, oldest first
func (r *ConversationRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.ConversationEntry, error) {
	query := `
		SELECT id, session_id, role, content, created_at
		FROM conversaciones
		WHERE session_id = ?
		ORDER BY ` + r.db.orderNewest() + `
		LIMIT ?
	`

	rows, err := r.db.conn.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	entries := []domain.ConversationEntry{}
	for rows.Next() {
		var (
			e         domain.ConversationEntry
			id, role  string
			createdAt timestamp
		)
		if err := rows.Scan(&id, &e.SessionID, &role, &e.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation entry: %w", err)
		}
		e.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid conversation id %q: %w", id, err)
		}
		e.Role = domain.MessageRole(role)
		e.CreatedAt = createdAt.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}

	// Reverse to return chronological order (oldest first)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}
