package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Rrens/shopchat/internal/domain"
)

// ConversationRepository implements domain.ConversationRepository
type ConversationRepository struct {
	pool *pgxpool.Pool
}

// NewConversationRepository creates a new conversation log repository
func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

// Append inserts a conversation turn
func (r *ConversationRepository) Append(ctx context.Context, entry *domain.ConversationEntry) error {
	query := `
		INSERT INTO conversaciones (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.SessionID,
		string(entry.Role),
		entry.Content,
		entry.CreatedAt,
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
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	defer rows.Close()

	entries := []domain.ConversationEntry{}
	for rows.Next() {
		var e domain.ConversationEntry
		var roleStr string

		if err := rows.Scan(&e.ID, &e.SessionID, &roleStr, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation entry: %w", err)
		}
		e.Role = domain.MessageRole(roleStr)
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
