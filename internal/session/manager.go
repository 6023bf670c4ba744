package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/domain"
)

// Manager wraps a Store and copies every turn into a durable conversation
// log. The log is an audit trail: write failures are logged and never
// reach the caller.
type Manager struct {
	store   Store
	journal domain.ConversationRepository
}

// NewManager creates a manager. journal may be nil.
func NewManager(store Store, journal domain.ConversationRepository) *Manager {
	return &Manager{store: store, journal: journal}
}

func (m *Manager) AppendTurn(ctx context.Context, id string, role domain.MessageRole, content string) error {
	if err := m.store.AppendTurn(ctx, id, role, content); err != nil {
		return err
	}

	if m.journal == nil {
		return nil
	}

	entry := &domain.ConversationEntry{
		ID:        uuid.New(),
		SessionID: id,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.journal.Append(ctx, entry); err != nil {
		log.Warn().Err(err).
			Str("session_id", id).
			Str("role", string(role)).
			Msg("failed to journal conversation turn")
	}
	return nil
}

// SetMode stores mode; a blank mode resets the session to DefaultMode.
func (m *Manager) SetMode(ctx context.Context, id, mode string) error {
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = DefaultMode
	}
	return m.store.SetMode(ctx, id, mode)
}

func (m *Manager) Turns(ctx context.Context, id string) ([]Turn, error) {
	return m.store.Turns(ctx, id)
}

func (m *Manager) Mode(ctx context.Context, id string) (string, error) {
	return m.store.Mode(ctx, id)
}

// Journal returns the durable history of a session, oldest first
func (m *Manager) Journal(ctx context.Context, id string, limit int) ([]domain.ConversationEntry, error) {
	if m.journal == nil {
		return []domain.ConversationEntry{}, nil
	}
	return m.journal.ListBySession(ctx, id, limit)
}

var _ Store = (*Manager)(nil)
