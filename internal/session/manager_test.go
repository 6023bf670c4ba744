package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/domain"
)

type mockJournal struct {
	mock.Mock
}

func (m *mockJournal) Append(ctx context.Context, entry *domain.ConversationEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *mockJournal) ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.ConversationEntry, error) {
	args := m.Called(ctx, sessionID, limit)
	return args.Get(0).([]domain.ConversationEntry), args.Error(1)
}

func TestManager_AppendTurnJournals(t *testing.T) {
	ctx := context.Background()
	journal := new(mockJournal)
	journal.On("Append", ctx, mock.MatchedBy(func(e *domain.ConversationEntry) bool {
		return e.SessionID == "s1" && e.Role == domain.RoleUser && e.Content == "hola" && !e.CreatedAt.IsZero()
	})).Return(nil).Once()

	m := NewManager(NewMemoryStore(5, ""), journal)
	require.NoError(t, m.AppendTurn(ctx, "s1", domain.RoleUser, "hola"))

	turns, err := m.Turns(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, turns, 1)
	journal.AssertExpectations(t)
}

func TestManager_JournalFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	journal := new(mockJournal)
	journal.On("Append", ctx, mock.Anything).Return(errors.New("db down"))

	m := NewManager(NewMemoryStore(5, ""), journal)
	assert.NoError(t, m.AppendTurn(ctx, "s1", domain.RoleAssistant, "respuesta"))

	turns, _ := m.Turns(ctx, "s1")
	require.Len(t, turns, 1)
	assert.Equal(t, domain.RoleAssistant, turns[0].Role)
}

func TestManager_StoreErrorSkipsJournal(t *testing.T) {
	journal := new(mockJournal)
	m := NewManager(NewMemoryStore(5, ""), journal)

	err := m.AppendTurn(context.Background(), "", domain.RoleUser, "hola")
	assert.ErrorIs(t, err, ErrEmptySessionID)
	journal.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestManager_SetModeBlankResetsToDefault(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(5, ""), nil)

	require.NoError(t, m.SetMode(ctx, "s1", "cotizador"))
	require.NoError(t, m.SetMode(ctx, "s1", "  "))

	mode, err := m.Mode(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, mode)
}

func TestManager_Journal(t *testing.T) {
	ctx := context.Background()

	m := NewManager(NewMemoryStore(5, ""), nil)
	entries, err := m.Journal(ctx, "s1", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	journal := new(mockJournal)
	journal.On("ListBySession", ctx, "s1", 10).Return([]domain.ConversationEntry{{SessionID: "s1", Content: "hola"}}, nil)

	m = NewManager(NewMemoryStore(5, ""), journal)
	entries, err = m.Journal(ctx, "s1", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
