package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/intent"
	"github.com/Rrens/shopchat/internal/quote"
	"github.com/Rrens/shopchat/internal/reply"
	"github.com/Rrens/shopchat/internal/security"
	"github.com/Rrens/shopchat/internal/session"
	"github.com/Rrens/shopchat/internal/shopinfo"
)

func newLocalChat(repo domain.RequestRepository) (*ChatService, *session.MemoryStore) {
	store := session.NewMemoryStore(session.DefaultMemoryLimit, session.DefaultMode)
	producer := reply.NewLocalProducer(shopinfo.Default())
	return NewChatService(store, producer, repo, security.NewMessageSanitizer(2000), nil), store
}

func TestChatService_Chat_RejectsBlankMessage(t *testing.T) {
	repo := new(MockRequestRepository)
	svc, store := newLocalChat(repo)

	for _, msg := range []string{"", "   ", "\x00"} {
		_, err := svc.Chat(context.Background(), domain.ChatRequest{SessionID: "s1", Mensaje: msg})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	assert.Equal(t, 0, store.Len())
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChatService_Chat_RejectsTooLongMessage(t *testing.T) {
	store := session.NewMemoryStore(5, session.DefaultMode)
	svc := NewChatService(store, reply.NewLocalProducer(shopinfo.Default()), nil, security.NewMessageSanitizer(5), nil)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{SessionID: "s1", Mensaje: "demasiado largo"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, store.Len())
}

func TestChatService_Chat_LocalStrategy(t *testing.T) {
	repo := new(MockRequestRepository)
	var saved *domain.RequestRecord
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.RequestRecord")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.RequestRecord) }).
		Return(nil)

	svc, store := newLocalChat(repo)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{
		SessionID: "s1",
		Mensaje:   "Necesito una app móvil",
		Nombre:    "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, "App móvil simple: 300-600 USD. Compleja: 600-1500 USD.", resp.Cotizacion)
	assert.Equal(t, string(intent.SoftwareService), resp.Intent)
	assert.Equal(t, "vendedor", resp.Modo)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Contains(t, resp.Respuesta, "Nos especializamos en Software")

	turns, err := store.Turns(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "Necesito una app móvil", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, resp.Respuesta, turns[1].Content)

	require.NotNil(t, saved)
	assert.Equal(t, "vendedor", saved.Tipo)
	assert.Equal(t, "Necesito una app móvil", saved.Mensaje)
	assert.Equal(t, resp.Cotizacion, saved.Cotizacion)
	assert.Equal(t, resp.Respuesta, saved.Respuesta)
	require.NotNil(t, saved.Nombre)
	assert.Equal(t, "Ana", *saved.Nombre)
	assert.Nil(t, saved.Email)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestChatService_Chat_GeneratesSessionID(t *testing.T) {
	svc, store := newLocalChat(nil)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Mensaje: "hola"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionID)
	turns, err := store.Turns(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Len(t, turns, 2)
}

func TestChatService_Chat_UsesSessionMode(t *testing.T) {
	svc, _ := newLocalChat(nil)
	ctx := context.Background()

	_, err := svc.SetMode(ctx, domain.SetModeRequest{SessionID: "s1", Mode: "cotizador"})
	require.NoError(t, err)

	resp, err := svc.Chat(ctx, domain.ChatRequest{SessionID: "s1", Mensaje: "hola"})
	require.NoError(t, err)

	assert.Equal(t, "cotizador", resp.Modo)
	assert.Contains(t, resp.Respuesta, "Soy el cotizador.")
}

func TestChatService_Chat_PersistenceFailureIsSwallowed(t *testing.T) {
	repo := new(MockRequestRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc, _ := newLocalChat(repo)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{SessionID: "s1", Mensaje: "hola"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Respuesta)
	repo.AssertExpectations(t)
}

func TestChatService_Chat_QuoteComputedForEveryProducer(t *testing.T) {
	producer := new(MockProducer)
	producer.On("Produce", mock.Anything, mock.MatchedBy(func(in reply.Input) bool {
		n := len(in.History)
		return in.Quote == "Proyecto IoT: 150-600 USD." &&
			in.Mode == "vendedor" &&
			n > 0 && in.History[n-1].Content == "un proyecto iot"
	})).Return(reply.Output{Text: "respuesta externa", Provider: "groq"}, nil)

	store := session.NewMemoryStore(5, session.DefaultMode)
	svc := NewChatService(store, producer, nil, nil, nil)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{SessionID: "s1", Mensaje: "un proyecto iot"})
	require.NoError(t, err)

	assert.Equal(t, "respuesta externa", resp.Respuesta)
	assert.Equal(t, "Proyecto IoT: 150-600 USD.", resp.Cotizacion)
	assert.Empty(t, resp.Intent)
	producer.AssertExpectations(t)
}

func TestChatService_Chat_KeepsMemoryLimit(t *testing.T) {
	svc, store := newLocalChat(nil)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.Chat(ctx, domain.ChatRequest{SessionID: "s1", Mensaje: "hola"})
		require.NoError(t, err)
	}

	turns, err := store.Turns(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, turns, session.DefaultMemoryLimit)
	assert.Equal(t, domain.RoleAssistant, turns[len(turns)-1].Role)
}

func TestChatService_Chat_FallbackQuote(t *testing.T) {
	svc, _ := newLocalChat(nil)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{SessionID: "s1", Mensaje: "¿cuánto cuesta?"})
	require.NoError(t, err)
	assert.True(t, quote.IsFallback(resp.Cotizacion))
	assert.Equal(t, string(intent.QuoteRequest), resp.Intent)
}

func TestChatService_SetMode(t *testing.T) {
	svc, _ := newLocalChat(nil)
	ctx := context.Background()

	mode, err := svc.SetMode(ctx, domain.SetModeRequest{SessionID: "s1", Mode: "técnico"})
	require.NoError(t, err)
	assert.Equal(t, "técnico", mode)

	mode, err = svc.SetMode(ctx, domain.SetModeRequest{SessionID: "s1", Mode: "  "})
	require.NoError(t, err)
	assert.Equal(t, "vendedor", mode)

	_, err = svc.SetMode(ctx, domain.SetModeRequest{Mode: "cotizador"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatService_History(t *testing.T) {
	svc, _ := newLocalChat(nil)
	ctx := context.Background()

	view, err := svc.History(ctx, "unknown", false)
	require.NoError(t, err)
	assert.Equal(t, "vendedor", view.Modo)
	assert.Empty(t, view.Turns)

	_, err = svc.Chat(ctx, domain.ChatRequest{SessionID: "s1", Mensaje: "hola"})
	require.NoError(t, err)

	view, err = svc.History(ctx, "s1", false)
	require.NoError(t, err)
	assert.Len(t, view.Turns, 2)

	_, err = svc.History(ctx, " ", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChatService_History_Full(t *testing.T) {
	ctx := context.Background()
	journal := new(MockConversationRepository)
	journal.On("Append", mock.Anything, mock.Anything).Return(nil)

	manager := session.NewManager(session.NewMemoryStore(2, session.DefaultMode), journal)
	svc := NewChatService(manager, reply.NewLocalProducer(shopinfo.Default()), nil, nil, nil)

	for _, msg := range []string{"hola", "precio de una web"} {
		_, err := svc.Chat(ctx, domain.ChatRequest{SessionID: "s1", Mensaje: msg})
		require.NoError(t, err)
	}

	logged := []domain.ConversationEntry{
		{SessionID: "s1", Role: domain.RoleUser, Content: "hola"},
		{SessionID: "s1", Role: domain.RoleAssistant, Content: "saludo"},
		{SessionID: "s1", Role: domain.RoleUser, Content: "precio de una web"},
		{SessionID: "s1", Role: domain.RoleAssistant, Content: "cotizacion"},
	}
	journal.On("ListBySession", mock.Anything, "s1", JournalLimit).Return(logged, nil).Once()

	view, err := svc.History(ctx, "s1", true)
	require.NoError(t, err)
	assert.Len(t, view.Turns, 2)
	assert.Equal(t, logged, view.Journal)

	view, err = svc.History(ctx, "s1", false)
	require.NoError(t, err)
	assert.Nil(t, view.Journal)
	journal.AssertNumberOfCalls(t, "ListBySession", 1)
}

func TestChatService_History_FullJournalError(t *testing.T) {
	journal := new(MockConversationRepository)
	journal.On("ListBySession", mock.Anything, "s1", JournalLimit).Return(nil, errors.New("db down"))

	manager := session.NewManager(session.NewMemoryStore(5, session.DefaultMode), journal)
	svc := NewChatService(manager, reply.NewLocalProducer(shopinfo.Default()), nil, nil, nil)

	_, err := svc.History(context.Background(), "s1", true)
	assert.ErrorContains(t, err, "conversation log")
}
