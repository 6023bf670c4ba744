package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/observability"
	"github.com/Rrens/shopchat/internal/quote"
	"github.com/Rrens/shopchat/internal/reply"
	"github.com/Rrens/shopchat/internal/security"
	"github.com/Rrens/shopchat/internal/session"
)

// ChatService runs one conversation turn end to end
type ChatService struct {
	sessions  session.Store
	producer  reply.Producer
	requests  domain.RequestRepository
	sanitizer *security.MessageSanitizer
	metrics   *observability.Metrics
}

// NewChatService creates a chat service. requests, sanitizer and metrics may be nil.
func NewChatService(
	sessions session.Store,
	producer reply.Producer,
	requests domain.RequestRepository,
	sanitizer *security.MessageSanitizer,
	metrics *observability.Metrics,
) *ChatService {
	return &ChatService{
		sessions:  sessions,
		producer:  producer,
		requests:  requests,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Chat records the user message, produces a reply and logs the exchange.
// A blank message is rejected before any state changes.
func (s *ChatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	start := time.Now()

	message := req.Mensaje
	if s.sanitizer != nil {
		cleaned, err := s.sanitizer.Sanitize(message)
		if err != nil {
			return nil, invalidInput("mensaje demasiado largo")
		}
		message = cleaned
	}
	if strings.TrimSpace(message) == "" {
		return nil, invalidInput("mensaje requerido")
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	// 1. Remember the user turn
	if err := s.sessions.AppendTurn(ctx, sessionID, domain.RoleUser, message); err != nil {
		return nil, fmt.Errorf("failed to append user turn: %w", err)
	}

	// 2. Quote is computed for every strategy
	quoteText := quote.Estimate(message)

	mode, err := s.sessions.Mode(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session mode: %w", err)
	}

	history, err := s.sessions.Turns(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session turns: %w", err)
	}

	// 3. Produce the reply
	out, err := s.producer.Produce(ctx, reply.Input{
		Message: message,
		Mode:    mode,
		Quote:   quoteText,
		History: history,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to produce reply: %w", err)
	}
	if out.Degraded {
		s.metrics.IncDegradedReply(out.Provider)
	}

	// 4. Remember the assistant turn
	if err := s.sessions.AppendTurn(ctx, sessionID, domain.RoleAssistant, out.Text); err != nil {
		return nil, fmt.Errorf("failed to append assistant turn: %w", err)
	}

	// 5. Persist the request record; failures never reach the caller
	s.persist(ctx, &domain.RequestRecord{
		ID:         uuid.New(),
		Nombre:     optional(req.Nombre),
		Email:      optional(req.Email),
		Tipo:       mode,
		Mensaje:    message,
		Cotizacion: quoteText,
		Respuesta:  out.Text,
		CreatedAt:  time.Now().UTC(),
	})

	s.metrics.ObserveChatTurn(s.producer.Name(), string(out.Intent), time.Since(start))

	log.Debug().
		Str("session_id", sessionID).
		Str("mode", mode).
		Str("intent", string(out.Intent)).
		Str("provider", out.Provider).
		Bool("degraded", out.Degraded).
		Dur("duration", time.Since(start)).
		Msg("chat turn completed")

	return &domain.ChatResponse{
		Respuesta:  out.Text,
		Cotizacion: quoteText,
		Modo:       mode,
		SessionID:  sessionID,
		Intent:     string(out.Intent),
	}, nil
}

func (s *ChatService) persist(ctx context.Context, record *domain.RequestRecord) {
	if s.requests == nil {
		return
	}
	// The reply is already produced; a cancelled request should not lose the record.
	if err := s.requests.Create(context.WithoutCancel(ctx), record); err != nil {
		s.metrics.IncPersistenceError("solicitudes")
		log.Error().Err(err).Str("record_id", record.ID.String()).Msg("failed to persist request record")
	}
}

// SetMode changes the persona of a session and returns the stored mode
func (s *ChatService) SetMode(ctx context.Context, req domain.SetModeRequest) (string, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return "", invalidInput("session_id requerido")
	}

	mode := strings.TrimSpace(req.Mode)
	if mode == "" {
		mode = session.DefaultMode
	}
	if err := s.sessions.SetMode(ctx, sessionID, mode); err != nil {
		if errors.Is(err, session.ErrEmptySessionID) {
			return "", invalidInput("session_id requerido")
		}
		return "", fmt.Errorf("failed to set mode: %w", err)
	}

	return s.sessions.Mode(ctx, sessionID)
}

// JournalLimit caps the durable log entries returned by History
const JournalLimit = 200

// Journaler exposes the durable conversation log behind a session store
type Journaler interface {
	Journal(ctx context.Context, id string, limit int) ([]domain.ConversationEntry, error)
}

// SessionView is the remembered state of one session
type SessionView struct {
	SessionID string                     `json:"session_id"`
	Modo      string                     `json:"modo"`
	Turns     []session.Turn             `json:"turns"`
	Journal   []domain.ConversationEntry `json:"journal,omitempty"`
}

// History returns the bounded turns and mode for a session. With full set,
// it also reads the durable conversation log, oldest first.
func (s *ChatService) History(ctx context.Context, sessionID string, full bool) (*SessionView, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, invalidInput("session_id requerido")
	}

	turns, err := s.sessions.Turns(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session turns: %w", err)
	}
	mode, err := s.sessions.Mode(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session mode: %w", err)
	}

	view := &SessionView{SessionID: sessionID, Modo: mode, Turns: turns}
	if !full {
		return view, nil
	}

	if j, ok := s.sessions.(Journaler); ok {
		view.Journal, err = j.Journal(ctx, sessionID, JournalLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to read conversation log: %w", err)
		}
	}
	return view, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
