package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/session"
)

const sessionPrefix = "shopchat:session:"

// SessionStore keeps sessions in Redis so several server instances share
// conversational memory. Turns live in a capped list, the mode in a
// string key. A positive ttl expires idle sessions.
type SessionStore struct {
	client      *Client
	limit       int
	defaultMode string
	ttl         time.Duration
}

// NewSessionStore creates a Redis-backed session.Store
func NewSessionStore(client *Client, limit int, defaultMode string, ttl time.Duration) *SessionStore {
	if limit <= 0 {
		limit = session.DefaultMemoryLimit
	}
	if defaultMode == "" {
		defaultMode = session.DefaultMode
	}
	return &SessionStore{client: client, limit: limit, defaultMode: defaultMode, ttl: ttl}
}

func turnsKey(id string) string { return sessionPrefix + id + ":turns" }
func modeKey(id string) string  { return sessionPrefix + id + ":mode" }

func (s *SessionStore) AppendTurn(ctx context.Context, id string, role domain.MessageRole, content string) error {
	if id == "" {
		return session.ErrEmptySessionID
	}

	data, err := json.Marshal(session.Turn{Role: role, Content: content})
	if err != nil {
		return fmt.Errorf("failed to marshal turn: %w", err)
	}

	key := turnsKey(id)
	_, err = s.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, int64(-s.limit), -1)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
			pipe.Expire(ctx, modeKey(id), s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	return nil
}

func (s *SessionStore) SetMode(ctx context.Context, id, mode string) error {
	if id == "" {
		return session.ErrEmptySessionID
	}
	if err := s.client.rdb.Set(ctx, modeKey(id), mode, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}
	return nil
}

func (s *SessionStore) Turns(ctx context.Context, id string) ([]session.Turn, error) {
	items, err := s.client.rdb.LRange(ctx, turnsKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read turns: %w", err)
	}

	turns := make([]session.Turn, 0, len(items))
	for _, item := range items {
		var t session.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *SessionStore) Mode(ctx context.Context, id string) (string, error) {
	mode, err := s.client.rdb.Get(ctx, modeKey(id)).Result()
	if errors.Is(err, redis.Nil) || (err == nil && mode == "") {
		return s.defaultMode, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read mode: %w", err)
	}
	return mode, nil
}

var _ session.Store = (*SessionStore)(nil)
