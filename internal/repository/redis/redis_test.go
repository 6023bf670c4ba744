package redis

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/domain"
)

// newTestClient connects to REDIS_TEST_ADDR (host:port) or skips the test
func newTestClient(t *testing.T) *Client {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	host, portStr, ok := strings.Cut(addr, ":")
	require.True(t, ok, "REDIS_TEST_ADDR must be host:port")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	client, err := NewClient(context.Background(), config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newTestClient(t), 5, "", time.Minute)
	id := uuid.NewString()

	mode, err := store.Mode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "vendedor", mode)

	for i := 0; i < 7; i++ {
		require.NoError(t, store.AppendTurn(ctx, id, domain.RoleUser, fmt.Sprintf("m%d", i)))
	}

	turns, err := store.Turns(ctx, id)
	require.NoError(t, err)
	require.Len(t, turns, 5)
	assert.Equal(t, "m2", turns[0].Content)
	assert.Equal(t, "m6", turns[4].Content)

	require.NoError(t, store.SetMode(ctx, id, "técnico"))
	mode, err = store.Mode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "técnico", mode)
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	limiter := NewRateLimiter(newTestClient(t), 2, 1)
	key := uuid.NewString()

	for i := 0; i < 3; i++ {
		allowed, _, _, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, remaining, reset, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.True(t, reset.After(time.Now()))
}
