package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/llm"
)

func TestProvider_Complete(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-haiku-latest",
			"content": [{"type": "text", "text": "Hacemos prototipos con Arduino."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 30, "output_tokens": 8}
		}`))
	}))
	defer srv.Close()

	p := NewProvider(config.AnthropicConfig{APIKey: "sk-ant-test"}, time.Second, option.WithBaseURL(srv.URL))

	resp, err := p.Complete(context.Background(), llm.Completion{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "reglas"},
			{Role: llm.RoleSystem, Content: "modo"},
			{Role: llm.RoleUser, Content: "¿hacen electrónica?"},
		},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Hacemos prototipos con Arduino.", resp.Content)
	assert.Equal(t, 38, resp.TokensUsed)

	assert.Equal(t, "claude-3-5-haiku-latest", got["model"])
	assert.EqualValues(t, defaultMaxTokens, got["max_tokens"])
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 1)
	assert.NotNil(t, got["system"])
}

func TestProvider_CompleteNon2xx(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer srv.Close()

	p := NewProvider(config.AnthropicConfig{APIKey: "k"}, time.Second, option.WithBaseURL(srv.URL))

	_, err := p.Complete(context.Background(), llm.Completion{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hola"}},
	}, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, llm.StatusCode(err))
	assert.Equal(t, 1, calls)
}

func TestProvider_Configured(t *testing.T) {
	assert.False(t, NewProvider(config.AnthropicConfig{}, 0).IsConfigured())
	assert.Equal(t, "claude-sonnet-4-0", NewProvider(config.AnthropicConfig{Model: "claude-sonnet-4-0"}, 0).DefaultModel())
}
