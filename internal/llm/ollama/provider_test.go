package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/llm"
)

func TestProvider_Complete(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(chatResponse{
			Message:         chatMessage{Role: "assistant", Content: "Proyecto IoT: 150-600 USD."},
			Done:            true,
			PromptEvalCount: 10,
			EvalCount:       5,
		})
	}))
	defer srv.Close()

	p := NewProvider(config.OllamaConfig{Host: srv.URL + "/"}, time.Second)

	resp, err := p.Complete(context.Background(), llm.Completion{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "reglas"},
			{Role: llm.RoleUser, Content: "iot"},
		},
		MaxTokens: 128,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Proyecto IoT: 150-600 USD.", resp.Content)
	assert.Equal(t, 15, resp.TokensUsed)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Len(t, got.Messages, 2)
	assert.EqualValues(t, 128, got.Options["num_predict"])
}

func TestProvider_CompleteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewProvider(config.OllamaConfig{Host: srv.URL}, time.Second)

	_, err := p.Complete(context.Background(), llm.Completion{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: "hola"}},
	}, "nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, llm.StatusCode(err))
	assert.Contains(t, err.Error(), "model not found")
}

func TestProvider_IsConfigured(t *testing.T) {
	assert.False(t, NewProvider(config.OllamaConfig{}, 0).IsConfigured())
	assert.True(t, NewProvider(config.OllamaConfig{Host: "http://localhost:11434"}, 0).IsConfigured())
}
