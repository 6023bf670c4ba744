// Package openai implements llm.Provider for OpenAI and for the
// OpenAI-compatible APIs of Groq and DeepSeek.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/llm"
)

var knownModels = map[string][]string{
	"openai": {
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4-turbo",
		"gpt-3.5-turbo",
	},
	"groq": {
		"llama3-8b-8192",
		"llama3-70b-8192",
		"llama-3.1-8b-instant",
		"mixtral-8x7b-32768",
	},
	"deepseek": {
		"deepseek-chat",
		"deepseek-reasoner",
	},
}

var defaultModels = map[string]string{
	"openai":   "gpt-4o-mini",
	"groq":     "llama3-8b-8192",
	"deepseek": "deepseek-chat",
}

// Provider implements llm.Provider over the Chat Completions API
type Provider struct {
	name         string
	apiKey       string
	defaultModel string
	client       *goopenai.Client
}

// NewProvider creates a provider registered under name. An empty BaseURL
// targets api.openai.com.
func NewProvider(name string, cfg config.OpenAIConfig, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	model := cfg.Model
	if model == "" {
		model = defaultModels[name]
	}

	return &Provider{
		name:         name,
		apiKey:       cfg.APIKey,
		defaultModel: model,
		client:       goopenai.NewClientWithConfig(clientCfg),
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return p.name
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	if models, ok := knownModels[p.name]; ok {
		return models
	}
	return []string{p.defaultModel}
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.defaultModel
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Complete sends the conversation to the chat completions endpoint
func (p *Provider) Complete(ctx context.Context, req llm.Completion, model string) (*llm.Response, error) {
	if model == "" {
		model = p.defaultModel
	}

	messages := make([]goopenai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	start := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, llm.NewStatusError(p.name, statusOf(err), err)
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	return &llm.Response{
		Content:    content,
		Model:      model,
		TokensUsed: resp.Usage.TotalTokens,
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}

func statusOf(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

var _ llm.Provider = (*Provider)(nil)
