// Package anthropic implements llm.Provider on the Messages API.
package anthropic

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Rrens/shopchat/internal/config"
	"github.com/Rrens/shopchat/internal/llm"
)

const defaultMaxTokens = 512

// Provider implements llm.Provider for Anthropic
type Provider struct {
	apiKey       string
	defaultModel string
	client       anthropic.Client
}

// NewProvider creates a new Anthropic provider. The SDK retry loop is
// disabled; a failed call surfaces immediately.
func NewProvider(cfg config.AnthropicConfig, timeout time.Duration, opts ...option.RequestOption) *Provider {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}

	base := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	}

	return &Provider{
		apiKey:       cfg.APIKey,
		defaultModel: model,
		client:       anthropic.NewClient(append(base, opts...)...),
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "anthropic"
}

// AvailableModels returns list of supported models
func (p *Provider) AvailableModels() []string {
	return []string{
		"claude-3-5-haiku-latest",
		"claude-3-5-sonnet-latest",
		"claude-3-7-sonnet-latest",
		"claude-sonnet-4-0",
	}
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.defaultModel
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// Complete sends the conversation with the system messages folded into the
// system prompt.
func (p *Provider) Complete(ctx context.Context, req llm.Completion, model string) (*llm.Response, error) {
	if model == "" {
		model = p.defaultModel
	}
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Messages:    toMessages(req.Conversation()),
		Temperature: anthropic.Float(float64(req.Temperature)),
	}
	if system := req.System(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	start := time.Now()

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, llm.NewStatusError(p.Name(), statusOf(err), err)
	}

	content := ""
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += variant.Text
		}
	}

	return &llm.Response{
		Content:    content,
		Model:      model,
		TokensUsed: int(message.Usage.InputTokens + message.Usage.OutputTokens),
		LatencyMs:  time.Since(start).Milliseconds(),
	}, nil
}

func toMessages(messages []llm.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case llm.RoleAssistant:
			out = append(out, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	return out
}

func statusOf(err error) int {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

var _ llm.Provider = (*Provider)(nil)
