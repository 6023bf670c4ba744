package llm

import "context"

// Message is one role-tagged entry of a completion prompt
type Message struct {
	Role    string
	Content string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Completion contains chat completion parameters
type Completion struct {
	Messages    []Message
	MaxTokens   int
	Temperature float32
}

// System joins the system messages, for providers that take a single
// system instruction apart from the conversation.
func (c Completion) System() string {
	var out string
	for _, m := range c.Messages {
		if m.Role != RoleSystem {
			continue
		}
		if out != "" {
			out += "\n\n"
		}
		out += m.Content
	}
	return out
}

// Conversation returns the non-system messages in order
func (c Completion) Conversation() []Message {
	out := make([]Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}

// Response contains LLM generation result
type Response struct {
	Content    string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// Complete returns the next assistant message for the conversation
	Complete(ctx context.Context, req Completion, model string) (*Response, error)
}
