package reply

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/llm"
	"github.com/Rrens/shopchat/internal/shopinfo"
)

// CompletionSettings selects the provider and sampling parameters
type CompletionSettings struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float32
}

// CompletionProducer delegates the reply to an external LLM. Upstream
// failures never become errors: the caller receives a degraded text that
// names the provider and the failure.
type CompletionProducer struct {
	router   *llm.Router
	info     shopinfo.Info
	settings CompletionSettings
}

func NewCompletionProducer(router *llm.Router, info shopinfo.Info, settings CompletionSettings) *CompletionProducer {
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = 512
	}
	return &CompletionProducer{router: router, info: info, settings: settings}
}

func (p *CompletionProducer) Name() string {
	return "llm"
}

func (p *CompletionProducer) Produce(ctx context.Context, in Input) (Output, error) {
	name := p.settings.Provider
	if name == "" {
		name = p.router.DefaultProvider()
	}

	provider, err := p.router.GetProvider(name)
	if err != nil {
		log.Error().Err(err).Str("provider", name).Msg("completion provider unavailable")
		return Output{Text: degradedText(name, "no configurado"), Provider: name, Degraded: true}, nil
	}

	resp, err := provider.Complete(ctx, llm.Completion{
		Messages:    BuildMessages(in, p.info),
		MaxTokens:   p.settings.MaxTokens,
		Temperature: p.settings.Temperature,
	}, p.settings.Model)
	if err != nil {
		status := "sin conexión"
		if code := llm.StatusCode(err); code != 0 {
			status = strconv.Itoa(code)
		}
		log.Error().Err(err).Str("provider", name).Str("status", status).Msg("completion request failed")
		return Output{Text: degradedText(name, status), Provider: name, Degraded: true}, nil
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		log.Warn().Str("provider", name).Str("model", resp.Model).Msg("empty completion")
		return Output{
			Text:     fmt.Sprintf("No se obtuvo respuesta de la IA (%s).", DisplayName(name)),
			Provider: name,
			Degraded: true,
		}, nil
	}

	log.Debug().
		Str("provider", name).
		Str("model", resp.Model).
		Int("tokens", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("completion received")

	return Output{Text: text, Provider: name}, nil
}

func degradedText(provider, status string) string {
	return fmt.Sprintf("Error del proveedor IA %s: %s. Verifique la clave de API o el modelo.", DisplayName(provider), status)
}

var displayNames = map[string]string{
	"openai":    "OpenAI",
	"groq":      "Groq",
	"deepseek":  "DeepSeek",
	"anthropic": "Anthropic",
	"gemini":    "Gemini",
	"ollama":    "Ollama",
}

// DisplayName returns the human name of a provider identifier
func DisplayName(provider string) string {
	if n, ok := displayNames[provider]; ok {
		return n
	}
	return provider
}

var _ Producer = (*CompletionProducer)(nil)
