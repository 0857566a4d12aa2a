package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider creates a Provider from configuration, wrapped with logging.
// It refuses configurations that resolve to offline mode; callers decide
// what offline means for them.
func NewProvider(ctx context.Context, cfg Config, logger *slog.Logger) (Provider, error) {
	if cfg.Mode() == ModeOffline {
		return nil, fmt.Errorf("provider %q is not usable in offline mode", cfg.Provider)
	}
	cfg = cfg.withModelOverride()

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, logger), nil
}
