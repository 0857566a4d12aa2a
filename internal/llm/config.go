package llm

import (
	"fmt"
	"os"
	"strings"
)

// Mode says whether requests go to a hosted model or stay local.
type Mode string

const (
	ModeLive    Mode = "live"
	ModeOffline Mode = "offline"
)

// Config holds all provider configuration. It is resolved once at startup
// and handed to the services that need it.
type Config struct {
	// Provider selects which upstream to use.
	// Values: "openai", "anthropic", "gemini", "openrouter", "mock"
	Provider string

	// Offline forces offline mode even when a credential is present.
	Offline bool

	// Model overrides the selected provider's model when non-empty.
	Model string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for proxies or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "openai/gpt-4o-mini"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
	}
}

// ConfigFromEnv builds a Config from LSAT_* environment variables, falling
// back to defaults for unset values. Each credential also accepts the
// vendor's standard variable when the LSAT_* one is empty.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("LSAT_LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(p))
	}
	cfg.Offline = truthy(os.Getenv("LSAT_OFFLINE"))

	if m := os.Getenv("LSAT_MODEL"); m != "" {
		cfg.Model = m
	} else if m := os.Getenv("OPENAI_MODEL"); m != "" {
		cfg.Model = m
	}

	cfg.Anthropic.APIKey = firstEnv("LSAT_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("LSAT_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.OpenAI.APIKey = firstEnv("LSAT_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("LSAT_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("LSAT_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Gemini.APIKey = firstEnv("LSAT_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("LSAT_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	cfg.OpenRouter.APIKey = firstEnv("LSAT_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	if m := os.Getenv("LSAT_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// LoadConfig resolves the effective configuration: LSAT_* variables first,
// then vendor keys when no provider was chosen explicitly and the default
// one has no credential.
func LoadConfig() Config {
	cfg := ConfigFromEnv()
	if cfg.HasCredential() || os.Getenv("LSAT_LLM_PROVIDER") != "" {
		return cfg
	}
	found, ok := DiscoverConfig()
	if !ok {
		return cfg
	}
	found.Offline = cfg.Offline
	found.Model = cfg.Model
	found.OpenAI.BaseURL = cfg.OpenAI.BaseURL
	return found
}

// HasCredential reports whether the selected provider has an API key.
func (c Config) HasCredential() bool {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic.APIKey != ""
	case "openai":
		return c.OpenAI.APIKey != ""
	case "gemini":
		return c.Gemini.APIKey != ""
	case "openrouter":
		return c.OpenRouter.APIKey != ""
	}
	return false
}

// Mode reports whether this configuration selects live or offline mode.
// Offline wins when forced, when the mock provider is selected, or when the
// selected provider has no credential.
func (c Config) Mode() Mode {
	if c.Offline || c.Provider == "mock" || !c.HasCredential() {
		return ModeOffline
	}
	return ModeLive
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LSAT_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LSAT_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LSAT_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LSAT_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// withModelOverride copies Model into the selected provider's section.
func (c Config) withModelOverride() Config {
	if c.Model == "" {
		return c
	}
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = c.Model
	case "openai":
		c.OpenAI.Model = c.Model
	case "gemini":
		c.Gemini.Model = c.Model
	case "openrouter":
		c.OpenRouter.Model = c.Model
	}
	return c
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
