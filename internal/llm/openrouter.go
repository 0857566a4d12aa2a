package llm

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider for OpenRouter, which speaks the
// OpenAI wire format. Model IDs such as "openai/gpt-4o-mini" pass through.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newChatCompletionProvider("openrouter", OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, nil)
}
