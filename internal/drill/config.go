package drill

// Config controls live question generation.
type Config struct {
	// Offline forces the mock generator even when a provider is available.
	Offline bool

	// MaxTokens is the token budget for the model reply.
	MaxTokens int

	// Temperature is kept low: repeatable structure matters more than
	// creative phrasing.
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.2,
	}
}
