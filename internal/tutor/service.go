package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/lsatarcade/internal/llm"
)

const systemPrompt = "You are an encouraging LSAT tutor. Explain reasoning concisely, " +
	"give hints rather than full solutions unless the student asks for one, " +
	"and never quote or reproduce real LSAT content."

// UnavailableReply is returned when a live tutor call fails.
const UnavailableReply = "Mock tutor: Service unavailable; try again in a bit."

// EmptyReply is returned by proxies that answered without any text.
const EmptyReply = "Mock tutor: (no reply)"

// OfflineReply is the canned coaching text used without a model. It quotes
// the learner's latest message.
func OfflineReply(history []Message) string {
	return fmt.Sprintf("Mock tutor: Identify the conclusion, then test each choice against the gap. "+
		"On “%s”, paraphrase the claim and name the flaw (causal, sampling, comparison).",
		lastUserContent(history))
}

// Config controls tutor replies.
type Config struct {
	Offline     bool
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended tutor settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   500,
		Temperature: 0.7,
	}
}

// Service answers tutoring conversations.
type Service struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used to report failed replies.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service. A nil provider means offline mode.
func NewService(provider llm.Provider, cfg Config, opts ...Option) *Service {
	s := &Service{provider: provider, config: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode reports whether Reply will call the model.
func (s *Service) Mode() llm.Mode {
	if s.provider == nil || s.config.Offline {
		return llm.ModeOffline
	}
	return llm.ModeLive
}

// Reply returns the tutor's next message for history. It never fails.
func (s *Service) Reply(ctx context.Context, history []Message) string {
	if s.Mode() == llm.ModeOffline {
		return OfflineReply(history)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeTutor)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    filterHistory(history),
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "tutor_unavailable", slog.String("error", err.Error()))
		return UnavailableReply
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		s.logger.WarnContext(ctx, "tutor_empty_reply")
		return UnavailableReply
	}
	return reply
}
