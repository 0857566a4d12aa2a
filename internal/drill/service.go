package drill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/lsatarcade/internal/llm"
)

// Generator produces practice drills. Implementations never fail: they
// always return a drill that passes Validate.
type Generator interface {
	Generate(ctx context.Context, topic string) Drill
}

// FetchError records which stage of live generation failed.
type FetchError struct {
	Stage string // "request" or "parse"
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("drill %s failed: %v", e.Stage, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Service generates drills from a model, or from the mock generator when it
// is offline or the model lets it down.
type Service struct {
	provider   llm.Provider
	config     Config
	normalizer *Normalizer
	mock       func() Drill
	logger     *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithLogger sets the logger used to report degraded generations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMock replaces the mock source, e.g. with a seeded Mocker.
func WithMock(draw func() Drill) Option {
	return func(s *Service) { s.mock = draw }
}

// NewService creates a Service. A nil provider means offline mode.
func NewService(provider llm.Provider, cfg Config, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		config:   cfg,
		mock:     Mock,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.normalizer = NewNormalizer(s.mock)
	return s
}

// Mode reports whether Generate will call the model.
func (s *Service) Mode() llm.Mode {
	if s.provider == nil || s.config.Offline {
		return llm.ModeOffline
	}
	return llm.ModeLive
}

// Generate returns a drill for topic. It makes at most one upstream call and
// falls back to the mock generator on any failure.
func (s *Service) Generate(ctx context.Context, topic string) Drill {
	if s.Mode() == llm.ModeOffline {
		return s.mock()
	}

	d, err := s.fetch(ctx, normalizeTopic(topic))
	if err != nil {
		s.logger.WarnContext(ctx, "drill_fallback_to_mock",
			slog.String("topic", normalizeTopic(topic)),
			slog.String("error", err.Error()),
		)
		return s.mock()
	}
	return d
}

// fetch performs the live path and reports failures instead of hiding them.
func (s *Service) fetch(ctx context.Context, topic string) (Drill, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeDrill)

	resp, err := s.provider.Generate(ctx, BuildRequest(topic, s.config))
	if err != nil {
		return Drill{}, &FetchError{Stage: "request", Err: err}
	}

	parsed := Parse(resp.Text())
	if parsed.Kind == KindMalformed {
		return Drill{}, &FetchError{Stage: "parse", Err: parsed.Err}
	}
	if parsed.Kind == KindLoose {
		s.logger.DebugContext(ctx, "drill_normalized", slog.String("topic", topic))
	}

	return Resolve(parsed, s.normalizer), nil
}
