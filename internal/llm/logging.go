package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LoggingProvider is a decorator that writes one structured log record per
// upstream call.
type LoggingProvider struct {
	inner    Provider
	provider string
	logger   *slog.Logger
}

// WithLogging wraps a Provider with request logging. A nil logger falls back
// to slog.Default().
func WithLogging(p Provider, providerName string, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingProvider{inner: p, provider: providerName, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	callID := uuid.NewString()
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	attrs := []any{
		slog.String("call_id", callID),
		slog.String("provider", l.provider),
		slog.String("model", l.inner.ModelID()),
		slog.String("purpose", PurposeFrom(ctx)),
		slog.Int("messages", len(req.Messages)),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	}

	if err != nil {
		l.logger.WarnContext(ctx, "llm_request_failed", append(attrs, slog.String("error", err.Error()))...)
		return nil, err
	}

	attrs = append(attrs,
		slog.String("served_by", resp.Model),
		slog.Int("input_tokens", resp.Usage.InputTokens),
		slog.Int("output_tokens", resp.Usage.OutputTokens),
		slog.String("stop_reason", string(resp.Stop)),
	)
	if cost := LookupCost(resp.Model); cost != nil {
		attrs = append(attrs, slog.Float64("cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)))
	}
	l.logger.InfoContext(ctx, "llm_request", attrs...)

	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
