package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider is the core abstraction for talking to a hosted completion API.
// Each call is a single request: providers never retry on their own.
type Provider interface {
	// Generate sends one request and returns the model text exactly as
	// returned, apart from the checks done by finish.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history, oldest first.
	Messages []Message

	// JSONMode asks for a JSON object reply without enforcing a schema.
	// Providers without such a switch rely on the prompt alone.
	JSONMode bool

	// MaxTokens caps the length of the reply. Zero leaves it to the vendor,
	// except where the vendor requires a value.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// StopReason says why the model stopped writing.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response holds the model output.
type Response struct {
	// Content is the generated text.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	Stop StopReason
}

// Text returns the response content, or "" for a nil response.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return r.Content
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// completion is what a vendor adapter extracts from its SDK reply before the
// shared checks in finish run.
type completion struct {
	vendor string
	text   string
	model  string
	stop   StopReason
	usage  Usage
}

// finish turns a vendor completion into a Response. A reply with no text is
// invalid, and a JSON-mode reply cut off by the token limit is reported as
// ErrMaxTokensExceeded since it cannot be a complete object.
func finish(req Request, c completion) (*Response, error) {
	if strings.TrimSpace(c.text) == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty %s completion", c.vendor)}
	}
	if c.stop == StopMaxTokens && req.JSONMode {
		return nil, &ErrMaxTokensExceeded{Content: c.text}
	}
	if c.usage.TotalTokens == 0 {
		c.usage.TotalTokens = c.usage.InputTokens + c.usage.OutputTokens
	}
	return &Response{
		Content: c.text,
		Usage:   c.usage,
		Model:   c.model,
		Stop:    c.stop,
	}, nil
}

// resolveModel maps a friendly model name to a vendor model ID. Names not in
// the table are used as-is.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
