package tutor

import (
	"strings"

	"github.com/abhisek/lsatarcade/internal/llm"
)

// Message is one turn of a tutoring conversation. Callers own the history
// and resend it in full on every request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles accepted from callers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// filterHistory keeps user and assistant turns, in order, and converts them
// for the provider. Any other role is dropped.
func filterHistory(history []Message) []llm.Message {
	out := make([]llm.Message, 0, len(history))
	for _, m := range history {
		switch strings.ToLower(strings.TrimSpace(m.Role)) {
		case RoleUser:
			out = append(out, llm.Message{Role: llm.RoleUser, Content: m.Content})
		case RoleAssistant:
			out = append(out, llm.Message{Role: llm.RoleAssistant, Content: m.Content})
		}
	}
	return out
}

// lastUserContent returns the content of the most recent user turn, or "".
func lastUserContent(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if strings.EqualFold(strings.TrimSpace(history[i].Role), RoleUser) {
			return history[i].Content
		}
	}
	return ""
}
