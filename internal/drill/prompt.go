package drill

import (
	"fmt"
	"strings"

	"github.com/abhisek/lsatarcade/internal/llm"
)

const systemPrompt = `You are an LSAT question writer producing ORIGINAL practice items. Never copy or quote real LSAT questions.

Rules:
- Write one self-contained question for the requested topic: a short stimulus followed by a question stem.
- Provide exactly five answer choices. Exactly one is credited; the others are plausible but flawed.
- Reply with a single JSON object and nothing else: no Markdown, no commentary.
- The object has exactly these keys:
  "question": string, the stimulus and stem,
  "choices": array of 5 strings, in order A through E, without letter prefixes,
  "answer": one letter, "A", "B", "C", "D" or "E",
  "explanation": string, why the credited choice is right and the strongest distractor is wrong.`

// BuildRequest is the single upstream request made for one drill.
func BuildRequest(topic string, cfg Config) llm.Request {
	return llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(topic)},
		},
		JSONMode:    true,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// buildUserMessage embeds the topic in the generation request.
func buildUserMessage(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", topicLabel(topic))
	b.WriteString("Generate one question now as strict JSON with keys question, choices (5), answer (A-E), explanation.")
	return b.String()
}

// normalizeTopic trims the caller's topic and falls back to DefaultTopic.
func normalizeTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return DefaultTopic
	}
	return topic
}

// topicLabel turns "logical_reasoning" into "logical reasoning" for the prompt.
func topicLabel(topic string) string {
	return strings.ReplaceAll(normalizeTopic(topic), "_", " ")
}
