package drill

import (
	"encoding/json"
	"errors"
	"maps"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Normalizer coerces loosely structured upstream data into a valid Drill.
// Every default comes from a single mock draw per call.
type Normalizer struct {
	draw func() Drill
}

// NewNormalizer returns a Normalizer that takes defaults from draw. A nil
// draw uses Mock.
func NewNormalizer(draw func() Drill) *Normalizer {
	if draw == nil {
		draw = Mock
	}
	return &Normalizer{draw: draw}
}

// Normalize is shorthand for NewNormalizer(nil).Normalize(raw).
func Normalize(raw any) Drill {
	return NewNormalizer(nil).Normalize(raw)
}

func (n *Normalizer) mock() Drill {
	if n == nil || n.draw == nil {
		return Mock()
	}
	return n.draw()
}

// Normalize never fails. Fields that are absent, malformed or blank are
// replaced from one mock draw; non-object input yields the draw itself.
func (n *Normalizer) Normalize(raw any) Drill {
	fallback := n.mock()

	obj, ok := raw.(map[string]any)
	if !ok {
		return fallback
	}

	return Drill{
		Question:    normalizeQuestion(obj, fallback.Question),
		Choices:     normalizeChoices(obj["choices"], fallback.Choices),
		Answer:      normalizeAnswer(obj["answer"], fallback.Answer),
		Explanation: textOr(obj["explanation"], fallback.Explanation),
	}
}

func normalizeQuestion(obj map[string]any, fallback string) string {
	if q, ok := coerceText(obj["question"]); ok && q != "" {
		return q
	}
	// Some models split the prompt the way printed tests do.
	var parts []string
	for _, key := range []string{"stimulus", "question_stem"} {
		if s, ok := coerceText(obj[key]); ok && s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n\n")
	}
	return fallback
}

func normalizeChoices(v any, fallback []string) []string {
	var out []string

	switch c := v.(type) {
	case map[string]any:
		for _, l := range Letters {
			val, ok := choiceForLetter(c, l)
			if !ok {
				return slices.Clone(fallback)
			}
			out = append(out, choiceText(val))
		}
	case []any:
		if len(c) < NumChoices {
			return slices.Clone(fallback)
		}
		for _, val := range c[:NumChoices] {
			out = append(out, choiceText(val))
		}
	case []string:
		if len(c) < NumChoices {
			return slices.Clone(fallback)
		}
		out = slices.Clone(c[:NumChoices])
	default:
		return slices.Clone(fallback)
	}

	for i, s := range out {
		out[i] = strings.TrimSpace(s)
		if out[i] == "" {
			return slices.Clone(fallback)
		}
	}
	return out
}

// choiceForLetter looks up the exact upper-case key first. Otherwise it takes
// the first key, in sorted order, that folds to letter.
func choiceForLetter(m map[string]any, letter string) (any, bool) {
	if v, ok := m[letter]; ok {
		return v, true
	}
	keys := slices.Sorted(maps.Keys(m))
	for _, k := range keys {
		if strings.EqualFold(strings.TrimSpace(k), letter) {
			return m[k], true
		}
	}
	return nil, false
}

// choiceText flattens one choice. Objects such as {"id":"A","text":"..."}
// contribute their text field.
func choiceText(v any) string {
	if obj, ok := v.(map[string]any); ok {
		for _, key := range []string{"text", "label", "content"} {
			if s, ok := coerceText(obj[key]); ok && s != "" {
				return s
			}
		}
		return ""
	}
	s, _ := coerceText(v)
	return s
}

// letterPattern accepts "C", "(C)", "C)" and "C." after upper-casing.
var letterPattern = regexp.MustCompile(`^\(?([A-E])[).]?$`)

func normalizeAnswer(v any, fallback string) string {
	switch a := v.(type) {
	case string:
		s := strings.ToUpper(strings.TrimSpace(a))
		if m := letterPattern.FindStringSubmatch(s); m != nil {
			return m[1]
		}
		return letterForText(s)
	case json.Number:
		return letterForText(a.String())
	case float64:
		return letterForNumber(a)
	case float32:
		return letterForNumber(float64(a))
	case int:
		return letterForNumber(float64(a))
	case int64:
		return letterForNumber(float64(a))
	}
	return fallback
}

// letterForText parses a numeric string. Out-of-range values keep the
// infinity ParseFloat reports so they clamp like any other large number.
func letterForText(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Letters[0]
	}
	return letterForNumber(f)
}

// letterForNumber maps a 1-based choice number to its letter: 1→A, 3→C.
// Zero, negatives and NaN land on A; anything past five lands on E.
func letterForNumber(f float64) string {
	if math.IsNaN(f) {
		return Letters[0]
	}
	idx := math.Trunc(f) - 1
	switch {
	case idx < 0:
		idx = 0
	case idx > float64(NumChoices-1):
		idx = float64(NumChoices - 1)
	}
	return Letters[int(idx)]
}

func textOr(v any, fallback string) string {
	if s, ok := coerceText(v); ok && s != "" {
		return s
	}
	return fallback
}

// coerceText renders scalars as trimmed text. Absent values, null and
// composite values report false.
func coerceText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}
