package drill

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/lsatarcade/internal/llm"
)

// Kind tags the outcome of parsing upstream text.
type Kind int

const (
	// KindMalformed means the text was not JSON at all.
	KindMalformed Kind = iota
	// KindLoose means the text was JSON but not a valid drill as-is.
	KindLoose
	// KindStrict means the text decoded straight into a valid drill.
	KindStrict
)

func (k Kind) String() string {
	switch k {
	case KindStrict:
		return "strict"
	case KindLoose:
		return "loose"
	default:
		return "malformed"
	}
}

// Parsed is the tagged result of Parse. Exactly one of Drill (Strict),
// Value (Loose) or Raw+Err (Malformed) is meaningful, selected by Kind.
type Parsed struct {
	Kind  Kind
	Drill Drill
	Value any
	Raw   string
	Err   error
}

// Parse decodes model output. Surrounding Markdown code fences are
// stripped and numbers are kept as json.Number so numeric answers survive
// untouched.
func Parse(text string) Parsed {
	cleaned := stripCodeFences(text)

	value, err := decodeJSON(cleaned)
	if err != nil {
		return Parsed{Kind: KindMalformed, Raw: text, Err: err}
	}

	if d, ok := strictDrill(value); ok {
		return Parsed{Kind: KindStrict, Drill: d, Value: value, Raw: text}
	}
	return Parsed{Kind: KindLoose, Value: value, Raw: text}
}

// Resolve turns a Parsed into a drill: strict drills pass through, loose
// values are normalized, malformed text degrades to a mock drawn by n.
func Resolve(p Parsed, n *Normalizer) Drill {
	switch p.Kind {
	case KindStrict:
		return p.Drill
	case KindLoose:
		return n.Normalize(p.Value)
	default:
		return n.mock()
	}
}

func decodeJSON(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty response")
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	// Trailing prose after a JSON value means the model did not follow the
	// format; treat it as unparseable rather than guessing.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func strictDrill(value any) (Drill, bool) {
	if _, ok := value.(map[string]any); !ok {
		return Drill{}, false
	}
	if err := llm.ValidateJSON(Schema, value); err != nil {
		return Drill{}, false
	}

	b, err := json.Marshal(value)
	if err != nil {
		return Drill{}, false
	}
	var d Drill
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&d); err != nil {
		return Drill{}, false
	}
	d = trimDrill(d)
	if d.Validate() != nil {
		return Drill{}, false
	}
	return d, true
}

// trimDrill applies the same whitespace trimming the normalizer does.
func trimDrill(d Drill) Drill {
	d.Question = strings.TrimSpace(d.Question)
	d.Explanation = strings.TrimSpace(d.Explanation)
	choices := make([]string, len(d.Choices))
	for i, c := range d.Choices {
		choices[i] = strings.TrimSpace(c)
	}
	d.Choices = choices
	return d
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// Drop an info string such as "json".
		if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{[") {
			s = s[i+1:]
		}
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
