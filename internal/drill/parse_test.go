package drill

import (
	"encoding/json"
	"testing"
)

const strictJSON = `{"question":"Q?","choices":["a","b","c","d","e"],"answer":"D","explanation":"why"}`

func TestParse_Strict(t *testing.T) {
	p := Parse(strictJSON)
	if p.Kind != KindStrict {
		t.Fatalf("expected strict, got %s (%v)", p.Kind, p.Err)
	}
	if p.Drill.Answer != "D" || p.Drill.Choices[2] != "c" {
		t.Fatalf("unexpected drill: %+v", p.Drill)
	}
}

func TestParse_FencedJSON(t *testing.T) {
	for _, text := range []string{
		"```json\n" + strictJSON + "\n```",
		"```\n" + strictJSON + "\n```",
		"  " + strictJSON + "  \n",
	} {
		if p := Parse(text); p.Kind != KindStrict {
			t.Fatalf("expected strict for %q, got %s (%v)", text, p.Kind, p.Err)
		}
	}
}

func TestParse_StrictIsTrimmed(t *testing.T) {
	p := Parse(`{"question":"  Q  ","choices":[" a","b ","c","d","e"],"answer":"B","explanation":" why\n"}`)
	if p.Kind != KindStrict {
		t.Fatalf("expected strict, got %s (%v)", p.Kind, p.Err)
	}
	if p.Drill.Question != "Q" || p.Drill.Choices[0] != "a" || p.Drill.Choices[1] != "b" || p.Drill.Explanation != "why" {
		t.Fatalf("expected trimmed fields, got %+v", p.Drill)
	}
}

func TestParse_BlankStrictChoiceIsLoose(t *testing.T) {
	p := Parse(`{"question":"Q","choices":["a","  ","c","d","e"],"answer":"B","explanation":"why"}`)
	if p.Kind != KindLoose {
		t.Fatalf("expected loose for a whitespace-only choice, got %s", p.Kind)
	}
}

func TestParse_Loose(t *testing.T) {
	tests := []string{
		`{"question":"Q?","choices":["a","b","c","d","e"],"answer":3,"explanation":"why"}`,
		`{"question":"Q?","choices":{"A":"a","B":"b","C":"c","D":"d","E":"e"},"answer":"C"}`,
		`{"question":"Q?","choices":["a","b","c","d","e"],"answer":"c","explanation":"why"}`,
		`["not","an","object"]`,
		`42`,
	}
	for _, text := range tests {
		if p := Parse(text); p.Kind != KindLoose {
			t.Fatalf("expected loose for %s, got %s", text, p.Kind)
		}
	}
}

func TestParse_KeepsNumbers(t *testing.T) {
	p := Parse(`{"answer": 3}`)
	obj, ok := p.Value.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", p.Value)
	}
	if _, ok := obj["answer"].(json.Number); !ok {
		t.Fatalf("expected json.Number, got %T", obj["answer"])
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, text := range []string{
		"",
		"Sure! Here is a question about flaws.",
		`{"question": "unterminated`,
		strictJSON + " Hope this helps!",
	} {
		p := Parse(text)
		if p.Kind != KindMalformed {
			t.Fatalf("expected malformed for %q, got %s", text, p.Kind)
		}
		if p.Err == nil || p.Raw != text {
			t.Fatalf("expected error and raw text to be kept, got %+v", p)
		}
	}
}

func TestResolve(t *testing.T) {
	n := fixed("A")

	if d := Resolve(Parse(strictJSON), n); d.Answer != "D" || d.Question != "Q?" {
		t.Fatalf("strict should pass through, got %+v", d)
	}

	loose := Resolve(Parse(`{"question":"Loose?","answer":"5"}`), n)
	if loose.Question != "Loose?" || loose.Answer != "E" {
		t.Fatalf("loose should be normalized, got %+v", loose)
	}
	if loose.Explanation != mockExplanation {
		t.Fatalf("missing explanation should come from mock, got %q", loose.Explanation)
	}

	if d := Resolve(Parse("prose"), n); d.Question != mockQuestion || d.Answer != "A" {
		t.Fatalf("malformed should be mock, got %+v", d)
	}
}

func TestKind_String(t *testing.T) {
	if KindStrict.String() != "strict" || KindLoose.String() != "loose" || KindMalformed.String() != "malformed" {
		t.Fatal("unexpected Kind names")
	}
}
