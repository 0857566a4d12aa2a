package drill

import (
	"fmt"
	"strings"
)

// Letters labels the five choice positions, in order.
var Letters = [5]string{"A", "B", "C", "D", "E"}

// NumChoices is the number of answer choices every drill carries.
const NumChoices = len(Letters)

// DefaultTopic is used when the caller does not name one.
const DefaultTopic = "logical_reasoning"

// Drill is a single five-choice practice question.
type Drill struct {
	// Question is the prompt shown to the learner. Never blank.
	Question string `json:"question"`

	// Choices holds exactly five options, index 0..4 for A..E.
	Choices []string `json:"choices"`

	// Answer is the credited letter, one of Letters.
	Answer string `json:"answer"`

	// Explanation is the rationale for the credited answer. Never blank.
	Explanation string `json:"explanation"`
}

// Validate reports the first structural problem with d, or nil.
func (d Drill) Validate() error {
	if strings.TrimSpace(d.Question) == "" {
		return fmt.Errorf("question is empty")
	}
	if len(d.Choices) != NumChoices {
		return fmt.Errorf("expected %d choices, got %d", NumChoices, len(d.Choices))
	}
	for i, c := range d.Choices {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("choice %s is empty", Letters[i])
		}
	}
	if LetterIndex(d.Answer) < 0 {
		return fmt.Errorf("invalid answer %q", d.Answer)
	}
	if strings.TrimSpace(d.Explanation) == "" {
		return fmt.Errorf("explanation is empty")
	}
	return nil
}

// AnswerIndex returns the index of the credited choice, or -1.
func (d Drill) AnswerIndex() int {
	return LetterIndex(d.Answer)
}

// CorrectChoice returns the text of the credited choice.
func (d Drill) CorrectChoice() string {
	i := d.AnswerIndex()
	if i < 0 || i >= len(d.Choices) {
		return ""
	}
	return d.Choices[i]
}

// IsCorrect compares a picked letter with the credited one, ignoring case
// and surrounding space.
func (d Drill) IsCorrect(letter string) bool {
	i := LetterIndex(letter)
	return i >= 0 && i == d.AnswerIndex()
}

// LetterIndex maps "A".."E" (any case, trimmed) to 0..4, or -1.
func LetterIndex(letter string) int {
	l := strings.ToUpper(strings.TrimSpace(letter))
	for i, want := range Letters {
		if l == want {
			return i
		}
	}
	return -1
}
