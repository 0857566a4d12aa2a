package drill

import (
	"math/rand/v2"
	"slices"
	"sync"
)

const (
	mockQuestion = "The argument concludes that a new study method guarantees higher LSAT scores " +
		"because students who used it scored higher than those who did not. " +
		"Which choice most accurately describes the reasoning error?"

	mockExplanation = "Correlation is not causation: the higher scores could have other causes, " +
		"so the credited response identifies the causal flaw."
)

// mockChoices is a generic catalog of reasoning labels. The credited letter
// is drawn independently of it.
var mockChoices = [NumChoices]string{
	"Premise-strengthening",
	"Assumption",
	"Causal flaw",
	"Inference",
	"Principle",
}

// Mock returns an offline drill using the global random source.
func Mock() Drill {
	return buildMock(rand.IntN(NumChoices))
}

// Mocker produces offline drills from its own random source, so a fixed
// seed gives a reproducible sequence of answers. Safe for concurrent use.
type Mocker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMocker returns a Mocker drawing from src.
func NewMocker(src rand.Source) *Mocker {
	return &Mocker{rng: rand.New(src)}
}

// NewSeededMocker is shorthand for a PCG-backed Mocker.
func NewSeededMocker(seed uint64) *Mocker {
	return NewMocker(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Drill returns the next offline drill.
func (m *Mocker) Drill() Drill {
	m.mu.Lock()
	i := m.rng.IntN(NumChoices)
	m.mu.Unlock()
	return buildMock(i)
}

func buildMock(i int) Drill {
	return Drill{
		Question:    mockQuestion,
		Choices:     slices.Clone(mockChoices[:]),
		Answer:      Letters[i],
		Explanation: mockExplanation,
	}
}
