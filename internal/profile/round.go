package profile

import (
	"errors"
	"time"

	"github.com/abhisek/lsatarcade/internal/drill"
)

var (
	// ErrAnswered is returned when a round has already been scored.
	ErrAnswered = errors.New("round already answered")

	// ErrInvalidLetter is returned for picks outside A-E.
	ErrInvalidLetter = errors.New("pick must be one of A-E")
)

// Outcome describes the effect of one scored answer.
type Outcome struct {
	Correct      bool
	Picked       string
	Answer       string
	XPGained     int
	CoinsGained  int
	LevelsGained int
	LivesLost    int
}

// ChoiceState is how a choice should be shown once a round is scored.
type ChoiceState int

const (
	StateIdle ChoiceState = iota
	StateCorrect
	StateWrong
	StateDim
)

// Round is one drill presented to the learner. It is scored at most once.
type Round struct {
	Drill   drill.Drill
	outcome *Outcome
}

// NewRound starts a round for d.
func NewRound(d drill.Drill) *Round {
	return &Round{Drill: d}
}

// Answered reports whether the round has been scored.
func (r *Round) Answered() bool {
	return r.outcome != nil
}

// Outcome returns the scored outcome, if any.
func (r *Round) Outcome() (Outcome, bool) {
	if r.outcome == nil {
		return Outcome{}, false
	}
	return *r.outcome, true
}

// Submit scores letter against the drill and applies the result to p. A
// correct pick earns XPPerCorrect; a wrong pick costs a life. Either way the
// day counts toward the streak. Later submissions return p untouched with
// ErrAnswered.
func (r *Round) Submit(p Profile, letter string, now time.Time) (Profile, Outcome, error) {
	if r.outcome != nil {
		return p, *r.outcome, ErrAnswered
	}
	idx := drill.LetterIndex(letter)
	if idx < 0 {
		return p, Outcome{}, ErrInvalidLetter
	}

	out := Outcome{
		Picked: drill.Letters[idx],
		Answer: r.Drill.Answer,
	}

	before := p
	if r.Drill.IsCorrect(letter) {
		out.Correct = true
		p, out.LevelsGained = p.AddXP(XPPerCorrect)
		out.XPGained = XPPerCorrect
	} else {
		p = p.LoseLife()
	}
	out.CoinsGained = p.Coins - before.Coins
	out.LivesLost = before.Lives - p.Lives
	p = p.Touch(now)

	r.outcome = &out
	return p, out, nil
}

// ChoiceState reports how the choice at letter should be drawn: the
// credited choice is correct, a wrong pick is wrong, the rest are dimmed.
// Before scoring every choice is idle.
func (r *Round) ChoiceState(letter string) ChoiceState {
	if r.outcome == nil {
		return StateIdle
	}
	idx := drill.LetterIndex(letter)
	switch {
	case idx >= 0 && idx == r.Drill.AnswerIndex():
		return StateCorrect
	case idx >= 0 && drill.Letters[idx] == r.outcome.Picked:
		return StateWrong
	default:
		return StateDim
	}
}
