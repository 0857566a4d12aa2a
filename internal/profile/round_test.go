package profile

import (
	"errors"
	"testing"

	"github.com/abhisek/lsatarcade/internal/drill"
)

func testDrill(answer string) drill.Drill {
	return drill.Drill{
		Question:    "Q?",
		Choices:     []string{"a", "b", "c", "d", "e"},
		Answer:      answer,
		Explanation: "why",
	}
}

func TestRound_Correct(t *testing.T) {
	r := NewRound(testDrill("C"))
	now := day("2026-03-10 09:00")

	p, out, err := r.Submit(Default(), "c", now)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !out.Correct || out.XPGained != 10 || out.CoinsGained != 10 || out.LivesLost != 0 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if p.XP != 10 || p.Coins != 10 || p.Lives != 5 || p.Streak != 1 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if !r.Answered() {
		t.Fatal("expected round to be answered")
	}
}

func TestRound_Wrong(t *testing.T) {
	r := NewRound(testDrill("C"))

	p, out, err := r.Submit(Default(), "A", day("2026-03-10 09:00"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Correct || out.LivesLost != 1 || out.XPGained != 0 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if p.Lives != 4 || p.XP != 0 {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestRound_LevelUpOutcome(t *testing.T) {
	r := NewRound(testDrill("B"))
	p, out, err := r.Submit(Profile{XP: 95, Level: 1, Lives: 5}, "B", day("2026-03-10 09:00"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.LevelsGained != 1 || out.CoinsGained != 10+LevelUpBonus || p.Level != 2 {
		t.Fatalf("unexpected outcome %+v / profile %+v", out, p)
	}
}

func TestRound_ScoresOnce(t *testing.T) {
	r := NewRound(testDrill("C"))
	now := day("2026-03-10 09:00")

	p, first, err := r.Submit(Default(), "C", now)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	again, second, err := r.Submit(p, "A", now)
	if !errors.Is(err, ErrAnswered) {
		t.Fatalf("expected ErrAnswered, got %v", err)
	}
	if again != p {
		t.Fatalf("profile changed on resubmission: %+v -> %+v", p, again)
	}
	if second != first {
		t.Fatalf("expected original outcome, got %+v", second)
	}
}

func TestRound_InvalidLetterDoesNotConsume(t *testing.T) {
	r := NewRound(testDrill("C"))

	p, _, err := r.Submit(Default(), "F", day("2026-03-10 09:00"))
	if !errors.Is(err, ErrInvalidLetter) {
		t.Fatalf("expected ErrInvalidLetter, got %v", err)
	}
	if p != Default() || r.Answered() {
		t.Fatal("invalid pick must not score the round")
	}
	if _, _, err := r.Submit(p, "C", day("2026-03-10 09:00")); err != nil {
		t.Fatalf("valid pick after invalid one: %v", err)
	}
}

func TestRound_ChoiceState(t *testing.T) {
	r := NewRound(testDrill("C"))
	if r.ChoiceState("C") != StateIdle {
		t.Fatal("expected idle before scoring")
	}

	r.Submit(Default(), "A", day("2026-03-10 09:00"))

	want := map[string]ChoiceState{
		"A": StateWrong,
		"B": StateDim,
		"C": StateCorrect,
		"D": StateDim,
		"E": StateDim,
	}
	for l, s := range want {
		if got := r.ChoiceState(l); got != s {
			t.Errorf("ChoiceState(%s) = %v, want %v", l, got, s)
		}
	}
}
