package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/profile"
	"github.com/abhisek/lsatarcade/internal/ui/theme"
)

// ContentWidth clamps a terminal width to a readable card width.
func ContentWidth(termWidth int) int {
	w := termWidth - 4
	if w > 76 {
		w = 76
	}
	if w < 30 {
		w = 30
	}
	return w
}

// StatusLine renders the profile header: level, streak, lives and coins.
func StatusLine(p profile.Profile) string {
	return theme.Header.Render(fmt.Sprintf("Level %d • 🔥 %d • ❤️ %d • 🪙 %d",
		p.Level, p.Streak, p.Lives, p.Coins))
}

// DrillCard renders a round: question, lettered choices and, once scored,
// the result with the credited answer and explanation.
func DrillCard(r *profile.Round, width int) string {
	return DrillCardCursor(r, width, -1)
}

// DrillCardCursor is DrillCard with a "▸" marker in front of choice cursor.
// A negative cursor renders no marker column.
func DrillCardCursor(r *profile.Round, width, cursor int) string {
	inner := width - 6
	var b strings.Builder

	b.WriteString(theme.Label.Render("QUESTION"))
	b.WriteString("\n")
	b.WriteString(theme.Question.Width(inner).Render(r.Drill.Question))
	b.WriteString("\n\n")

	for i, text := range r.Drill.Choices {
		letter := drill.Letters[i]
		line := fmt.Sprintf("%s)  %s", letter, text)
		switch {
		case cursor < 0:
		case i == cursor:
			line = "▸ " + line
		default:
			line = "  " + line
		}
		b.WriteString(choiceStyle(r.ChoiceState(letter)).Width(inner).Render(line))
		b.WriteString("\n")
	}

	if out, ok := r.Outcome(); ok {
		b.WriteString("\n")
		b.WriteString(resultBanner(r.Drill, out, inner))
	}

	return theme.Card.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func choiceStyle(s profile.ChoiceState) lipgloss.Style {
	switch s {
	case profile.StateCorrect:
		return theme.Correct
	case profile.StateWrong:
		return theme.Incorrect
	case profile.StateDim:
		return theme.Dim
	default:
		return theme.Idle
	}
}

func resultBanner(d drill.Drill, out profile.Outcome, width int) string {
	var head string
	style := theme.ResultWrong
	if out.Correct {
		head = theme.Correct.Render(fmt.Sprintf("Correct! +%d XP", out.XPGained))
		if out.LevelsGained > 0 {
			head += theme.Coins.Render(fmt.Sprintf("  Level up! +%d 🪙", out.LevelsGained*profile.LevelUpBonus))
		}
		style = theme.ResultCorrect
	} else {
		head = theme.Incorrect.Render(fmt.Sprintf("Incorrect. -%d ❤️", out.LivesLost))
	}

	body := theme.Body.Width(width - 4).Render(fmt.Sprintf("Answer: %s. %s", d.Answer, d.Explanation))
	return style.Width(width - 2).Render(head + "\n" + body)
}
