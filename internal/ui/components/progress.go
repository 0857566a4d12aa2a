package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lsatarcade/internal/ui/theme"
)

// ProgressBar is a one-line bar: label, cells, then a dim suffix.
type ProgressBar struct {
	Label   string
	Percent float64
	Suffix  string
	Width   int
}

// View renders the bar within Width columns; the cell run never drops below
// four cells.
func (p ProgressBar) View() string {
	var head, tail string
	if p.Label != "" {
		head = theme.Label.Render(p.Label) + " "
	}
	if p.Suffix != "" {
		tail = " " + theme.Hint.Render(p.Suffix)
	}

	cells := max(p.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	filled := min(max(int(float64(cells)*p.Percent), 0), cells)

	return head +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)) +
		tail
}

// XPBar shows progress toward the next level.
func XPBar(xp, need, width int) ProgressBar {
	bar := ProgressBar{Label: "XP", Suffix: fmt.Sprintf("%d/%d", xp, need), Width: width}
	if need > 0 {
		bar.Percent = float64(xp) / float64(need)
	}
	return bar
}
