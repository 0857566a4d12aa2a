package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lsatarcade/internal/drill"
	"github.com/abhisek/lsatarcade/internal/profile"
	"github.com/abhisek/lsatarcade/internal/ui/theme"
)

// Picker is the interactive answer selector for one round. Letters pick
// directly; arrows or j/k move the cursor and enter picks it.
type Picker struct {
	Round  *profile.Round
	Width  int
	Cursor int

	Letter  string // picked letter, empty until picked
	Skipped bool
	Quit    bool
}

// NewPicker creates a picker over an unanswered round.
func NewPicker(r *profile.Round, width int) Picker {
	return Picker{Round: r, Width: width}
}

// Init returns nil.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Done reports whether the learner picked, skipped or quit.
func (p Picker) Done() bool {
	return p.Letter != "" || p.Skipped || p.Quit
}

// Update handles keyboard navigation and selection.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.Done() || p.Round.Answered() {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Round.Drill.Choices)-1 {
			p.Cursor++
		}
	case "enter":
		p.Letter = drill.Letters[p.Cursor]
		return p, tea.Quit
	case "s", "space":
		p.Skipped = true
		return p, tea.Quit
	case "q", "esc", "ctrl+c", "ctrl+d":
		p.Quit = true
		return p, tea.Quit
	default:
		if i := drill.LetterIndex(key); i >= 0 && i < len(p.Round.Drill.Choices) {
			p.Cursor = i
			p.Letter = drill.Letters[i]
			return p, tea.Quit
		}
	}
	return p, nil
}

// View renders the picker frame.
func (p Picker) View() tea.View {
	return tea.NewView(p.Render())
}

// Render draws the card with the cursor and a key hint, or nothing once the
// learner has decided.
func (p Picker) Render() string {
	if p.Done() {
		return ""
	}
	return DrillCardCursor(p.Round, p.Width, p.Cursor) + "\n" +
		theme.Hint.Render("A-E or ↑/↓ + enter to answer • s skip • q quit") + "\n"
}
