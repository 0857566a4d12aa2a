package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lsatarcade/internal/ui/theme"
)

// Prompt reads one line of chat input on top of bubbles/textinput.
type Prompt struct {
	Model     textinput.Model
	Label     string
	Submitted bool
	Quit      bool
}

// NewPrompt creates a focused prompt. charLimit <= 0 means unlimited.
func NewPrompt(label, placeholder string, charLimit int) Prompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return Prompt{Model: ti, Label: label}
}

// Init returns the initial command.
func (p Prompt) Init() tea.Cmd {
	return p.Model.Focus()
}

// Update submits on enter and quits on esc or ctrl+c; every other message
// goes to the text input.
func (p Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.Submitted || p.Quit {
		return p, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			p.Submitted = true
			return p, tea.Quit
		case "esc", "ctrl+c", "ctrl+d":
			p.Quit = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.Model, cmd = p.Model.Update(msg)
	return p, cmd
}

// View renders the prompt frame.
func (p Prompt) View() tea.View {
	return tea.NewView(p.Render())
}

// Render draws the label and the input line. Once submitted it keeps the
// typed text so the transcript stays readable.
func (p Prompt) Render() string {
	head := theme.Label.Render(p.Label) + " "
	switch {
	case p.Quit:
		return ""
	case p.Submitted:
		return head + p.Value() + "\n"
	}
	return head + p.Model.View()
}

// Value returns the trimmed input.
func (p Prompt) Value() string {
	return strings.TrimSpace(p.Model.Value())
}
