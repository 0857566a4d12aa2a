// Package theme holds the terminal palette and styles for drill cards.
package theme

import "charm.land/lipgloss/v2"

// Arcade palette: emerald for progress, violet for labels, gold for coins.
var (
	Emerald = lipgloss.Color("#10B981")
	Forest  = lipgloss.Color("#047857")
	Violet  = lipgloss.Color("#A78BFA")
	Gold    = lipgloss.Color("#FBBF24")
	Crimson = lipgloss.Color("#EF4444")
	Ink     = lipgloss.Color("#E5E7EB")
	Muted   = lipgloss.Color("#9CA3AF")
	Track   = lipgloss.Color("#374151")
)

var (
	Title     = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	Label     = lipgloss.NewStyle().Bold(true).Foreground(Violet)
	Body      = lipgloss.NewStyle().Foreground(Ink)
	Question  = lipgloss.NewStyle().Bold(true).Foreground(Ink)
	Hint      = lipgloss.NewStyle().Italic(true).Foreground(Muted)
	TutorName = lipgloss.NewStyle().Bold(true).Foreground(Violet)
	Coins     = lipgloss.NewStyle().Bold(true).Foreground(Gold)
)

// Header is the status strip above a card; Card frames the round.
var (
	Header = lipgloss.NewStyle().Bold(true).Foreground(Ink).Background(Forest).Padding(0, 1)
	Card   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Track).Padding(1, 2)
)

// Choice line styles, one per profile.ChoiceState.
var (
	Idle      = lipgloss.NewStyle().Foreground(Ink)
	Correct   = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	Incorrect = lipgloss.NewStyle().Bold(true).Foreground(Crimson)
	Dim       = lipgloss.NewStyle().Foreground(Muted)
)

// Result banners under a scored round.
var (
	ResultCorrect = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(Emerald).Padding(0, 1)
	ResultWrong   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(Crimson).Padding(0, 1)
)

// ProgressFilled and ProgressEmpty paint the XP bar cells.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Emerald)
	ProgressEmpty  = lipgloss.NewStyle().Background(Track)
)
