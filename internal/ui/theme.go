package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
}

var themes = []Theme{
	{
		Name:          "Dracula",
		Background:    "#282a36",
		Surface:       "#343746",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
	},
	{
		Name:          "Slate",
		Background:    "#1e293b",
		Surface:       "#283548",
		SelectionBg:   "#334155",
		SelectionText: "#f1f5f9",
		Text:          "#e2e8f0",
		Muted:         "#64748b",
		Accent:        "#7dd3fc",
		Success:       "#86efac",
		Warning:       "#fde68a",
		Danger:        "#fca5a5",
	},
	{
		Name:          "Paper",
		Background:    "#faf4ed",
		Surface:       "#f2e9e1",
		SelectionBg:   "#dfdad9",
		SelectionText: "#575279",
		Text:          "#575279",
		Muted:         "#9893a5",
		Accent:        "#907aa9",
		Success:       "#56949f",
		Warning:       "#ea9d34",
		Danger:        "#b4637a",
	},
}

// GetTheme returns the theme with the given name, defaulting to the first.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, cycling.
func NextTheme(name string) string {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Status   lipgloss.Style
	EditCell lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		EditCell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Underline(true),
	}
}
