package views

import (
	"github.com/charmbracelet/lipgloss"
	"smokeless/internal/models"
)

type Theme struct {
	Name       string
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Highlight  lipgloss.Color
	IsDark     bool
}

// Semantic colors, same in both modes.
var (
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
)

func LightTheme() Theme {
	return Theme{
		Name:       models.ThemeLight,
		Foreground: lipgloss.Color("#101F38"),
		Primary:    lipgloss.Color("#101F38"),
		Muted:      lipgloss.Color("#6b7480"),
		Border:     lipgloss.Color("#dce0e5"),
		Highlight:  lipgloss.Color("#ff8a65"),
	}
}

func DarkTheme() Theme {
	return Theme{
		Name:       models.ThemeDark,
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#8a96a8"),
		Border:     lipgloss.Color("#2a3850"),
		Highlight:  lipgloss.Color("#ffd54f"),
		IsDark:     true,
	}
}

// ResolveTheme maps a settings theme to a palette. "system" follows the
// terminal background.
func ResolveTheme(name string, hasDarkBackground func() bool) Theme {
	switch name {
	case models.ThemeLight:
		return LightTheme()
	case models.ThemeDark:
		return DarkTheme()
	}
	if hasDarkBackground != nil && !hasDarkBackground() {
		return LightTheme()
	}
	return DarkTheme()
}

type Styles struct {
	Theme Theme

	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Card    lipgloss.Style
	Button  lipgloss.Style
	Bar     lipgloss.Style
	BarNow  lipgloss.Style
	Locked  lipgloss.Style
	Open    lipgloss.Style
	Warning lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer, t Theme) Styles {
	return Styles{
		Theme:   t,
		Header:  r.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		Label:   r.NewStyle().Foreground(t.Muted).Width(16),
		Value:   r.NewStyle().Bold(true).Foreground(t.Foreground),
		Muted:   r.NewStyle().Foreground(t.Muted),
		Card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		Button:  r.NewStyle().Bold(true).Foreground(t.Foreground).Border(lipgloss.ThickBorder()).BorderForeground(Destructive).Align(lipgloss.Center),
		Bar:     r.NewStyle().Foreground(t.Muted),
		BarNow:  r.NewStyle().Foreground(t.Highlight),
		Locked:  r.NewStyle().Foreground(t.Muted),
		Open:    r.NewStyle().Foreground(Success),
		Warning: r.NewStyle().Bold(true).Foreground(Destructive),
	}
}
