// Package theme holds the colour palettes used by both terminal frontends.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/nlink/internal/raster"
)

// Theme defines the colour scheme for a rendered chain.
type Theme struct {
	Name        string
	Rod         lipgloss.Color
	RodSelected lipgloss.Color
	Joint       lipgloss.Color
	Selected    lipgloss.Color
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Background  lipgloss.Color
}

// Available themes
var (
	// Classic draws white rods and blue joints with a red selection.
	Classic = Theme{
		Name:        "classic",
		Rod:         lipgloss.Color("#ffffff"),
		RodSelected: lipgloss.Color("#ffcccc"),
		Joint:       lipgloss.Color("#0000ff"),
		Selected:    lipgloss.Color("#ff0000"),
		Text:        lipgloss.Color("#ffffff"),
		Muted:       lipgloss.Color("#888888"),
		Background:  lipgloss.Color("#000000"),
	}

	Cyberpunk = Theme{
		Name:        "cyberpunk",
		Rod:         lipgloss.Color("#00ffff"),
		RodSelected: lipgloss.Color("#ffff00"),
		Joint:       lipgloss.Color("#ff00ff"),
		Selected:    lipgloss.Color("#ffff00"),
		Text:        lipgloss.Color("#ffffff"),
		Muted:       lipgloss.Color("#666666"),
		Background:  lipgloss.Color("#0a0a0a"),
	}

	RetroGreen = Theme{
		Name:        "retro",
		Rod:         lipgloss.Color("#00cc00"),
		RodSelected: lipgloss.Color("#88ff88"),
		Joint:       lipgloss.Color("#00ff00"),
		Selected:    lipgloss.Color("#ffff00"),
		Text:        lipgloss.Color("#00ff00"),
		Muted:       lipgloss.Color("#005500"),
		Background:  lipgloss.Color("#001100"),
	}

	Ocean = Theme{
		Name:        "ocean",
		Rod:         lipgloss.Color("#00a8cc"),
		RodSelected: lipgloss.Color("#ffd700"),
		Joint:       lipgloss.Color("#0077be"),
		Selected:    lipgloss.Color("#ffd700"),
		Text:        lipgloss.Color("#e0f0ff"),
		Muted:       lipgloss.Color("#4488aa"),
		Background:  lipgloss.Color("#001a33"),
	}

	Sunset = Theme{
		Name:        "sunset",
		Rod:         lipgloss.Color("#feca57"),
		RodSelected: lipgloss.Color("#ff9ff3"),
		Joint:       lipgloss.Color("#ff6b6b"),
		Selected:    lipgloss.Color("#ff9ff3"),
		Text:        lipgloss.Color("#fff5f5"),
		Muted:       lipgloss.Color("#8b6b8c"),
		Background:  lipgloss.Color("#2d1b2e"),
	}

	Themes = []Theme{Classic, Cyberpunk, RetroGreen, Ocean, Sunset}
)

// Get returns a theme by name, falling back to Classic.
func Get(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Classic
}

// Exists reports whether name is a known theme.
func Exists(name string) bool {
	for _, t := range Themes {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Names returns list of available theme names
func Names() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Color returns the foreground colour for st.
func (t Theme) Color(st raster.Style) lipgloss.Color {
	switch st {
	case raster.Rod:
		return t.Rod
	case raster.RodSelected:
		return t.RodSelected
	case raster.Joint:
		return t.Joint
	case raster.JointSelected:
		return t.Selected
	case raster.TextMuted:
		return t.Muted
	default:
		return t.Text
	}
}

// Base is the style of unpainted cells.
func (t Theme) Base() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background)
}

// Style returns a lipgloss style rendering st in this theme.
func (t Theme) Style(st raster.Style) lipgloss.Style {
	s := t.Base().Foreground(t.Color(st))
	if st == raster.JointSelected || st == raster.Text {
		s = s.Bold(true)
	}
	return s
}
