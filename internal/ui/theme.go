package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                  string
	Title, Muted, Accent, Success, Error  lipgloss.Style
	Header, Cell, Selected, Help, Focused lipgloss.Style
	Border                                lipgloss.Border
	BorderColor                           lipgloss.TerminalColor
}

// Themes lists the accepted theme names.
var Themes = []string{"classic", "neon", "mono"}

var current = themeFor("classic")

// SetTheme switches the active theme. Unknown names are an error.
func SetTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !ValidTheme(name) {
		return fmt.Errorf("unknown theme %q: must be one of %v", name, Themes)
	}
	current = themeFor(name)
	if name == "mono" {
		SetColor(false)
	}
	return nil
}

func ValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

func themeFor(name string) Theme {
	base := lipgloss.NewStyle()
	switch name {
	case "neon":
		return Theme{
			Name:        name,
			Title:       base.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:       base.Faint(true),
			Accent:      base.Foreground(lipgloss.Color("14")),
			Success:     base.Foreground(lipgloss.Color("10")),
			Error:       base.Foreground(lipgloss.Color("9")).Bold(true),
			Header:      base.Bold(true).Foreground(lipgloss.Color("13")).Padding(0, 1),
			Cell:        base.Padding(0, 1),
			Selected:    base.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")),
			Help:        base.Faint(true),
			Focused:     base.Foreground(lipgloss.Color("14")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		return Theme{
			Name:        name,
			Title:       base.Bold(true),
			Muted:       base,
			Accent:      base,
			Success:     base,
			Error:       base.Bold(true),
			Header:      base.Bold(true).Padding(0, 1),
			Cell:        base.Padding(0, 1),
			Selected:    base.Reverse(true),
			Help:        base,
			Focused:     base.Underline(true),
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Name:        "classic",
			Title:       base.Bold(true),
			Muted:       base.Faint(true),
			Accent:      base.Foreground(lipgloss.Color("12")),
			Success:     base.Foreground(lipgloss.Color("42")),
			Error:       base.Foreground(lipgloss.Color("9")).Bold(true),
			Header:      base.Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1),
			Cell:        base.Padding(0, 1),
			Selected:    base.Bold(true).Reverse(true),
			Help:        base.Faint(true),
			Focused:     base.Foreground(lipgloss.Color("12")),
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
