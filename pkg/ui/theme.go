package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style

	// Window chrome, created once instead of per frame
	LocationBar     lipgloss.Style
	TitleBar        lipgloss.Style
	TabActive       lipgloss.Style
	TabInactive     lipgloss.Style
	TaskbarBase     lipgloss.Style
	TaskbarItem     lipgloss.Style
	TaskbarSelected lipgloss.Style
	MutedText       lipgloss.Style
	PrimaryBold     lipgloss.Style
	StatusOK        lipgloss.Style
	StatusError     lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim
		Success:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Warning:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Danger:    lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.LocationBar = r.NewStyle().Foreground(ThemeFg("#8BE9FD")).Background(ColorBgSubtle).Padding(0, 1)
	t.TitleBar = t.Header
	t.TabActive = r.NewStyle().Foreground(t.Primary).Bold(true).Underline(true).Padding(0, 1)
	t.TabInactive = r.NewStyle().Foreground(t.Secondary).Padding(0, 1)
	t.TaskbarBase = r.NewStyle().Background(ColorBgDark).Foreground(t.Subtext)
	t.TaskbarItem = r.NewStyle().Foreground(t.Subtext).Padding(0, 1)
	t.TaskbarSelected = r.NewStyle().Foreground(t.Primary).Background(t.Highlight).Bold(true).Padding(0, 1)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.StatusOK = r.NewStyle().Foreground(t.Success)
	t.StatusError = r.NewStyle().Foreground(t.Danger).Bold(true)

	return t
}

// ThemeByName returns the default theme with the background forced for
// "dark" and "light". Any other name keeps the renderer's detection.
func ThemeByName(r *lipgloss.Renderer, name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return DefaultTheme(r)
}

// IsDark reports whether the theme renders for a dark background.
func (t Theme) IsDark() bool {
	if t.Renderer == nil {
		return true
	}
	return t.Renderer.HasDarkBackground()
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
