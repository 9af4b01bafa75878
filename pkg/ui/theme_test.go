package ui

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

func TestDefaultTheme(t *testing.T) {
	renderer := lipgloss.NewRenderer(nil)
	theme := DefaultTheme(renderer)

	if theme.Renderer != renderer {
		t.Error("DefaultTheme renderer mismatch")
	}
	for name, c := range map[string]lipgloss.AdaptiveColor{
		"Primary":   theme.Primary,
		"Highlight": theme.Highlight,
		"Danger":    theme.Danger,
	} {
		if isColorEmpty(c) {
			t.Errorf("DefaultTheme %s color is empty", name)
		}
	}
}

func isColorEmpty(c lipgloss.AdaptiveColor) bool {
	return c.Light == "" && c.Dark == ""
}

func TestThemeByName(t *testing.T) {
	if !ThemeByName(lipgloss.NewRenderer(nil), "dark").IsDark() {
		t.Error("dark theme is not dark")
	}
	if ThemeByName(lipgloss.NewRenderer(nil), " Light ").IsDark() {
		t.Error("light theme is dark")
	}
	var zero Theme
	if !zero.IsDark() {
		t.Error("zero theme should default to dark")
	}
}

func TestThemeFg(t *testing.T) {
	saved := TermProfile
	defer func() { TermProfile = saved }()

	TermProfile = colorprofile.ANSI
	if got := ThemeFg("#8BE9FD"); got != lipgloss.ANSIColor(7) {
		t.Errorf("ThemeFg on 16 colors = %v", got)
	}
	TermProfile = colorprofile.TrueColor
	if got := ThemeFg("#8BE9FD"); got != lipgloss.Color("#8BE9FD") {
		t.Errorf("ThemeFg on truecolor = %v", got)
	}
}

func TestRenderProgressDots(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))
	if got := RenderProgressDots(theme, 0, 0); got != "" {
		t.Errorf("no steps rendered %q", got)
	}
	if got := lipgloss.Width(RenderProgressDots(theme, 1, 4)); got != 7 {
		t.Errorf("4 dots have width %d, want 7", got)
	}
	if got := lipgloss.Width(RenderProgressDots(theme, 1, 40)); got != 3 {
		t.Errorf("long scenario width %d, want 3", got)
	}
	if RenderDivider(theme, 0) != "" {
		t.Error("zero width divider not empty")
	}
}
