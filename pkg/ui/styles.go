package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// Light mode colors tuned for WCAG AA compliance (contrast ratio >= 4.5:1)
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgDark      = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#1E1F29"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
)

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(t Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}

// RenderProgressDots renders one dot per step with the current one filled,
// e.g. "○ ○ ● ○". Long scenarios collapse to a counter.
func RenderProgressDots(t Theme, index, total int) string {
	if total <= 0 {
		return ""
	}
	if total > 12 {
		return t.MutedText.Render(strings.Repeat("·", 3))
	}
	dots := make([]string, total)
	for i := range dots {
		if i == index {
			dots[i] = t.PrimaryBold.Render("●")
		} else {
			dots[i] = t.MutedText.Render("○")
		}
	}
	return strings.Join(dots, " ")
}
