package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PageDelegate renders catalog pages as single rows.
type PageDelegate struct {
	Theme Theme
}

func (d PageDelegate) Height() int {
	return 1
}

func (d PageDelegate) Spacing() int {
	return 0
}

func (d PageDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d PageDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(PageItem)
	if !ok {
		return
	}

	t := d.Theme
	width := m.Width()
	if width <= 0 {
		width = 80
	}
	// one short of the edge so the terminal never wraps
	width = width - 1

	isSelected := index == m.Index()

	// Layout: [sel] [fav] [title...] [summary...] [tabs] [path]
	var rightParts []string
	rightWidth := 0

	if width > 50 {
		tabInfo := fmt.Sprintf("%d tabs", len(i.Page.Tabs))
		if i.Page.HasScenarios() {
			tabInfo += " ▶"
		}
		rightParts = append(rightParts, t.MutedText.Render(fmt.Sprintf("%8s", tabInfo)))
		rightWidth += max(8, lipgloss.Width(tabInfo)) + 1
	}
	if width > 80 {
		path := truncateRunesHelper(i.Page.Path, 24, "…")
		rightParts = append(rightParts, t.MutedText.Render(fmt.Sprintf("%-24s", path)))
		rightWidth += 25
	}

	favBadge := "  "
	if i.FavoriteNum > 0 {
		favBadge = t.Renderer.NewStyle().Foreground(t.Warning).Render(fmt.Sprintf("%d ", i.FavoriteNum))
	}
	leftFixedWidth := 2 + 2

	titleWidth := width - leftFixedWidth - rightWidth - 2
	if titleWidth < 5 {
		titleWidth = 5
	}
	title := truncateRunesHelper(i.Page.Title, titleWidth, "…")

	// the summary takes whatever the title leaves over
	summary := ""
	if spare := titleWidth - lipgloss.Width(title) - 3; spare > 10 && i.Page.Summary != "" {
		summary = truncateRunesHelper(i.Page.Summary, spare, "…")
	}

	var leftSide strings.Builder
	if isSelected {
		leftSide.WriteString(t.PrimaryBold.Render("▸ "))
	} else {
		leftSide.WriteString("  ")
	}
	leftSide.WriteString(favBadge)

	titleStyle := t.Renderer.NewStyle()
	if isSelected {
		titleStyle = titleStyle.Foreground(t.Primary).Bold(true)
	} else {
		titleStyle = titleStyle.Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E8E8E8"})
	}
	leftSide.WriteString(titleStyle.Render(title))
	if summary != "" {
		leftSide.WriteString("   ")
		leftSide.WriteString(t.MutedText.Render(summary))
	}

	rightSide := strings.Join(rightParts, " ")
	padding := width - lipgloss.Width(leftSide.String()) - lipgloss.Width(rightSide)
	if padding < 0 {
		padding = 0
	}
	row := leftSide.String() + strings.Repeat(" ", padding) + rightSide

	rowStyle := t.Renderer.NewStyle().Width(width).MaxWidth(width)
	if isSelected {
		row = rowStyle.Background(t.Highlight).Render(row)
	} else {
		row = rowStyle.Render(row)
	}

	fmt.Fprint(w, row)
}
