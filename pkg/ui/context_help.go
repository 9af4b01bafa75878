package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ContextHelpContent contains compact help content for each context.
// Content should fit on one screen (~20 lines) without scrolling.
var ContextHelpContent = map[Context]string{
	ContextCatalog:   contextHelpCatalog,
	ContextFilter:    contextHelpFilter,
	ContextPage:      contextHelpPage,
	ContextScenarios: contextHelpScenarios,
	ContextNotFound:  contextHelpNotFound,
}

// GetContextHelp returns the help content for a given context.
// Falls back to generic help if the context has no specific content.
func GetContextHelp(ctx Context) string {
	if content, ok := ContextHelpContent[ctx]; ok {
		return content
	}
	return contextHelpGeneric
}

// RenderContextHelp renders the context-specific help modal.
// This is a compact modal (~60 chars wide) that shows quick reference info.
func RenderContextHelp(ctx Context, theme Theme, width, height int) string {
	content := GetContextHelp(ctx)

	r := theme.Renderer

	modalWidth := 60
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("? or Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modalStyle.Render(b.String()))
}

const contextHelpCatalog = `## Catalog

**Navigation**
  j/k       Move up/down
  Enter     Open page
  /         Filter pages
  1-9       Open favorite page

**Taskbar**
  [ / ]     Select minimized window
  o         Restore selected window
  x         Remove from taskbar

**Other**
  q         Quit`

const contextHelpFilter = `## Filtering

  type      Narrow the page list
  Enter     Apply filter
  Esc       Clear filter`

const contextHelpPage = `## Page Window

**Tabs**
  Tab/→     Next tab
  S-Tab/←   Previous tab
  1-9       Jump to tab N

**Window**
  j/k       Scroll
  m         Minimize to taskbar
  y         Copy location
  Esc       Back

**Taskbar**
  [ / ]  o  x   Select, restore, remove`

const contextHelpScenarios = `## Walkthrough

**Steps**
  n         Next step (stops at the last)
  p         Previous step (stops at the first)
  r         Back to step 1

**Scenarios**
  s / S     Next / previous scenario

**Window**
  Tab       Leave for another tab
  m         Minimize to taskbar
  Esc       Back`

const contextHelpNotFound = `## Page Not Found

The location does not match a catalog page.

  Esc       Back
  q         Quit`

const contextHelpGeneric = `## Keys

  ?         Toggle this help
  Esc       Back
  q         Quit`
