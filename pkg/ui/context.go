package ui

import "github.com/charmbracelet/bubbles/list"

// Context represents the current UI context for context-sensitive help
type Context string

const (
	// Overlays (highest priority)
	ContextHelp Context = "help"

	// Screens
	ContextCatalog   Context = "catalog"
	ContextFilter    Context = "filter"
	ContextPage      Context = "page"
	ContextScenarios Context = "scenarios"
	ContextNotFound  Context = "not-found"
)

// CurrentContext returns the current UI context identifier.
// Priority order: overlays → screens → default
func (m Model) CurrentContext() Context {
	if m.showHelp {
		return ContextHelp
	}
	return m.screenContext()
}

func (m Model) screenContext() Context {
	switch m.screen {
	case screenPage:
		if m.window != nil && m.window.onScenarios() {
			return ContextScenarios
		}
		return ContextPage
	case screenNotFound:
		return ContextNotFound
	}
	if m.list.FilterState() == list.Filtering {
		return ContextFilter
	}
	return ContextCatalog
}
