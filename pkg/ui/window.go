package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/algodocs/pkg/catalog"
	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/nav"
	"github.com/vanderheijden86/algodocs/pkg/scenario"
	"github.com/vanderheijden86/algodocs/pkg/tabs"
)

// historySink projects a window's active tab into the session history. It
// replaces the current entry in place and remembers the title for the
// terminal window.
type historySink struct {
	history *nav.History
	title   string
}

func (s *historySink) Project(p tabs.Projection) {
	s.history.Replace(p.Location)
	s.title = p.Title
}

// PageWindow is one open reference page: its tab router, its scenario
// stepper and the scrollable body. Both state machines live and die with
// the window.
type PageWindow struct {
	page     catalog.Page
	router   *tabs.Router
	stepper  *scenario.Stepper
	sink     *historySink
	viewport viewport.Model
	md       *MarkdownRenderer
	theme    Theme
	width    int
	height   int
}

// NewPageWindow opens page at loc, the current history entry. The router
// reads loc once and then owns the tab query key.
func NewPageWindow(page catalog.Page, loc location.Location, history *nav.History, theme Theme, md *MarkdownRenderer) (*PageWindow, error) {
	set, err := page.TabSet()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", page.Path, err)
	}
	w := &PageWindow{
		page:     page,
		stepper:  scenario.New(page.Scenarios),
		sink:     &historySink{history: history},
		viewport: viewport.New(80, 10),
		md:       md,
		theme:    theme,
		width:    80,
		height:   10,
	}
	w.router = tabs.NewRouter(page.RouterPage(), set, loc, w.sink)
	w.refresh()
	return w, nil
}

// Title is the document title, "<Page Title> (<Tab Label>)".
func (w *PageWindow) Title() string { return w.sink.title }

func (w *PageWindow) Page() catalog.Page { return w.page }

func (w *PageWindow) Router() *tabs.Router { return w.router }

func (w *PageWindow) Stepper() *scenario.Stepper { return w.stepper }

// Section returns the active section.
func (w *PageWindow) Section() catalog.Section {
	s, _ := w.page.Section(w.router.Active())
	return s
}

func (w *PageWindow) onScenarios() bool {
	return w.Section().Kind == catalog.KindScenarios
}

// SetSize sets the body area, excluding the title and tab bars.
func (w *PageWindow) SetSize(width, height int) {
	if height < 3 {
		height = 3
	}
	w.width, w.height = width, height
	w.viewport.Width = width
	w.viewport.Height = height
	w.md.SetWidth(width - 2)
	w.refresh()
}

// HandleKey applies a key to the window and reports whether it was used.
func (w *PageWindow) HandleKey(msg tea.KeyMsg, keys keyMap) bool {
	switch {
	case key.Matches(msg, keys.NextTab):
		w.router.Cycle(1)
	case key.Matches(msg, keys.PrevTab):
		w.router.Cycle(-1)
	case len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
		i := int(msg.Runes[0] - '1')
		ts := w.router.Tabs()
		if i >= len(ts) {
			return false
		}
		w.router.SetActive(ts[i].ID)
	case w.onScenarios() && key.Matches(msg, keys.StepFwd):
		w.stepper.Forward()
	case w.onScenarios() && key.Matches(msg, keys.StepBack):
		w.stepper.Backward()
	case w.onScenarios() && key.Matches(msg, keys.StepReset):
		w.stepper.Reset()
	case w.onScenarios() && key.Matches(msg, keys.NextScen):
		w.stepper.Next()
	case w.onScenarios() && key.Matches(msg, keys.PrevScen):
		w.stepper.Prev()
	case key.Matches(msg, keys.ScrollUp), key.Matches(msg, keys.ScrollDown):
		w.viewport, _ = w.viewport.Update(msg)
		return true
	default:
		return false
	}
	w.refresh()
	return true
}

func (w *PageWindow) refresh() {
	s := w.Section()
	var b strings.Builder
	if strings.TrimSpace(s.Body) != "" {
		b.WriteString(w.md.Render(s.Body))
		b.WriteString("\n\n")
	}
	if s.Kind == catalog.KindScenarios {
		b.WriteString(w.renderPlayer())
	}
	w.viewport.SetContent(b.String())
	w.viewport.GotoTop()
}

func (w *PageWindow) renderPlayer() string {
	t := w.theme
	var b strings.Builder

	sc, ok := w.stepper.Scenario()
	if !ok {
		return t.MutedText.Render(scenario.NoStepsPlaceholder)
	}

	scenarios := w.stepper.Scenarios()
	var names []string
	for _, other := range scenarios {
		if other.ID == sc.ID {
			names = append(names, t.TabActive.Render(other.Title))
		} else {
			names = append(names, t.TabInactive.Render(other.Title))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, names...))
	b.WriteString("\n")
	if sc.Summary != "" {
		b.WriteString(t.MutedText.Render(sc.Summary))
		b.WriteString("\n")
	}
	b.WriteString(RenderDivider(t, min(w.width-2, 60)))
	b.WriteString("\n")

	index, total := w.stepper.Position()
	if total > 0 {
		b.WriteString(t.PrimaryBold.Render(fmt.Sprintf("Step %d/%d", index+1, total)))
		b.WriteString("  ")
		b.WriteString(RenderProgressDots(t, index, total))
		b.WriteString("\n\n")
	}
	body := t.Renderer.NewStyle().Width(max(w.width-4, 20)).PaddingLeft(2)
	b.WriteString(body.Render(w.stepper.Current()))
	b.WriteString("\n\n")

	prev, next := "◀ p prev", "n next ▶"
	if w.stepper.AtStart() {
		prev = t.MutedText.Render(prev)
	}
	if w.stepper.AtEnd() {
		next = t.MutedText.Render(next)
	}
	b.WriteString(prev + "   " + next + "   " + t.MutedText.Render("r reset · s/S scenario"))
	return b.String()
}

// View renders the title bar, tab bar and body.
func (w *PageWindow) View() string {
	t := w.theme
	title := t.TitleBar.Width(w.width).MaxWidth(w.width).Render(truncate(w.Title(), max(w.width-2, 1)))

	var labels []string
	for i, tab := range w.router.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, tab.Label)
		if tab.ID == w.router.Active() {
			labels = append(labels, t.TabActive.Render(label))
		} else {
			labels = append(labels, t.TabInactive.Render(label))
		}
	}
	tabBar := lipgloss.NewStyle().MaxWidth(w.width).Render(strings.Join(labels, t.MutedText.Render("│")))

	return lipgloss.JoinVertical(lipgloss.Left, title, tabBar, w.viewport.View())
}
