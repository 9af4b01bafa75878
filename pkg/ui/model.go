package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/algodocs/pkg/catalog"
	"github.com/vanderheijden86/algodocs/pkg/debug"
	"github.com/vanderheijden86/algodocs/pkg/location"
	"github.com/vanderheijden86/algodocs/pkg/logging"
	"github.com/vanderheijden86/algodocs/pkg/metrics"
	"github.com/vanderheijden86/algodocs/pkg/nav"
	"github.com/vanderheijden86/algodocs/pkg/registry"
	"github.com/vanderheijden86/algodocs/pkg/watcher"
)

// AppTitle is the terminal title outside page windows.
const AppTitle = "algodocs"

// statusDuration is how long a status line message stays visible.
const statusDuration = 4 * time.Second

// chrome rows around the body: location bar, status line, taskbar, key help
const chromeRows = 4

// windowChromeRows are the title and tab bars of a page window
const windowChromeRows = 2

type screen int

const (
	screenCatalog screen = iota
	screenPage
	screenNotFound
)

// WindowsChangedMsg is sent when another process rewrites the taskbar slot.
// It carries the slot as the watcher read it.
type WindowsChangedMsg struct {
	Change watcher.Change
}

// statusTimeoutMsg clears the status line unless a newer message replaced it.
type statusTimeoutMsg struct{ seq int }

// WatchSlotCmd returns a command that waits for the slot to change and sends WindowsChangedMsg
func WatchSlotCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		return WindowsChangedMsg{Change: <-w.Changed()}
	}
}

// Options wires the desktop to its collaborators.
type Options struct {
	Catalog *catalog.Catalog
	// Registry backs the taskbar and is required.
	Registry *registry.Registry
	// Start is the first history entry. The zero value is the catalog.
	Start location.Location
	Theme Theme
	// Watcher, when set, refreshes the taskbar on external writes.
	Watcher   *watcher.Watcher
	Favorites map[int]string
	// CopyToClipboard defaults to the system clipboard.
	CopyToClipboard func(string) error
	Logger          *slog.Logger
}

// Model is the desktop: a catalog launcher, at most one open page window,
// and the taskbar of minimized windows.
type Model struct {
	catalog   *catalog.Catalog
	registry  *registry.Registry
	history   *nav.History
	bridge    *nav.Bridge
	watcher   *watcher.Watcher
	favorites map[int]string
	copy      func(string) error
	log       *slog.Logger

	theme Theme
	keys  keyMap
	help  help.Model
	md    *MarkdownRenderer

	screen  screen
	list    list.Model
	window  *PageWindow
	taskbar Taskbar

	width         int
	height        int
	showHelp      bool
	statusMsg     string
	statusIsError bool
	statusSeq     int
	lastTitle     string
}

// NewModel creates the desktop positioned at opts.Start.
func NewModel(opts Options) Model {
	if opts.Catalog == nil {
		opts.Catalog = catalog.New()
	}
	if opts.Theme.Renderer == nil {
		opts.Theme = DefaultTheme(lipgloss.DefaultRenderer())
	}
	if opts.CopyToClipboard == nil {
		opts.CopyToClipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = logging.WithComponent("ui")
	}

	history := nav.NewHistory(opts.Start)
	m := Model{
		catalog:   opts.Catalog,
		registry:  opts.Registry,
		history:   history,
		bridge:    nav.NewBridge(opts.Registry, history, location.New(location.Root), opts.Logger),
		watcher:   opts.Watcher,
		favorites: opts.Favorites,
		copy:      opts.CopyToClipboard,
		log:       opts.Logger,
		theme:     opts.Theme,
		keys:      newKeyMap(),
		help:      help.New(),
		md:        NewMarkdownRendererWithTheme(78, opts.Theme),
		list:      newCatalogList(opts.Catalog, opts.Favorites, opts.Theme),
		taskbar:   NewTaskbar(opts.Theme),
		width:     80,
		height:    24,
	}
	m.reloadTaskbar()
	m.syncScreen()
	m.resize()
	m.lastTitle = m.DocumentTitle()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.lastTitle)}
	if m.watcher != nil {
		cmds = append(cmds, WatchSlotCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case WindowsChangedMsg:
		m.log.Debug("taskbar rewritten elsewhere", "seq", msg.Change.Seq, "status", msg.Change.Decoded.Status.String())
		m.taskbar.SetWindows(msg.Change.Windows())
		if m.watcher != nil {
			cmds = append(cmds, WatchSlotCmd(m.watcher))
		}

	case statusTimeoutMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
			m.statusIsError = false
		}

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)

	default:
		if m.screen == screenCatalog {
			m.list, cmd = m.list.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// The title follows the active tab within the same update.
	if t := m.DocumentTitle(); t != m.lastTitle {
		m.lastTitle = t
		cmds = append(cmds, tea.SetWindowTitle(t))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
			m.showHelp = false
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.screen == screenCatalog && m.list.FilterState() == list.Filtering {
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.TaskLeft):
		m.taskbar.Move(-1)
		return m, nil
	case key.Matches(msg, m.keys.TaskRight):
		m.taskbar.Move(1)
		return m, nil
	case key.Matches(msg, m.keys.TaskOpen):
		return m, m.restoreSelected()
	case key.Matches(msg, m.keys.TaskRemove):
		return m, m.removeSelected()
	case key.Matches(msg, m.keys.CopyLoc):
		return m, m.copyLocation()
	}

	switch m.screen {
	case screenCatalog:
		return m.handleCatalogKeys(msg)
	case screenPage:
		return m.handlePageKeys(msg)
	default:
		if key.Matches(msg, m.keys.Back) {
			m.back()
		}
		return m, nil
	}
}

func (m Model) handleCatalogKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Open):
		if item, ok := m.list.SelectedItem().(PageItem); ok {
			m.open(item.Page.Path)
		}
		return m, nil
	case m.list.FilterState() == list.Unfiltered && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
		n := int(msg.Runes[0] - '0')
		path, ok := m.favorites[n]
		if !ok {
			return m, m.setStatus(fmt.Sprintf("No favorite page on %d", n), false)
		}
		m.open(path)
		return m, nil
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handlePageKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Minimize):
		return m, m.minimize()
	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, nil
	}
	m.window.HandleKey(msg, m.keys)
	return m, nil
}

// open pushes a new history entry for path and shows it.
func (m *Model) open(path string) {
	m.history.Navigate(location.New(path))
	m.syncScreen()
}

// back leaves the current entry. With nothing behind it, a page window
// falls back to the catalog.
func (m *Model) back() {
	switch {
	case m.history.Depth() > 0:
		m.history.Back()
	case !m.history.Current().IsRoot():
		m.history.Navigate(location.New(location.Root))
	default:
		return
	}
	m.syncScreen()
}

func (m *Model) minimize() tea.Cmd {
	if m.window == nil {
		return nil
	}
	page := m.window.Page()
	err := m.bridge.MinimizeAndClose(page.Path, page.Title, m.history.Current().String())
	m.reloadTaskbar()
	m.syncScreen()
	if err != nil {
		return m.setStatus("Taskbar not saved", true)
	}
	return m.setStatus(fmt.Sprintf("Minimized %s", page.Title), false)
}

func (m *Model) restoreSelected() tea.Cmd {
	d, ok := m.taskbar.Selected()
	if !ok {
		return nil
	}
	if _, ok := m.bridge.Restore(d.ID); !ok {
		m.reloadTaskbar()
		return m.setStatus(fmt.Sprintf("%s is no longer on the taskbar", windowLabel(d)), true)
	}
	m.reloadTaskbar()
	m.syncScreen()
	return nil
}

func (m *Model) removeSelected() tea.Cmd {
	d, ok := m.taskbar.Selected()
	if !ok {
		return nil
	}
	err := m.registry.Remove(d.ID)
	m.reloadTaskbar()
	if err != nil {
		return m.setStatus("Taskbar not saved", true)
	}
	return m.setStatus(fmt.Sprintf("Removed %s", windowLabel(d)), false)
}

func (m *Model) copyLocation() tea.Cmd {
	loc := m.history.Current().String()
	if err := m.copy(loc); err != nil {
		m.log.Debug("clipboard copy failed", "err", err)
		return m.setStatus("Clipboard unavailable", true)
	}
	return m.setStatus("Copied "+loc, false)
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.statusMsg = msg
	m.statusIsError = isErr
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusTimeoutMsg{seq: seq}
	})
}

func (m *Model) reloadTaskbar() {
	if m.registry == nil {
		return
	}
	m.taskbar.SetWindows(m.registry.List())
}

// syncScreen rebuilds the screen for the current history entry. Page
// windows are recreated, so their tab comes from the entry's query.
func (m *Model) syncScreen() {
	defer metrics.Timer(metrics.PageOpen)()
	cur := m.history.Current()
	debug.Log("show %s (depth %d)", cur, m.history.Depth())

	m.window = nil
	if cur.IsRoot() {
		m.screen = screenCatalog
		return
	}
	page, ok := m.catalog.Get(cur.PathOrRoot())
	if !ok {
		m.screen = screenNotFound
		return
	}
	w, err := NewPageWindow(page, cur, m.history, m.theme, m.md)
	if err != nil {
		m.log.Warn("opening page failed", "path", page.Path, "err", err)
		m.screen = screenNotFound
		return
	}
	w.SetSize(m.width, m.bodyHeight()-windowChromeRows)
	m.window = w
	m.screen = screenPage
}

func (m Model) bodyHeight() int {
	h := m.height - chromeRows
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) resize() {
	m.list.SetSize(m.width, m.bodyHeight())
	m.help.Width = m.width
	if m.window != nil {
		m.window.SetSize(m.width, m.bodyHeight()-windowChromeRows)
	}
}

// DocumentTitle is the terminal window title for the current screen.
func (m Model) DocumentTitle() string {
	switch m.screen {
	case screenPage:
		return m.window.Title()
	case screenNotFound:
		return "Not Found"
	default:
		return AppTitle
	}
}

// Location returns the current history entry.
func (m Model) Location() location.Location {
	return m.history.Current()
}

// History exposes the session history.
func (m Model) History() *nav.History {
	return m.history
}

// Window returns the open page window, or nil on other screens.
func (m Model) Window() *PageWindow {
	return m.window
}

// Taskbar returns the taskbar state.
func (m Model) Taskbar() Taskbar {
	return m.taskbar
}

// Status returns the status line and whether it reports a failure.
func (m Model) Status() (string, bool) {
	return m.statusMsg, m.statusIsError
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()
	if m.showHelp {
		return RenderContextHelp(m.screenContext(), m.theme, m.width, m.height)
	}

	t := m.theme
	locLine := t.LocationBar.Width(m.width).MaxWidth(m.width).Render(truncate("⌂ "+m.history.Current().String(), max(m.width-2, 1)))

	var body string
	var keys help.KeyMap
	switch m.screen {
	case screenPage:
		body = m.window.View()
		keys = pageHelp{k: m.keys, scenarios: m.window.onScenarios()}
	case screenNotFound:
		body = m.renderNotFound()
		keys = catalogHelp{k: m.keys}
	default:
		body = m.list.View()
		keys = catalogHelp{k: m.keys}
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)

	status := ""
	if m.statusMsg != "" {
		if m.statusIsError {
			status = t.StatusError.Render(m.statusMsg)
		} else {
			status = t.StatusOK.Render(m.statusMsg)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		locLine,
		body,
		status,
		m.taskbar.View(m.width),
		m.help.View(keys),
	)
}

func (m Model) renderNotFound() string {
	t := m.theme
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Header.Render("Page not found"),
		"",
		t.Base.Render("Nothing in the catalog lives at "+m.history.Current().PathOrRoot()+"."),
		t.MutedText.Render("Press esc to go back."),
	)
}
