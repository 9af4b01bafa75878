package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Open       key.Binding
	Back       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	StepFwd    key.Binding
	StepBack   key.Binding
	StepReset  key.Binding
	NextScen   key.Binding
	PrevScen   key.Binding
	Minimize   key.Binding
	CopyLoc    key.Binding
	TaskLeft   key.Binding
	TaskRight  key.Binding
	TaskOpen   key.Binding
	TaskRemove key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "prev tab"),
		),
		StepFwd: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next step"),
		),
		StepBack: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prev step"),
		),
		StepReset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		NextScen: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s/S", "scenario"),
		),
		PrevScen: key.NewBinding(
			key.WithKeys("S"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "minimize"),
		),
		CopyLoc: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy location"),
		),
		TaskLeft: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[/]", "taskbar"),
		),
		TaskRight: key.NewBinding(
			key.WithKeys("]"),
		),
		TaskOpen: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "restore"),
		),
		TaskRemove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
		),
	}
}

// catalogHelp adapts the key map to help.KeyMap on the catalog screen.
type catalogHelp struct{ k keyMap }

func (h catalogHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Open, h.k.TaskLeft, h.k.TaskOpen, h.k.TaskRemove, h.k.Help, h.k.Quit}
}

func (h catalogHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// pageHelp adapts the key map to help.KeyMap inside a page window.
type pageHelp struct {
	k         keyMap
	scenarios bool
}

func (h pageHelp) ShortHelp() []key.Binding {
	if h.scenarios {
		return []key.Binding{h.k.NextTab, h.k.StepFwd, h.k.StepBack, h.k.StepReset, h.k.NextScen, h.k.Minimize, h.k.Back, h.k.Help}
	}
	return []key.Binding{h.k.NextTab, h.k.PrevTab, h.k.Minimize, h.k.CopyLoc, h.k.Back, h.k.Help, h.k.Quit}
}

func (h pageHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.NextTab, h.k.PrevTab},
		{h.k.StepFwd, h.k.StepBack, h.k.StepReset, h.k.NextScen},
		{h.k.Minimize, h.k.CopyLoc, h.k.Back},
		{h.k.TaskLeft, h.k.TaskOpen, h.k.TaskRemove},
		{h.k.Help, h.k.Quit},
	}
}
