package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Select    key.Binding
	Open      key.Binding
	Back      key.Binding
	Menu      key.Binding
	NewHabit  key.Binding
	NewFolder key.Binding
	Done      key.Binding
	Filter    key.Binding
	View      key.Binding
	Refresh   key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:      key.NewBinding(key.WithKeys("backspace", "-"), key.WithHelp("bksp", "parent folder")),
		Menu:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		NewHabit:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new habit")),
		NewFolder: key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new folder")),
		Done:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "mark done")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		View:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Select, k.Menu, k.Done, k.Filter, k.View, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Back},
		{k.Select, k.Open, k.Menu, k.Done},
		{k.NewHabit, k.NewFolder, k.Filter, k.View, k.Refresh, k.Quit},
	}
}
