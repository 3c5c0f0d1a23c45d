package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevPage   key.Binding
	NextPage   key.Binding
	FirstPage  key.Binding
	LastPage   key.Binding
	Rows       key.Binding
	RowsDown   key.Binding
	UpDown     key.Binding
	Toggle     key.Binding
	Click      key.Binding
	TogglePage key.Binding
	Clear      key.Binding
	RowClick   key.Binding
	SelectN    key.Binding
	Find       key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		FirstPage:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "first page")),
		LastPage:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last page")),
		Rows:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		RowsDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
		UpDown:     key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "move")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle row")),
		Click:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle row")),
		TogglePage: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle page")),
		Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		RowClick:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "row-click mode")),
		SelectN:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "select first N")),
		Find:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find title")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save selection")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.Toggle, k.SelectN, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.Rows, k.RowsDown},
		{k.UpDown, k.Toggle, k.Click, k.TogglePage, k.Clear, k.RowClick},
		{k.SelectN, k.Find, k.Save, k.Help, k.Quit},
	}
}

// promptKeyMap is shown while the select-first-N or find prompt is open.
type promptKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func newPromptKeyMap() promptKeyMap {
	return promptKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k promptKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k promptKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Cancel}}
}
