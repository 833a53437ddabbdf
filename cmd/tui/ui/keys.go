package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add      key.Binding
	Remove   key.Binding
	Delay    key.Binding
	Up       key.Binding
	Down     key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Save     key.Binding
	Delete   key.Binding
	Rename   key.Binding
	Load     key.Binding
	Toggle   key.Binding
	Run      key.Binding
	Switch   key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
		Remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove item")),
		Delay:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit delay")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MoveUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "move up")),
		MoveDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "move down")),
		Save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Delete:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete record")),
		Rename:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename record")),
		Load:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "load record")),
		Toggle:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "close after run")),
		Run:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "run")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Save, k.Load, k.Run, k.Switch, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Remove, k.Delay, k.MoveUp, k.MoveDown},
		{k.Save, k.Delete, k.Rename, k.Load},
		{k.Toggle, k.Run, k.Switch, k.Up, k.Down, k.Quit},
	}
}
