package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Run  key.Binding
	Help key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Run: key.NewBinding(
		key.WithKeys("enter", " ", "r"),
		key.WithHelp("enter/r", "run"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// shortHelp renders the one-line key hint shown in the header.
func (k keyMap) shortHelp() string {
	bindings := []key.Binding{k.Run, k.Help, k.Quit}
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
