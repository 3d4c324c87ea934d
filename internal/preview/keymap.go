package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the page navigator.
type KeyMap struct {
	// Next shows the following page.
	Next key.Binding

	// Prev shows the previous page.
	Prev key.Binding

	// First jumps to page one.
	First key.Binding

	// Last jumps to the final page.
	Last key.Binding

	// Up scrolls the current page up.
	Up key.Binding

	// Down scrolls the current page down.
	Down key.Binding

	// Quit closes the preview.
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n", " ", "pgdown"),
			key.WithHelp("→/n", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p", "pgup"),
			key.WithHelp("←/p", "previous page"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Quit}
}
