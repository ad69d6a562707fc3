package chatui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the chat TUI. Most bindings are
// only active when the results pane has focus; while the input line
// has focus, printable keys go to the text field.
type KeyMap struct {
	// Input line.
	Submit key.Binding

	// Focus switching between the input line and the results pane.
	FocusToggle key.Binding

	// Results pane scrolling.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Card selection within the latest result set.
	NextCard key.Binding
	PrevCard key.Binding

	// Similarity threshold adjustment, one step per press.
	ThresholdUp   key.Binding
	ThresholdDown key.Binding

	// Feedback on the selected card.
	RateUp   key.Binding
	RateDown key.Binding

	// Export the latest result set's URL manifest to a file.
	SaveURLs key.Binding

	// Query history overlay.
	History key.Binding

	// Overlay dismissal / replay.
	Select  key.Binding
	Dismiss key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "send"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	NextCard: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next image"),
	),
	PrevCard: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "prev image"),
	),
	ThresholdUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "raise threshold"),
	),
	ThresholdDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "lower threshold"),
	),
	RateUp: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "rate up"),
	),
	RateDown: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "rate down"),
	),
	SaveURLs: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save urls"),
	),
	History: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "history"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "replay"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}
