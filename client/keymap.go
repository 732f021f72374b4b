package client

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePlay key.Binding
	skip       key.Binding
	postpone   key.Binding
	reset      key.Binding
	detach     key.Binding
	quit       key.Binding
}

var defaultKeymap = keymap{
	togglePlay: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause/resume"),
	),
	skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip"),
	),
	postpone: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "postpone"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	detach: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "detach"),
	),
	quit: key.NewBinding(
		key.WithKeys("Q"),
		key.WithHelp("Q", "stop server"),
	),
}
