package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	dismiss   key.Binding
	buildInfo key.Binding
	quit      key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	dismiss:   key.NewBinding(key.WithKeys("enter", "esc")),
	buildInfo: key.NewBinding(key.WithKeys("v")),
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
