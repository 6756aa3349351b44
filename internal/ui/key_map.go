package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings the model matches itself; list navigation and filtering stay with bubbles/list.
type keyMap struct {
	collect   key.Binding
	back      key.Binding
	recollect key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		collect:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "collect tracks")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		recollect: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recollect")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpFor returns the bindings shown under view.
func (k keyMap) helpFor(view ViewState) []key.Binding {
	switch view {
	case CollectingView:
		return []key.Binding{k.back, k.quit}
	case TrackListView:
		return []key.Binding{k.back, k.recollect, k.quit}
	default:
		return []key.Binding{k.collect, k.quit}
	}
}
