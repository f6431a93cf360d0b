package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// BattleKeyMap defines the key bindings of the battle screen.
type BattleKeyMap struct {
	Faster   key.Binding
	Slower   key.Binding
	Quality  key.Binding
	TeamMode key.Binding
	NewSeed  key.Binding
	Restart  key.Binding
	Stop     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BattleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Faster, k.Slower, k.Restart, k.Stop, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BattleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Faster, k.Slower, k.Quality},
		{k.TeamMode, k.NewSeed, k.Restart},
		{k.Stop, k.Help, k.Quit},
	}
}

// DefaultBattleKeyMap returns default key bindings.
func DefaultBattleKeyMap() BattleKeyMap {
	return BattleKeyMap{
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Quality: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "cycle quality"),
		),
		TeamMode: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "team mode"),
		),
		NewSeed: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new seed"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}
