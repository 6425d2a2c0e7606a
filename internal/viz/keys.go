package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Play    key.Binding
	Step    key.Binding
	Skip    key.Binding
	Reset   key.Binding
	New     key.Binding
	Algo    key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Larger  key.Binding
	Smaller key.Binding
	Theme   key.Binding
	Compact key.Binding
	Record  key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Play: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "play/pause"),
	),
	Step: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "step"),
	),
	Skip: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "skip 10"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new array"),
	),
	Algo: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-5", "algorithm"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Larger: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "more bars"),
	),
	Smaller: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "fewer bars"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Compact: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "braille view"),
	),
	Record: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "record gif"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "menu"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Step, k.Reset, k.New, k.Algo, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Step, k.Skip, k.Reset},
		{k.New, k.Algo, k.Larger, k.Smaller},
		{k.Faster, k.Slower, k.Theme, k.Compact},
		{k.Record, k.Help, k.Back, k.Quit},
	}
}
