package tui

import "github.com/charmbracelet/bubbles/key"

type typingKeyMap struct {
	Pause   key.Binding
	Restart key.Binding
	Submit  key.Binding
	Quit    key.Binding
}

func newTypingKeyMap() typingKeyMap {
	return typingKeyMap{
		Pause:   key.NewBinding(key.WithKeys("esc", "ctrl+p"), key.WithHelp("esc", "pause")),
		Restart: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "new passage")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "finish")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k typingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Restart, k.Submit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k typingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type quizKeyMap struct {
	Choose key.Binding
	Skip   key.Binding
	Finish key.Binding
	Quit   key.Binding
}

func newQuizKeyMap() quizKeyMap {
	return quizKeyMap{
		Choose: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "answer")),
		Skip:   key.NewBinding(key.WithKeys("s", "right"), key.WithHelp("s", "skip")),
		Finish: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "finish")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k quizKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Skip, k.Finish, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k quizKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
