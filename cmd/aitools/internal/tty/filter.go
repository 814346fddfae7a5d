// Package tty keeps stale terminal replies out of the shell's input box.
package tty

import tea "github.com/charmbracelet/bubbletea"

// NewStaleEscapeFilter returns a tea.WithFilter callback that drops key
// messages until isInputEnabled reports true for the current model. Late
// terminal replies (OSC 11 background colour, cursor position reports)
// arrive as key runes and would otherwise land in the textarea.
// Ctrl+C always passes so the user can exit.
func NewStaleEscapeFilter(isInputEnabled func(tea.Model) bool) func(tea.Model, tea.Msg) tea.Msg {
	return func(m tea.Model, msg tea.Msg) tea.Msg {
		if isInputEnabled(m) {
			return msg
		}

		if key, ok := msg.(tea.KeyMsg); ok {
			if key.Type == tea.KeyCtrlC {
				return msg
			}
			return nil
		}

		return msg
	}
}
