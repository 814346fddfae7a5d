package input

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/germanamz/aitools/cmd/aitools/internal/msgs"
	"github.com/germanamz/aitools/cmd/aitools/internal/styles"
)

const (
	InputMinHeight = 1
	InputMaxHeight = 5
)

// InputModel wraps a textarea in a rounded border box.
type InputModel struct {
	textarea  textarea.Model
	CmdPicker CmdPickerModel
	Enabled   bool
	width     int
}

// New creates a new InputModel. It stays disabled until Enable is called.
func New() InputModel {
	ta := textarea.New()
	ta.Placeholder = "Type a message... (/ for commands, ctrl+s to select)"
	ta.ShowLineNumbers = false
	ta.SetHeight(InputMinHeight)
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = lipgloss.NewStyle()
	ta.BlurredStyle.Prompt = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

	return InputModel{textarea: ta}
}

func (m InputModel) Update(msg tea.Msg) (InputModel, tea.Cmd) {
	if !m.Enabled {
		return m, nil
	}

	keyMsg, isKey := msg.(tea.KeyMsg)

	if isKey && m.CmdPicker.Active {
		consumed, sel := m.CmdPicker.HandleKey(keyMsg)
		if sel != "" {
			m.textarea.SetValue(sel + " ")
			return m, nil
		}
		if consumed {
			return m, nil
		}
	}

	if isKey && keyMsg.Type == tea.KeyEnter && !keyMsg.Alt {
		text := strings.TrimSpace(m.textarea.Value())
		m.CmdPicker.Dismiss()
		if text == "" {
			return m, nil
		}
		m.textarea.Reset()
		m.textarea.SetHeight(InputMinHeight)
		return m, func() tea.Msg { return msgs.InputSubmitMsg{Text: text} }
	}

	// Pre-set max height so the textarea has room and won't scroll its
	// viewport during Update. After processing, shrink to the actual content.
	m.textarea.SetHeight(InputMaxHeight)

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)

	h := min(max(m.visualLineCount(), InputMinHeight), InputMaxHeight)
	m.textarea.SetHeight(h)

	if isKey {
		m.updatePicker()
	}

	return m, cmd
}

// updatePicker opens the command picker while the input is a bare
// "/command" prefix and closes it otherwise.
func (m *InputModel) updatePicker() {
	val := m.textarea.Value()
	if !strings.HasPrefix(val, "/") || strings.ContainsAny(val, " \n") {
		m.CmdPicker.Dismiss()
		return
	}

	if !m.CmdPicker.Active {
		m.CmdPicker.Activate()
	}
	m.CmdPicker.SetQuery(strings.TrimPrefix(val, "/"))
}

// Value returns the current text.
func (m InputModel) Value() string { return m.textarea.Value() }

// SetValue replaces the current text.
func (m *InputModel) SetValue(s string) { m.textarea.SetValue(s) }

func (m InputModel) View() string {
	var parts []string

	if m.CmdPicker.Active {
		m.CmdPicker.Width = m.width
		parts = append(parts, m.CmdPicker.View())
	}

	border := styles.FocusedBorder
	if !m.Enabled {
		border = styles.DisabledBorder
	}
	innerWidth := max(m.width-4, 10)
	m.textarea.SetWidth(innerWidth)
	parts = append(parts, border.Width(innerWidth).Render(m.textarea.View()))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetWidth sets the outer width of the box.
func (m *InputModel) SetWidth(w int) {
	m.width = w
	m.textarea.SetWidth(max(w-4, 10))
}

// Enable focuses the textarea and starts accepting keys.
func (m *InputModel) Enable() tea.Cmd {
	m.Enabled = true
	return m.textarea.Focus()
}

// Reset clears the text and closes the picker.
func (m *InputModel) Reset() {
	m.textarea.Reset()
	m.textarea.SetHeight(InputMinHeight)
	m.CmdPicker.Dismiss()
}

// ViewHeight returns the height of the input area including the border and
// an open picker.
func (m InputModel) ViewHeight() int {
	h := min(max(m.visualLineCount(), InputMinHeight), InputMaxHeight) + 2
	if m.CmdPicker.Active {
		h += lipgloss.Height(m.CmdPicker.View())
	}
	return h
}

// visualLineCount returns the number of visual lines the current text
// occupies, counting hard newlines and soft wraps at the textarea width.
func (m InputModel) visualLineCount() int {
	text := m.textarea.Value()
	if text == "" {
		return 1
	}

	width := max(m.textarea.Width(), 1)

	total := 0
	for line := range strings.SplitSeq(text, "\n") {
		total += wordWrapLineCount(line, width)
	}

	return total
}

// wordWrapLineCount returns the number of visual lines a single hard line
// occupies when word-wrapped at width, matching the textarea's own wrapping.
func wordWrapLineCount(text string, width int) int {
	runes := []rune(text)
	if len(runes) == 0 {
		return 1
	}

	lines := 1
	lineWidth := 0
	var wordRunes []rune
	spaces := 0

	for _, r := range runes {
		if unicode.IsSpace(r) {
			spaces++
		} else {
			wordRunes = append(wordRunes, r)
		}

		if spaces > 0 {
			wordWidth := runewidth.StringWidth(string(wordRunes))
			if lineWidth+wordWidth+spaces > width {
				lines++
				lineWidth = wordWidth + spaces
			} else {
				lineWidth += wordWidth + spaces
			}
			spaces = 0
			wordRunes = wordRunes[:0]
		} else {
			lastCharLen := runewidth.RuneWidth(wordRunes[len(wordRunes)-1])
			wordWidth := runewidth.StringWidth(string(wordRunes))
			if wordWidth+lastCharLen > width {
				if lineWidth > 0 {
					lines++
				}
				lineWidth = wordWidth
				wordRunes = wordRunes[:0]
			}
		}
	}

	wordWidth := runewidth.StringWidth(string(wordRunes))
	if lineWidth+wordWidth+spaces >= width {
		lines++
	}

	return lines
}
