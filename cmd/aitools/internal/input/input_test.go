package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/aitools/cmd/aitools/internal/msgs"
)

func TestWordWrapLineCount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{name: "empty", text: "", width: 10, want: 1},
		{name: "short text", text: "hello", width: 10, want: 1},
		{name: "exact width", text: "aaaa bbbbb", width: 10, want: 2},
		{name: "word wrap boundary", text: "aaaa bbbbb ccc", width: 10, want: 2},
		{name: "long word broken across lines", text: "aaaa bbbbbbbbbbb", width: 10, want: 3},
		{name: "single word one over", text: "abcdefghijk", width: 10, want: 2},
		{name: "multiple wraps", text: "aaa bbb ccc ddd eee fff ggg", width: 10, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordWrapLineCount(tt.text, tt.width))
		})
	}
}

func typeText(m InputModel, s string) InputModel {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSubmit(t *testing.T) {
	m := New()
	m.Enable()
	m.SetWidth(80)

	m = typeText(m, "  hello  ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.Equal(t, msgs.InputSubmitMsg{Text: "hello"}, cmd())
	assert.Empty(t, m.Value())
}

func TestSubmit_EmptyIgnored(t *testing.T) {
	m := New()
	m.Enable()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestDisabledIgnoresKeys(t *testing.T) {
	m := typeText(New(), "abc")
	assert.Empty(t, m.Value())
}

func TestCmdPicker(t *testing.T) {
	m := New()
	m.Enable()
	m.SetWidth(80)

	m = typeText(m, "/s")
	require.True(t, m.CmdPicker.Active)
	assert.Equal(t, []string{"/summarize", "/settings"}, m.CmdPicker.Filtered())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, "/settings ", m.Value())
	assert.False(t, m.CmdPicker.Active)
}

func TestCmdPicker_ClosesOnSpace(t *testing.T) {
	m := New()
	m.Enable()

	m = typeText(m, "/model ")
	assert.False(t, m.CmdPicker.Active)
}
