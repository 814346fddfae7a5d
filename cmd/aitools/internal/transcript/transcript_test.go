package transcript

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend(t *testing.T) {
	m := New()

	a := m.Append(LabelUser, "hi")
	b := m.Append(LabelAssistant, "hello")

	require.Equal(t, 2, m.Len())
	assert.NotEqual(t, a, b)
	assert.Equal(t, Entry{ID: b, Label: LabelAssistant, Text: "hello"}, m.Entries()[1])
	assert.Equal(t, 1, m.Cursor())
}

func TestCursor(t *testing.T) {
	m := New()
	assert.Equal(t, -1, m.Cursor())

	m.Append(LabelUser, "one")
	m.Append(LabelUser, "two")
	m.Append(LabelUser, "three")

	m.MoveCursor(-1)
	assert.Equal(t, 1, m.Cursor())

	m.MoveCursor(-10)
	assert.Equal(t, 0, m.Cursor())

	// An explicit cursor stays put while entries arrive.
	m.Append(LabelAssistant, "four")
	assert.Equal(t, 0, m.Cursor())

	// Reaching the end follows new entries again.
	m.MoveCursor(10)
	assert.Equal(t, 3, m.Cursor())
	m.Append(LabelAssistant, "five")
	assert.Equal(t, 4, m.Cursor())
}

func TestToggle(t *testing.T) {
	m := New()
	id := m.Append(LabelUser, "one")

	m.Toggle(id)
	assert.True(t, m.IsSelected(id))
	assert.Equal(t, 1, m.SelectedCount())

	m.Toggle(id)
	assert.False(t, m.IsSelected(id))

	m.Toggle(uuid.New())
	assert.Zero(t, m.SelectedCount())
}

func TestSelectedText_TranscriptOrder(t *testing.T) {
	m := New()
	first := m.Append(LabelUser, "first")
	m.Append(LabelAssistant, "skipped")
	third := m.Append(LabelAssistant, "third")

	// Selection order does not matter.
	m.Toggle(third)
	m.Toggle(first)

	assert.Equal(t, "first\n\nthird", m.SelectedText())
}

func TestSelectedText_Empty(t *testing.T) {
	m := New()
	m.Append(LabelUser, "x")

	assert.Empty(t, m.SelectedText())
}

func TestToggleCursor(t *testing.T) {
	m := New()
	m.ToggleCursor()
	assert.Zero(t, m.SelectedCount())

	a := m.Append(LabelUser, "a")
	m.Append(LabelUser, "b")
	m.MoveCursor(-1)
	m.ToggleCursor()

	assert.True(t, m.IsSelected(a))
}

func TestClear(t *testing.T) {
	m := New()
	id := m.Append(LabelUser, "a")
	m.Toggle(id)

	m.Clear()

	assert.Zero(t, m.Len())
	assert.Zero(t, m.SelectedCount())
	assert.Empty(t, m.SelectedText())
}

func TestClearSelection(t *testing.T) {
	m := New()
	id := m.Append(LabelUser, "a")
	m.Toggle(id)

	m.ClearSelection()

	assert.Equal(t, 1, m.Len())
	assert.False(t, m.IsSelected(id))
}

func TestRender(t *testing.T) {
	m := New()
	m.SetSize(60, 20)
	id := m.Append(LabelUser, "question")
	m.Append(LabelError, "it broke")
	m.Toggle(id)

	out := m.Render()
	assert.Contains(t, out, "User")
	assert.Contains(t, out, "question")
	assert.Contains(t, out, "[selected]")
	assert.Contains(t, out, "Error")
	assert.Contains(t, out, "it broke")
}
