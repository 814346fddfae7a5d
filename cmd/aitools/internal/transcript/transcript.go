// Package transcript holds the shell's conversation log, the entry cursor
// and the set of entries selected for summarizing.
package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/germanamz/aitools/cmd/aitools/internal/format"
	"github.com/germanamz/aitools/cmd/aitools/internal/styles"
)

// Label is the role label shown above an entry.
type Label string

const (
	LabelUser      Label = "User"
	LabelAssistant Label = "Assistant"
	LabelSummary   Label = "Assistant (Summary)"
	LabelError     Label = "Error"
	LabelNotice    Label = "Notice"
)

// Entry is one transcript item. IDs are stable so a selection survives
// appends and cursor moves.
type Entry struct {
	ID    uuid.UUID
	Label Label
	Text  string
}

// Model is the transcript plus its scrolling viewport.
type Model struct {
	entries  []Entry
	selected map[uuid.UUID]struct{}
	cursor   int // -1 follows the newest entry
	viewport viewport.Model
	width    int
}

// New returns an empty transcript.
func New() Model {
	return Model{
		selected: make(map[uuid.UUID]struct{}),
		cursor:   -1,
		viewport: viewport.New(80, 20),
	}
}

// Append adds an entry and returns its ID. The cursor moves to the new entry
// unless the user is navigating older ones.
func (m *Model) Append(label Label, text string) uuid.UUID {
	e := Entry{ID: uuid.New(), Label: label, Text: text}
	m.entries = append(m.entries, e)
	m.refresh()
	return e.ID
}

// Entries returns the entries in transcript order.
func (m Model) Entries() []Entry { return m.entries }

// Len returns the number of entries.
func (m Model) Len() int { return len(m.entries) }

// Cursor returns the index of the focused entry, or -1 when empty.
func (m Model) Cursor() int {
	if len(m.entries) == 0 {
		return -1
	}
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return len(m.entries) - 1
	}
	return m.cursor
}

// MoveCursor shifts the focus by delta entries, clamped to the transcript.
func (m *Model) MoveCursor(delta int) {
	if len(m.entries) == 0 {
		return
	}
	c := min(max(m.Cursor()+delta, 0), len(m.entries)-1)
	if c == len(m.entries)-1 {
		c = -1
	}
	m.cursor = c
	m.refresh()
}

// Toggle flips the selection of the entry with id. Unknown IDs are ignored.
func (m *Model) Toggle(id uuid.UUID) {
	if _, ok := m.selected[id]; ok {
		delete(m.selected, id)
	} else if m.index(id) >= 0 {
		m.selected[id] = struct{}{}
	}
	m.refresh()
}

// ToggleCursor flips the selection of the focused entry.
func (m *Model) ToggleCursor() {
	if c := m.Cursor(); c >= 0 {
		m.Toggle(m.entries[c].ID)
	}
}

// IsSelected reports whether the entry with id is selected.
func (m Model) IsSelected(id uuid.UUID) bool {
	_, ok := m.selected[id]
	return ok
}

// SelectedCount returns how many entries are selected.
func (m Model) SelectedCount() int { return len(m.selected) }

// SelectedText joins the text of the selected entries in transcript order,
// separated by blank lines. It is empty when nothing is selected.
func (m Model) SelectedText() string {
	var parts []string
	for _, e := range m.entries {
		if _, ok := m.selected[e.ID]; ok {
			parts = append(parts, e.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ClearSelection deselects everything.
func (m *Model) ClearSelection() {
	clear(m.selected)
	m.refresh()
}

// Clear removes every entry and the selection.
func (m *Model) Clear() {
	m.entries = nil
	clear(m.selected)
	m.cursor = -1
	m.refresh()
}

// SetSize resizes the viewport.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.viewport.Width = width
	m.viewport.Height = max(height, 1)
	m.refresh()
}

// ScrollUp scrolls the viewport half a page up.
func (m *Model) ScrollUp() {
	m.viewport.SetYOffset(m.viewport.YOffset - max(m.viewport.Height/2, 1))
}

// ScrollDown scrolls the viewport half a page down.
func (m *Model) ScrollDown() {
	m.viewport.SetYOffset(m.viewport.YOffset + max(m.viewport.Height/2, 1))
}

// View renders the visible part of the transcript.
func (m Model) View() string { return m.viewport.View() }

func (m Model) index(id uuid.UUID) int {
	for i, e := range m.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.Render())
	if m.cursor < 0 {
		m.viewport.GotoBottom()
	}
}

// Render returns the full transcript as terminal text.
func (m Model) Render() string {
	cursor := m.Cursor()
	blocks := make([]string, len(m.entries))
	for i, e := range m.entries {
		blocks[i] = m.renderEntry(e, i == cursor)
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderEntry(e Entry, focused bool) string {
	marker := "  "
	if focused {
		marker = styles.CursorStyle.Render("> ")
	}

	header := marker + headerStyle(e.Label).Render(string(e.Label))
	if m.IsSelected(e.ID) {
		header += styles.DimStyle.Render("  [selected]")
	}

	body := e.Text
	switch e.Label {
	case LabelAssistant, LabelSummary:
		body = format.RenderMarkdown(body)
	case LabelError:
		body = styles.ErrorPrefixStyle.UnsetBold().Render(body)
	case LabelNotice:
		body = styles.DimStyle.Render(body)
	}

	box := styles.EntryStyle
	if m.IsSelected(e.ID) {
		box = styles.SelectedEntryStyle
	}
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}

	return header + "\n  " + strings.ReplaceAll(box.Render(body), "\n", "\n  ")
}

func headerStyle(l Label) lipgloss.Style {
	switch l {
	case LabelUser:
		return styles.UserPrefixStyle
	case LabelSummary:
		return styles.SummaryPrefixStyle
	case LabelError:
		return styles.ErrorPrefixStyle
	case LabelNotice:
		return styles.DimStyle
	default:
		return styles.AssistantPrefixStyle
	}
}
