package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/aitools/cmd/aitools/internal/styles"
)

const CmdPickerMaxShow = 5

// Command is a slash command with its one-line help.
type Command struct {
	Name  string
	Usage string
	Help  string
}

// Commands is the static list of supported slash commands.
var Commands = []Command{
	{Name: "/summarize", Usage: "/summarize [text]", Help: "Summarize the selected entries, or the given text"},
	{Name: "/model", Usage: "/model <name>", Help: "Set the model for the current provider"},
	{Name: "/provider", Usage: "/provider <openai|gemini>", Help: "Switch provider"},
	{Name: "/key", Usage: "/key <api key>", Help: "Store the API key for the current provider"},
	{Name: "/clearkey", Usage: "/clearkey", Help: "Forget the current provider's API key"},
	{Name: "/settings", Usage: "/settings", Help: "Show the current settings"},
	{Name: "/deselect", Usage: "/deselect", Help: "Clear the transcript selection"},
	{Name: "/clear", Usage: "/clear", Help: "Clear the transcript"},
	{Name: "/help", Usage: "/help", Help: "Show this help message"},
	{Name: "/quit", Usage: "/quit", Help: "Exit"},
}

// CmdPickerModel displays an autocomplete popup for /-commands.
type CmdPickerModel struct {
	Active   bool
	query    string   // text typed after '/'
	filtered []string // filtered command names
	cursor   int      // highlighted entry index
	Width    int
}

// Activate opens the picker.
func (cp *CmdPickerModel) Activate() {
	cp.Active = true
	cp.query = ""
	cp.cursor = 0
	cp.applyFilter()
}

// Dismiss closes the picker.
func (cp *CmdPickerModel) Dismiss() {
	cp.Active = false
	cp.query = ""
	cp.filtered = nil
	cp.cursor = 0
}

// SetQuery updates the filter query and re-filters.
func (cp *CmdPickerModel) SetQuery(q string) {
	cp.query = q
	cp.cursor = 0
	cp.applyFilter()
}

// Filtered returns the command names matching the current query.
func (cp CmdPickerModel) Filtered() []string { return cp.filtered }

func (cp *CmdPickerModel) selected() string {
	if len(cp.filtered) == 0 {
		return ""
	}
	return cp.filtered[cp.cursor]
}

// HandleKey processes navigation keys while the picker is active.
func (cp *CmdPickerModel) HandleKey(msg tea.KeyMsg) (consumed bool, sel string) {
	switch msg.Type {
	case tea.KeyUp:
		if cp.cursor > 0 {
			cp.cursor--
		}
		return true, ""
	case tea.KeyDown:
		if cp.cursor < len(cp.filtered)-1 {
			cp.cursor++
		}
		return true, ""
	case tea.KeyTab:
		sel := cp.selected()
		cp.Dismiss()
		return true, sel
	case tea.KeyEsc:
		cp.Dismiss()
		return true, ""
	}
	return false, ""
}

// View renders the command picker popup.
func (cp CmdPickerModel) View() string {
	if !cp.Active {
		return ""
	}

	var sb strings.Builder

	if len(cp.filtered) == 0 {
		sb.WriteString(styles.PickerDimStyle.Render("  no matching commands"))
	} else {
		show := min(len(cp.filtered), CmdPickerMaxShow)
		start := 0
		if cp.cursor >= show {
			start = cp.cursor - show + 1
		}
		end := min(start+show, len(cp.filtered))

		for i := start; i < end; i++ {
			line := usage(cp.filtered[i])
			if i == cp.cursor {
				sb.WriteString(styles.PickerCurStyle.Render(line))
			} else {
				sb.WriteString(styles.PickerDimStyle.Render(line))
			}
			if i < end-1 {
				sb.WriteString("\n")
			}
		}
	}

	return styles.PickerBorder.Width(max(cp.Width-4, 20)).Render(sb.String())
}

func (cp *CmdPickerModel) applyFilter() {
	q := strings.ToLower(cp.query)

	cp.filtered = cp.filtered[:0]
	for _, c := range Commands {
		if strings.HasPrefix(strings.TrimPrefix(c.Name, "/"), q) {
			cp.filtered = append(cp.filtered, c.Name)
		}
	}
}

func usage(name string) string {
	for _, c := range Commands {
		if c.Name == name {
			return c.Usage + "  " + c.Help
		}
	}
	return name
}
