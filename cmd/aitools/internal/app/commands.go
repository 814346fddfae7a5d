package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/germanamz/aitools/cmd/aitools/internal/input"
	"github.com/germanamz/aitools/cmd/aitools/internal/transcript"
	"github.com/germanamz/aitools/pkg/assistant"
	"github.com/germanamz/aitools/pkg/providers/provider"
)

func (m Model) runCommand(line string) (Model, tea.Cmd) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/help":
		m.notice(helpText())
	case "/clear":
		m.transcript.Clear()
	case "/deselect":
		m.transcript.ClearSelection()
	case "/summarize":
		return m.summarize(arg)
	case "/model":
		m.setModel(arg)
	case "/provider":
		m.setProvider(arg)
	case "/key":
		m.setKey(arg)
	case "/clearkey":
		p := m.settings.Provider()
		m.settings.ClearAPIKey(p)
		m.client = nil
		if m.save() {
			m.notice(fmt.Sprintf("API key cleared for %s. Provider: %s", p, m.settings.Provider()))
		}
	case "/settings":
		m.notice(m.describeSettings())
	default:
		m.transcript.Append(transcript.LabelError, fmt.Sprintf("unknown command %s (try /help)", name))
	}

	return m, nil
}

func (m *Model) setModel(name string) {
	p := m.settings.Provider()
	if name == "" {
		m.notice(fmt.Sprintf("Model for %s: %s. Options: %s",
			p, m.settings.Model(p), strings.Join(p.ModelOptions(), ", ")))
		return
	}

	m.settings.SetModel(p, name)
	m.client = nil
	if m.save() {
		m.notice(fmt.Sprintf("Model for %s set to %s.", p, name))
	}
}

func (m *Model) setProvider(name string) {
	if name == "" {
		m.notice(fmt.Sprintf("Provider: %s. Options: %s", m.settings.Provider(), kindList()))
		return
	}

	k, err := provider.ParseKind(strings.ToLower(name))
	if err != nil {
		m.transcript.Append(transcript.LabelError, err.Error())
		return
	}

	m.settings.SetProvider(k)
	m.client = nil
	if m.save() {
		m.notice(fmt.Sprintf("Provider: %s (model %s)", k, m.settings.Model(k)))
	}
}

func (m *Model) setKey(key string) {
	p := m.settings.Provider()
	if key == "" {
		m.notice("Usage: /key <api key>")
		return
	}

	m.settings.SetAPIKey(p, key)
	m.client = nil
	if m.save() {
		m.notice(fmt.Sprintf("API key saved for %s.", p))
	}
}

func (m *Model) save() bool {
	if err := m.cfg.Store.Save(m.settings); err != nil {
		m.cfg.Logger.Warn("settings save failed", "error", err)
		m.transcript.Append(transcript.LabelError, fmt.Sprintf("Failed to save settings: %v", err))
		return false
	}
	return true
}

func (m Model) describeSettings() string {
	masked := m.settings.Masked()
	if len(masked) == 0 {
		return "No settings stored. Provider: " + m.settings.Provider().String()
	}

	lines := make([]string, 0, len(masked))
	for _, k := range masked.Keys() {
		lines = append(lines, k+": "+masked[k])
	}
	return strings.Join(lines, "\n")
}

// kindList names the providers compiled into this binary.
func kindList() string {
	kinds := assistant.DefaultRegistry().Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, c := range input.Commands {
		fmt.Fprintf(&sb, "  %-28s %s\n", c.Usage, c.Help)
	}
	sb.WriteString("\nShortcuts:\n" +
		"  Enter                        Send message\n" +
		"  Alt+Enter                    New line\n" +
		"  Alt+Up / Alt+Down            Move between entries\n" +
		"  Ctrl+S                       Select entry for /summarize\n" +
		"  PgUp / PgDown                Scroll\n" +
		"  Ctrl+C                       Exit")
	return sb.String()
}
