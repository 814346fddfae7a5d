// Package app is the root bubbletea model of the interactive shell.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/germanamz/aitools/cmd/aitools/internal/format"
	"github.com/germanamz/aitools/cmd/aitools/internal/input"
	"github.com/germanamz/aitools/cmd/aitools/internal/msgs"
	"github.com/germanamz/aitools/cmd/aitools/internal/styles"
	"github.com/germanamz/aitools/cmd/aitools/internal/transcript"
	"github.com/germanamz/aitools/pkg/assistant"
	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/modeladapter/usage"
	"github.com/germanamz/aitools/pkg/providers/provider"
	"github.com/germanamz/aitools/pkg/settings"
	"github.com/germanamz/aitools/pkg/tokens"
)

// Assistant is the part of *assistant.Client the shell drives.
type Assistant interface {
	Kind() provider.Kind
	Model() string
	Usage() (usage.TokenCount, bool)
	ChatAsync(ctx context.Context, msgs []message.Message, opts ...assistant.CallOption) *assistant.Future[string]
	SummarizeAsync(ctx context.Context, text string) *assistant.Future[string]
}

// Store loads and saves settings.
type Store interface {
	Load() settings.Settings
	Save(settings.Settings) error
}

// ClientFactory builds an Assistant from resolved options.
type ClientFactory func(opts assistant.Options) (Assistant, error)

// NewClient is the default ClientFactory.
func NewClient(opts assistant.Options) (Assistant, error) {
	c, err := assistant.New(opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Config carries the shell's dependencies.
type Config struct {
	Store     Store
	NewClient ClientFactory           // defaults to NewClient
	LookupEnv assistant.LookupEnvFunc // consulted when no key is stored
	Tokens    *tokens.Estimator       // nil falls back to the character heuristic
	Logger    *slog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	ctx        context.Context
	cfg        Config
	settings   settings.Settings
	client     Assistant
	transcript transcript.Model
	inputBox   input.InputModel
	spinner    spinner.Model
	pending    int
	lastTook   time.Duration
	width      int
	height     int
}

// New creates the shell model. Settings are loaded once here and saved after
// every change.
func New(ctx context.Context, cfg Config) Model {
	if cfg.NewClient == nil {
		cfg.NewClient = NewClient
	}
	if cfg.Tokens == nil {
		cfg.Tokens = &tokens.Estimator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.SpinnerStyle

	m := Model{
		ctx:        ctx,
		cfg:        cfg,
		settings:   cfg.Store.Load(),
		transcript: transcript.New(),
		inputBox:   input.New(),
		spinner:    sp,
	}

	if m.settings == nil {
		m.settings = settings.Settings{}
	}

	m.transcript.Append(transcript.LabelNotice, fmt.Sprintf(
		"Welcome to AI Assistant Tools. Provider: %s. Set an API key with /key or `aitools config`; /help lists commands.",
		m.settings.Provider()))

	return m
}

// Transcript exposes the transcript for inspection.
func (m Model) Transcript() transcript.Model { return m.transcript }

// Settings returns the current settings.
func (m Model) Settings() settings.Settings { return m.settings }

// Pending returns the number of requests in flight.
func (m Model) Pending() int { return m.pending }

// InputEnabled reports whether the input box accepts keys yet.
func (m Model) InputEnabled() bool { return m.inputBox.Enabled }

func (m Model) Init() tea.Cmd {
	// Delay focusing the input so that stale terminal escape-sequence
	// responses (e.g. OSC 11 background-color) are drained first.
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return msgs.InitDrainMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		format.InitMarkdownRenderer(m.width - 8)
		m.inputBox.SetWidth(m.width)
		m.syncLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case msgs.InitDrainMsg:
		return m, m.inputBox.Enable()

	case msgs.InputSubmitMsg:
		model, cmd := m.handleSubmit(msg.Text)
		model.syncLayout()
		return model, cmd

	case msgs.ReplyMsg:
		return m.handleReply(msg), nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.inputBox, cmd = m.inputBox.Update(msg)
	m.syncLayout()
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.transcript.View(),
		m.inputBox.View(),
		m.statusLine(),
	)
}

func (m *Model) syncLayout() {
	if m.height == 0 {
		return
	}
	m.transcript.SetSize(m.width, max(m.height-m.inputBox.ViewHeight()-1, 4))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		m.transcript.ToggleCursor()
		return m, nil
	case "alt+up":
		m.transcript.MoveCursor(-1)
		return m, nil
	case "alt+down":
		m.transcript.MoveCursor(1)
		return m, nil
	case "pgup":
		m.transcript.ScrollUp()
		return m, nil
	case "pgdown":
		m.transcript.ScrollDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputBox, cmd = m.inputBox.Update(msg)
	m.syncLayout()
	return m, cmd
}

func (m Model) handleSubmit(text string) (Model, tea.Cmd) {
	if strings.HasPrefix(text, "/") {
		return m.runCommand(text)
	}

	m.transcript.Append(transcript.LabelUser, text)

	if !m.ensureClient() {
		return m, nil
	}

	f := m.client.ChatAsync(m.ctx, []message.Message{message.User(text)})
	return m, m.track(msgs.Await(m.ctx, msgs.ReplyChat, f))
}

// summarize dispatches a summary of the selected entries or, when nothing
// is selected, of arg.
func (m Model) summarize(arg string) (Model, tea.Cmd) {
	text := m.transcript.SelectedText()
	if text == "" {
		text = strings.TrimSpace(arg)
	}
	if text == "" {
		m.notice("Nothing to summarize. Select entries with alt+up/down and ctrl+s, or use /summarize <text>.")
		return m, nil
	}

	if !m.ensureClient() {
		return m, nil
	}

	f := m.client.SummarizeAsync(m.ctx, text)
	return m, m.track(msgs.Await(m.ctx, msgs.ReplySummary, f))
}

// track counts await as in flight and keeps the spinner running.
func (m *Model) track(await tea.Cmd) tea.Cmd {
	m.pending++
	return tea.Batch(await, m.spinner.Tick)
}

func (m Model) handleReply(msg msgs.ReplyMsg) Model {
	m.pending = max(m.pending-1, 0)
	if !msg.SentAt.IsZero() {
		m.lastTook = time.Since(msg.SentAt)
	}

	switch {
	case msg.Err != nil:
		if m.ctx.Err() != nil {
			return m
		}
		m.transcript.Append(transcript.LabelError, msg.Err.Error())
	case msg.Kind == msgs.ReplySummary:
		m.transcript.Append(transcript.LabelSummary, msg.Text)
	default:
		m.transcript.Append(transcript.LabelAssistant, msg.Text)
	}

	return m
}

// ensureClient builds a client for the active provider unless one is already
// bound to it. Problems are reported in the transcript.
func (m *Model) ensureClient() bool {
	p := m.settings.Provider()

	if m.client != nil {
		if m.client.Kind() == p {
			return true
		}
		m.client = nil
	}

	opts := m.settings.Resolve()
	if opts.APIKey == "" && !m.envHasKey(p) {
		m.notice(fmt.Sprintf("Please set your %s API key first.", p))
		return false
	}

	opts.LookupEnv = m.cfg.LookupEnv
	opts.Logger = m.cfg.Logger

	c, err := m.cfg.NewClient(opts)
	if err != nil {
		m.cfg.Logger.Warn("client init failed", "provider", p, "error", err)
		m.transcript.Append(transcript.LabelError, fmt.Sprintf("Failed to initialize AI client: %v", err))
		return false
	}

	m.client = c
	return true
}

func (m *Model) envHasKey(p provider.Kind) bool {
	if m.cfg.LookupEnv == nil {
		return false
	}
	for _, k := range p.EnvKeys() {
		if v, ok := m.cfg.LookupEnv(k); ok && v != "" {
			return true
		}
	}
	return false
}

func (m *Model) notice(text string) {
	m.transcript.Append(transcript.LabelNotice, text)
}

// promptTokens estimates the chat request the current input would send.
func (m Model) promptTokens() int {
	v := strings.TrimSpace(m.inputBox.Value())
	if v == "" {
		return 0
	}
	return m.cfg.Tokens.CountMessages([]message.Message{message.User(v)})
}

func (m Model) statusLine() string {
	p := m.settings.Provider()
	parts := []string{
		"provider: " + p.String(),
		"model: " + m.settings.Model(p),
		"input ~" + format.FmtTokens(m.promptTokens()) + " tokens",
	}

	if m.client != nil {
		if u, ok := m.client.Usage(); ok {
			parts = append(parts, "used "+format.FmtTokens(u.Total())+" tokens")
		}
	}

	if n := m.transcript.SelectedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}

	line := strings.Join(parts, "  ·  ")
	switch {
	case m.pending > 0:
		line = m.spinner.View() + " waiting  ·  " + line
	case m.lastTook > 0:
		line += "  ·  last " + format.FmtDuration(m.lastTook)
	}

	return styles.StatusStyle.Render(format.Truncate(line, max(m.width-1, 20)))
}
