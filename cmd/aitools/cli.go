package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/germanamz/aitools/cmd/aitools/internal/app"
	"github.com/germanamz/aitools/cmd/aitools/internal/format"
	"github.com/germanamz/aitools/cmd/aitools/internal/settingsform"
	"github.com/germanamz/aitools/cmd/aitools/internal/tty"
	"github.com/germanamz/aitools/pkg/assistant"
	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/providers/provider"
	"github.com/germanamz/aitools/pkg/settings"
	"github.com/germanamz/aitools/pkg/textsource"
	"github.com/germanamz/aitools/pkg/tokens"
	"github.com/germanamz/aitools/pkg/tools/assistanttools"
	"github.com/germanamz/aitools/pkg/tools/mcpserver"
)

// Globals are the flags shared by every command.
type Globals struct {
	Settings string `help:"Settings file (default ~/.aitools/settings.yaml; AITOOLS_SETTINGS)." type:"path"`
	EnvFile  string `name:"env-file" default:".env" help:"Path to a .env file (ignored if missing)."`
	LogFile  string `name:"log-file" help:"Append logs to this file; logs are discarded otherwise." type:"path"`
	LogLevel string `name:"log-level" help:"debug, info, warn or error (default AITOOLS_LOG_LEVEL or info)."`
	BaseURL  string `name:"base-url" hidden:"" help:"Override the provider endpoint."`

	Version kong.VersionFlag `help:"Print the version and exit."`
}

// CLI is the kong command tree.
type CLI struct {
	Globals

	Tui       tuiCmd       `cmd:"" default:"1" help:"Run the interactive shell (default)."`
	Chat      chatCmd      `cmd:"" help:"Send one message and print the reply; reads stdin when no text is given."`
	Summarize summarizeCmd `cmd:"" help:"Summarize text, a text file or a PDF."`
	Config    configCmd    `cmd:"" help:"Edit settings interactively."`
	Mcp       mcpCmd       `cmd:"" name:"mcp" help:"Serve chat and summarize as MCP tools over stdio."`
}

// runtime is what every command runs against.
type runtime struct {
	ctx     context.Context
	env     Env
	store   settings.FileStore
	log     *slog.Logger
	stdin   io.Reader
	stdout  io.Writer
	baseURL string
}

// Target selects the provider and model for one command. Empty fields fall
// back to the stored settings.
type Target struct {
	Provider string `short:"p" help:"openai or gemini (default: stored provider)."`
	Model    string `short:"m" help:"Model name (default: stored model for the provider)."`
}

// client builds a client for t from the stored settings and the environment.
func (rt *runtime) client(t Target) (*assistant.Client, error) {
	s := rt.store.Load()

	p := s.Provider()
	if t.Provider != "" {
		k, err := provider.ParseKind(strings.ToLower(strings.TrimSpace(t.Provider)))
		if err != nil {
			return nil, err
		}
		p = k
	}

	opts := assistant.Options{
		Provider:  p.String(),
		APIKey:    s.APIKey(p),
		Model:     s.Model(p),
		LookupEnv: rt.env.LookupEnv,
		BaseURL:   rt.baseURL,
		Logger:    rt.log,
	}
	if t.Model != "" {
		opts.Model = t.Model
	}

	return assistant.New(opts)
}

// text joins args, or reads stdin when there are none.
func (rt *runtime) text(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	data, err := io.ReadAll(rt.stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

var errNoInput = errors.New("no input text")

type tuiCmd struct{}

func (tuiCmd) Run(rt *runtime) error {
	format.IsDarkBG = lipgloss.HasDarkBackground()

	model := app.New(rt.ctx, app.Config{
		Store:     rt.store,
		LookupEnv: rt.env.LookupEnv,
		Tokens:    tokens.New(),
		Logger:    rt.log,
	})

	tty.FlushStdinBuffer()

	staleFilter := tty.NewStaleEscapeFilter(func(m tea.Model) bool {
		switch v := m.(type) {
		case app.Model:
			return v.InputEnabled()
		case *app.Model:
			return v.InputEnabled()
		default:
			return true
		}
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(rt.ctx), tea.WithFilter(staleFilter))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && rt.ctx.Err() != nil {
		return nil
	}
	return err
}

type chatCmd struct {
	Target

	MaxTokens   int      `name:"max-tokens" help:"Output token budget (default 1024)."`
	Temperature float64  `default:"-1" help:"Sampling temperature between 0 and 2 (default 0.7)."`
	Text        []string `arg:"" optional:"" help:"Message text."`
}

func (c *chatCmd) Run(rt *runtime) error {
	text, err := rt.text(c.Text)
	if err != nil {
		return err
	}
	if text == "" {
		return errNoInput
	}

	client, err := rt.client(c.Target)
	if err != nil {
		return err
	}

	var opts []assistant.CallOption
	if c.MaxTokens > 0 {
		opts = append(opts, assistant.WithMaxTokens(c.MaxTokens))
	}
	if c.Temperature >= 0 {
		opts = append(opts, assistant.WithTemperature(c.Temperature))
	}

	reply, err := client.Chat(rt.ctx, []message.Message{message.User(text)}, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(rt.stdout, reply)
	return err
}

type summarizeCmd struct {
	Target

	File string   `short:"f" help:"Summarize this file; .pdf files are converted to text." type:"path"`
	Text []string `arg:"" optional:"" help:"Text to summarize."`
}

func (c *summarizeCmd) Run(rt *runtime) error {
	var (
		text string
		err  error
	)
	if c.File != "" {
		text, err = textsource.Load(c.File)
	} else {
		text, err = rt.text(c.Text)
	}
	if err != nil {
		return err
	}
	if text == "" {
		return errNoInput
	}

	client, err := rt.client(c.Target)
	if err != nil {
		return err
	}

	summary, err := client.Summarize(rt.ctx, text)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(rt.stdout, summary)
	return err
}

type configCmd struct{}

func (configCmd) Run(rt *runtime) error {
	next, ok, err := settingsform.Run(rt.ctx, rt.store.Load())
	if err != nil {
		return err
	}
	if !ok {
		_, err = fmt.Fprintln(rt.stdout, "No changes saved.")
		return err
	}

	if err := rt.store.Save(next); err != nil {
		return err
	}

	_, err = fmt.Fprintf(rt.stdout, "Saved %s\n", rt.store.Path)
	return err
}

type mcpCmd struct {
	Target
}

func (c *mcpCmd) Run(rt *runtime) error {
	client, err := rt.client(c.Target)
	if err != nil {
		return err
	}

	srv := mcpserver.New("aitools", version, rt.log)
	srv.RegisterBox(assistanttools.NewToolBox(client))

	rt.log.Info("mcp server starting", "provider", client.Kind(), "model", client.Model())
	return srv.Serve(rt.ctx, rt.stdin, rt.stdout)
}
