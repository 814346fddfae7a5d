// Aitools is a small client for OpenAI and Gemini: an interactive shell that
// chats and summarizes selected replies, one-shot chat and summarize commands,
// a settings form and an MCP server exposing both operations as tools.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/germanamz/aitools/pkg/settings"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit)
	cancel()
	os.Exit(code)
}

// run parses args, prepares the environment shared by every command and
// dispatches to the selected one. It returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, exit func(int)) int {
	var cli CLI
	parser, err := newParser(&cli, stdout, stderr, exit)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	rt, closeLog, err := setup(ctx, cli.Globals, stdin, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = closeLog() }()

	if err := kctx.Run(rt); err != nil {
		rt.log.Error("command failed", "command", kctx.Command(), "error", err)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

func newParser(cli *CLI, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("aitools"),
		kong.Description("Chat with and summarize through OpenAI or Gemini."),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
}

// setup loads .env, the environment and the logger, and resolves the
// settings file.
func setup(ctx context.Context, g Globals, stdin io.Reader, stdout io.Writer) (*runtime, func() error, error) {
	if err := loadDotEnv(g.EnvFile); err != nil {
		return nil, nil, err
	}

	e, err := loadEnv(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("environment: %w", err)
	}

	level := g.LogLevel
	if level == "" {
		level = e.LogLevel
	}
	if level == "" {
		level = "info"
	}

	w, err := openLog(g.LogFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := newLogger(w, level)
	if err != nil {
		_ = w.Close()
		return nil, nil, err
	}

	path := g.Settings
	if path == "" {
		path = e.SettingsPath
	}
	if path == "" {
		if path, err = settings.DefaultPath(); err != nil {
			_ = w.Close()
			return nil, nil, err
		}
	}

	return &runtime{
		ctx:     ctx,
		env:     e,
		store:   settings.FileStore{Path: path, Logger: log},
		log:     log,
		stdin:   stdin,
		stdout:  stdout,
		baseURL: g.BaseURL,
	}, w.Close, nil
}

// loadDotEnv loads environment variables from path. If the file does not exist
// it is silently ignored so that .env files remain optional.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openLog opens path for appending. An empty path discards logs, since the
// shell owns the terminal.
func openLog(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{io.Discard}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
