package assistant

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/modeladapter/usage"
	"github.com/germanamz/aitools/pkg/providers/model"
	"github.com/germanamz/aitools/pkg/providers/provider"
)

// LookupEnvFunc resolves an environment variable; os.LookupEnv satisfies it.
type LookupEnvFunc func(key string) (string, bool)

// Options configures New. Only Provider is commonly set; everything else has
// a sensible default.
type Options struct {
	APIKey   string // Explicit key; wins over the environment.
	Provider string // "openai" or "gemini"; empty means "openai".
	Model    string // Explicit model; wins over the provider default.

	LookupEnv  LookupEnvFunc // Defaults to os.LookupEnv.
	HTTPClient *http.Client  // Passed to the strategy; nil keeps its default.
	BaseURL    string        // Overrides the vendor endpoint (tests, proxies).
	Registry   *Registry     // Defaults to DefaultRegistry().
	Logger     *slog.Logger  // Defaults to a discarding logger.
}

// Client sends chat and summarize requests to one provider. It holds only
// immutable state, so concurrent calls are safe.
type Client struct {
	cfg      provider.Config
	strategy provider.Strategy
	log      *slog.Logger
}

// New resolves opts into a provider.Config and builds the matching strategy.
//
// It fails with *provider.ConfigurationError for an unsupported provider, an
// API key that resolves to nothing or an empty model, and with
// *provider.DependencyUnavailableError when the provider is supported but not
// compiled into this binary. The environment is only consulted when
// opts.APIKey is empty.
func New(opts Options) (*Client, error) {
	name := opts.Provider
	if name == "" {
		name = string(provider.OpenAI)
	}

	kind, err := provider.ParseKind(name)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	factory, ok := registry.Lookup(kind)
	if !ok {
		return nil, &provider.DependencyUnavailableError{Provider: kind, Detail: "no strategy registered"}
	}

	cfg := provider.Config{
		Provider: kind,
		APIKey:   resolveAPIKey(kind, opts.APIKey, opts.LookupEnv),
		Model:    opts.Model,
	}
	if cfg.Model == "" {
		cfg.Model = kind.DefaultModel()
	}

	if cfg.APIKey == "" {
		return nil, &provider.ConfigurationError{
			Field:  "api_key",
			Reason: kind.String() + " API key not set; set " + strings.Join(kind.EnvKeys(), " or ") + " or pass one explicitly",
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strategy, err := factory(FactoryParams{Config: cfg, HTTPClient: opts.HTTPClient, BaseURL: opts.BaseURL})
	if err != nil {
		return nil, &provider.DependencyUnavailableError{Provider: kind, Detail: err.Error()}
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	log.Debug("client ready", "config", cfg)

	return &Client{
		cfg:      cfg,
		strategy: strategy,
		log:      log.With("provider", kind.String(), "model", cfg.Model),
	}, nil
}

func resolveAPIKey(kind provider.Kind, explicit string, lookup LookupEnvFunc) string {
	if explicit != "" {
		return explicit
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}

	for _, key := range kind.EnvKeys() {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
	}

	return ""
}

// Config returns the resolved configuration.
func (c *Client) Config() provider.Config { return c.cfg }

// Kind returns the provider this client talks to.
func (c *Client) Kind() provider.Kind { return c.cfg.Provider }

// Model returns the model this client requests.
func (c *Client) Model() string { return c.cfg.Model }

// Usage returns the tokens reported by the provider so far. The bool is
// false when the provider does not report usage or nothing was recorded.
func (c *Client) Usage() (usage.TokenCount, bool) {
	ur, ok := c.strategy.(usage.Reporter)
	if !ok || ur.UsageTracker().Count() == 0 {
		return usage.TokenCount{}, false
	}

	return ur.UsageTracker().Total(), true
}

// CallOption adjusts the generation parameters of a Chat call.
type CallOption func(*model.Params)

// WithMaxTokens sets the output token budget (default 1024).
func WithMaxTokens(n int) CallOption {
	return func(p *model.Params) { p.MaxTokens = n }
}

// WithTemperature sets the sampling temperature (default 0.7).
func WithTemperature(t float64) CallOption {
	return func(p *model.Params) { p.Temperature = t }
}

// Chat sends msgs in order and returns the reply text. Every failure is a
// *provider.ProviderCallError.
func (c *Client) Chat(ctx context.Context, msgs []message.Message, opts ...CallOption) (string, error) {
	p := model.Defaults()
	for _, opt := range opts {
		opt(&p)
	}

	return c.call(ctx, "chat", func(ctx context.Context) (string, error) {
		return c.strategy.Chat(ctx, msgs, p)
	}, slog.Int("messages", len(msgs)), slog.Int("max_tokens", p.MaxTokens), slog.Float64("temperature", p.Temperature))
}

// Summarize returns a concise summary of text. It always requests with
// temperature 0.3 and a 300-token budget.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	return c.call(ctx, "summarize", func(ctx context.Context) (string, error) {
		return c.strategy.Summarize(ctx, text)
	}, slog.Int("chars", len(text)))
}

// ChatAsync runs Chat on its own goroutine.
func (c *Client) ChatAsync(ctx context.Context, msgs []message.Message, opts ...CallOption) *Future[string] {
	return Go(func() (string, error) { return c.Chat(ctx, msgs, opts...) })
}

// SummarizeAsync runs Summarize on its own goroutine.
func (c *Client) SummarizeAsync(ctx context.Context, text string) *Future[string] {
	return Go(func() (string, error) { return c.Summarize(ctx, text) })
}

func (c *Client) call(ctx context.Context, op string, fn func(context.Context) (string, error), attrs ...slog.Attr) (string, error) {
	start := time.Now()

	out, err := fn(ctx)

	args := make([]any, 0, len(attrs)+2)
	for _, a := range attrs {
		args = append(args, a)
	}
	args = append(args, slog.String("op", op), slog.Duration("duration", time.Since(start)))

	if err != nil {
		var callErr *provider.ProviderCallError
		if !errors.As(err, &callErr) {
			err = &provider.ProviderCallError{Provider: c.cfg.Provider, Op: op, Err: err}
		}

		c.log.WarnContext(ctx, "provider call failed", append(args, slog.Any("error", err))...)
		return "", err
	}

	c.log.DebugContext(ctx, "provider call", args...)
	return out, nil
}
