// Package openai provides a Strategy for the OpenAI Chat Completions API,
// built on the official openai-go SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/chats/role"
	"github.com/germanamz/aitools/pkg/modeladapter/usage"
	"github.com/germanamz/aitools/pkg/providers/model"
	"github.com/germanamz/aitools/pkg/providers/provider"
)

const (
	summarySystemPrompt = "You are a helpful assistant that summarizes text concisely."
	summaryUserPrefix   = "Summarize the following text:\n\n"
)

var (
	_ provider.Strategy = (*Strategy)(nil)
	_ usage.Reporter    = (*Strategy)(nil)
)

// Strategy implements provider.Strategy for OpenAI.
type Strategy struct {
	client sdk.Client
	model  string
	usage  usage.Tracker
}

// New creates a Strategy. An empty baseURL keeps the SDK default and a nil
// client keeps the SDK's HTTP client. The SDK's automatic retries are
// disabled: a failed call fails once.
func New(baseURL, apiKey, modelName string, client *http.Client) *Strategy {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if client != nil {
		opts = append(opts, option.WithHTTPClient(client))
	}

	return &Strategy{
		client: sdk.NewClient(opts...),
		model:  modelName,
	}
}

// Kind returns provider.OpenAI.
func (s *Strategy) Kind() provider.Kind { return provider.OpenAI }

// Model returns the model the strategy sends requests for.
func (s *Strategy) Model() string { return s.model }

// UsageTracker returns token usage reported by the API.
func (s *Strategy) UsageTracker() *usage.Tracker { return &s.usage }

// Chat submits msgs as-is and returns the first choice's content.
func (s *Strategy) Chat(ctx context.Context, msgs []message.Message, p model.Params) (string, error) {
	return s.complete(ctx, "chat", msgs, p)
}

// Summarize sends a system instruction plus the text as the user turn, with
// the fixed summary parameters.
func (s *Strategy) Summarize(ctx context.Context, text string) (string, error) {
	msgs := []message.Message{
		message.System(summarySystemPrompt),
		message.User(summaryUserPrefix + text),
	}

	return s.complete(ctx, "summarize", msgs, model.Summary())
}

func (s *Strategy) complete(ctx context.Context, op string, msgs []message.Message, p model.Params) (string, error) {
	params, err := s.buildParams(msgs, p)
	if err != nil {
		return "", &provider.ProviderCallError{Provider: provider.OpenAI, Op: op, Err: err}
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		callErr := &provider.ProviderCallError{Provider: provider.OpenAI, Op: op, Err: err}

		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			callErr.StatusCode = apiErr.StatusCode
		}

		return "", callErr
	}

	s.usage.Add(usage.TokenCount{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	})

	if len(resp.Choices) == 0 {
		return "", &provider.ProviderCallError{Provider: provider.OpenAI, Op: op, Err: errors.New("empty choices in response")}
	}

	return resp.Choices[0].Message.Content, nil
}

// --- conversion helpers ---

func (s *Strategy) buildParams(msgs []message.Message, p model.Params) (sdk.ChatCompletionNewParams, error) {
	out := make([]sdk.ChatCompletionMessageParamUnion, 0, len(msgs))

	for i, m := range msgs {
		switch m.Role {
		case role.System:
			out = append(out, sdk.SystemMessage(m.Content))
		case role.Developer:
			out = append(out, sdk.DeveloperMessage(m.Content))
		case role.User:
			out = append(out, sdk.UserMessage(m.Content))
		case role.Assistant:
			out = append(out, sdk.AssistantMessage(m.Content))
		default:
			return sdk.ChatCompletionNewParams{}, fmt.Errorf("message %d: unsupported role %q", i, m.Role)
		}
	}

	return sdk.ChatCompletionNewParams{
		Model:       sdk.ChatModel(s.model),
		Messages:    out,
		MaxTokens:   sdk.Int(int64(p.MaxTokens)),
		Temperature: sdk.Float(p.Temperature),
	}, nil
}
