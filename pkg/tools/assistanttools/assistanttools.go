// Package assistanttools exposes a client's chat and summarize operations as
// toolbox tools, so they can be served over MCP.
package assistanttools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/germanamz/aitools/pkg/assistant"
	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/chats/role"
	"github.com/germanamz/aitools/pkg/tools/toolbox"
)

// Assistant is the part of *assistant.Client the tools call.
type Assistant interface {
	Chat(ctx context.Context, msgs []message.Message, opts ...assistant.CallOption) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type chatMessage struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content"`
}

type chatInput struct {
	Messages    []chatMessage `json:"messages" validate:"required,min=1,dive"`
	MaxTokens   *int          `json:"max_tokens,omitempty" validate:"omitempty,gt=0"`
	Temperature *float64      `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
}

type summarizeInput struct {
	Text string `json:"text" validate:"required"`
}

// Tools returns the "chat" and "summarize" tools bound to a.
func Tools(a Assistant) []toolbox.Tool {
	return []toolbox.Tool{chatTool(a), summarizeTool(a)}
}

// NewToolBox returns a ToolBox holding Tools(a).
func NewToolBox(a Assistant) *toolbox.ToolBox {
	tb := toolbox.New()
	tb.Register(Tools(a)...)
	return tb
}

func chatTool(a Assistant) toolbox.Tool {
	return toolbox.Tool{
		Name:        "chat",
		Description: "Send a conversation to the configured LLM provider and return its reply.",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "messages": {
      "type": "array",
      "description": "Conversation in order, oldest first.",
      "items": {
        "type": "object",
        "properties": {
          "role": {"type": "string", "enum": ["system", "developer", "user", "assistant"]},
          "content": {"type": "string"}
        },
        "required": ["role", "content"]
      },
      "minItems": 1
    },
    "max_tokens": {"type": "integer", "minimum": 1, "description": "Output token budget (default 1024)."},
    "temperature": {"type": "number", "minimum": 0, "maximum": 2, "description": "Sampling temperature (default 0.7)."}
  },
  "required": ["messages"]
}`),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in chatInput
			if err := decode(args, &in); err != nil {
				return "", err
			}

			msgs := make([]message.Message, len(in.Messages))
			for i, m := range in.Messages {
				msgs[i] = message.New(role.Role(m.Role), m.Content)
			}

			var opts []assistant.CallOption
			if in.MaxTokens != nil {
				opts = append(opts, assistant.WithMaxTokens(*in.MaxTokens))
			}
			if in.Temperature != nil {
				opts = append(opts, assistant.WithTemperature(*in.Temperature))
			}

			return a.Chat(ctx, msgs, opts...)
		},
	}
}

func summarizeTool(a Assistant) toolbox.Tool {
	return toolbox.Tool{
		Name:        "summarize",
		Description: "Return a concise summary of the given text.",
		InputSchema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "text": {"type": "string", "description": "Text to summarize."}
  },
  "required": ["text"]
}`),
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in summarizeInput
			if err := decode(args, &in); err != nil {
				return "", err
			}

			return a.Summarize(ctx, in.Text)
		},
	}
}

func decode(args json.RawMessage, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		problems := make([]string, len(verrs))
		for i, fe := range verrs {
			problems[i] = describe(fe)
		}
		return fmt.Errorf("invalid arguments: %s", strings.Join(problems, "; "))
	}

	return nil
}

var argNames = map[string]string{
	"Messages":    "messages",
	"MaxTokens":   "max_tokens",
	"Temperature": "temperature",
	"Role":        "role",
	"Text":        "text",
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	if n, ok := argNames[name]; ok {
		name = n
	}

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		return name + " must not be empty"
	default:
		return fmt.Sprintf("%s must satisfy %s=%s", name, fe.Tag(), fe.Param())
	}
}
