// Package provider defines the Strategy each LLM backend implements, the
// resolved configuration a strategy is built from, and the errors shared by
// every backend.
package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/providers/model"
)

// Strategy is one vendor's rendition of the two assistant operations. A
// Strategy holds only immutable configuration, so concurrent calls are safe.
type Strategy interface {
	Kind() Kind
	Chat(ctx context.Context, msgs []message.Message, p model.Params) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// Config is the resolved credential and model pair bound to a client.
type Config struct {
	Provider Kind   `validate:"required,oneof=openai gemini"`
	APIKey   string `validate:"required"` //nolint:gosec // configuration field, not a hardcoded secret
	Model    string `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// configFields maps struct fields to the settings names users see.
var configFields = map[string]string{
	"Provider": "provider",
	"APIKey":   "api_key",
	"Model":    "model",
}

// Validate checks that every field is set and the provider is supported.
// The first failing field is reported as a ConfigurationError.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ConfigurationError{Reason: err.Error()}
	}

	fe := verrs[0]
	field := configFields[fe.Field()]
	switch fe.Tag() {
	case "required":
		return &ConfigurationError{Field: field, Reason: "must not be empty"}
	case "oneof":
		return &ConfigurationError{Field: field, Reason: fmt.Sprintf("unsupported provider %q", fe.Value())}
	default:
		return &ConfigurationError{Field: field, Reason: fe.Error()}
	}
}

// Redacted returns a copy of c with the API key masked, for logging.
func (c Config) Redacted() Config {
	c.APIKey = Mask(c.APIKey)
	return c
}

// LogValue renders c with the API key masked.
func (c Config) LogValue() slog.Value {
	r := c.Redacted()
	return slog.GroupValue(
		slog.String("provider", r.Provider.String()),
		slog.String("api_key", r.APIKey),
		slog.String("model", r.Model),
	)
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	r := []rune(secret)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
