package provider

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/providers/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface check.
var _ Strategy = (*mockStrategy)(nil)

type mockStrategy struct{}

func (mockStrategy) Kind() Kind { return Gemini }

func (mockStrategy) Chat(context.Context, []message.Message, model.Params) (string, error) {
	return "", nil
}

func (mockStrategy) Summarize(context.Context, string) (string, error) { return "", nil }

func TestParseKind(t *testing.T) {
	k, err := ParseKind("gemini")
	require.NoError(t, err)
	assert.Equal(t, Gemini, k)

	k, err = ParseKind("openai")
	require.NoError(t, err)
	assert.Equal(t, OpenAI, k)
}

func TestParseKind_Unsupported(t *testing.T) {
	_, err := ParseKind("unsupported")

	var ce *ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "provider", ce.Field)
	assert.Contains(t, err.Error(), `"unsupported"`)
}

func TestParseKind_ExactNamesOnly(t *testing.T) {
	for _, s := range []string{"OpenAI", "GEMINI", " gemini ", "openai\n", ""} {
		_, err := ParseKind(s)

		var ce *ConfigurationError
		assert.True(t, errors.As(err, &ce), "%q", s)
	}
}

func TestKind_Defaults(t *testing.T) {
	assert.Equal(t, "gpt-3.5-turbo", OpenAI.DefaultModel())
	assert.Equal(t, "text-bison-001", Gemini.DefaultModel())
	assert.Empty(t, Kind("x").DefaultModel())

	assert.Equal(t, []string{"gpt-3.5-turbo", "gpt-4", "gpt-4o"}, OpenAI.ModelOptions())
	assert.Equal(t, []string{"text-bison-001"}, Gemini.ModelOptions())
	assert.Nil(t, Kind("x").ModelOptions())
}

func TestKind_EnvKeys(t *testing.T) {
	assert.Equal(t, []string{"OPENAI_API_KEY"}, OpenAI.EnvKeys())
	assert.Equal(t, []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}, Gemini.EnvKeys())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{name: "valid", cfg: Config{Provider: OpenAI, APIKey: "k", Model: "m"}},
		{name: "missing key", cfg: Config{Provider: Gemini, Model: "m"}, field: "api_key"},
		{name: "missing model", cfg: Config{Provider: Gemini, APIKey: "k"}, field: "model"},
		{name: "bad provider", cfg: Config{Provider: "bard", APIKey: "k", Model: "m"}, field: "provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}

			var ce *ConfigurationError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestMask(t *testing.T) {
	assert.Empty(t, Mask(""))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "****5678", Mask("12345678"))
	assert.Equal(t, "****5678", Config{APIKey: "12345678"}.Redacted().APIKey)
}

func TestConfig_LogValue(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	log.Info("ready", "config", Config{Provider: Gemini, APIKey: "AIza-secret-9876", Model: "text-bison-001"})

	out := buf.String()
	assert.Contains(t, out, "config.provider=gemini")
	assert.Contains(t, out, "config.api_key=************9876")
	assert.Contains(t, out, "config.model=text-bison-001")
	assert.NotContains(t, out, "secret")
}

func TestProviderCallError(t *testing.T) {
	cause := errors.New("dial tcp: no such host")
	err := &ProviderCallError{Provider: Gemini, Op: "chat", Err: cause}

	assert.Equal(t, "gemini chat: dial tcp: no such host", err.Error())
	assert.ErrorIs(t, err, cause)

	withStatus := &ProviderCallError{Provider: OpenAI, Op: "summarize", StatusCode: 429, Err: errors.New("rate limited")}
	assert.Equal(t, "openai summarize: status 429: rate limited", withStatus.Error())
}

func TestDependencyUnavailableError(t *testing.T) {
	err := &DependencyUnavailableError{Provider: OpenAI, Detail: "built with noopenai"}
	assert.Equal(t, "provider openai is unavailable in this build: built with noopenai", err.Error())
}

func TestConfigurationError(t *testing.T) {
	assert.Equal(t, "configuration: model: must not be empty", (&ConfigurationError{Field: "model", Reason: "must not be empty"}).Error())
	assert.Equal(t, "configuration: boom", (&ConfigurationError{Reason: "boom"}).Error())
}
