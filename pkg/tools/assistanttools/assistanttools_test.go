package assistanttools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/germanamz/aitools/pkg/assistant"
	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/providers/model"
)

type fakeAssistant struct {
	msgs   []message.Message
	params model.Params
	text   string
	err    error
}

func (f *fakeAssistant) Chat(_ context.Context, msgs []message.Message, opts ...assistant.CallOption) (string, error) {
	f.msgs = msgs
	f.params = model.Defaults()
	for _, o := range opts {
		o(&f.params)
	}
	if f.err != nil {
		return "", f.err
	}
	return "reply", nil
}

func (f *fakeAssistant) Summarize(_ context.Context, text string) (string, error) {
	f.text = text
	if f.err != nil {
		return "", f.err
	}
	return "summary", nil
}

func TestTools_Schemas(t *testing.T) {
	tools := Tools(&fakeAssistant{})
	require.Len(t, tools, 2)

	for _, tool := range tools {
		var schema map[string]any
		require.NoError(t, json.Unmarshal(tool.InputSchema, &schema), tool.Name)
		assert.Equal(t, "object", schema["type"])
		assert.NotEmpty(t, tool.Description)
	}
}

func TestChat(t *testing.T) {
	fa := &fakeAssistant{}
	tb := NewToolBox(fa)

	res := tb.Call(context.Background(), "chat", json.RawMessage(`{
		"messages": [{"role": "system", "content": "be brief"}, {"role": "user", "content": "hi"}]
	}`))

	require.False(t, res.IsError, res.Content)
	assert.Equal(t, "reply", res.Content)
	assert.Equal(t, []message.Message{message.System("be brief"), message.User("hi")}, fa.msgs)
	assert.Equal(t, model.Defaults(), fa.params)
}

func TestChat_Options(t *testing.T) {
	fa := &fakeAssistant{}
	tb := NewToolBox(fa)

	res := tb.Call(context.Background(), "chat", json.RawMessage(`{
		"messages": [{"role": "user", "content": "hi"}], "max_tokens": 50, "temperature": 0
	}`))

	require.False(t, res.IsError, res.Content)
	assert.Equal(t, model.Params{MaxTokens: 50, Temperature: 0}, fa.params)
}

func TestChat_InvalidArguments(t *testing.T) {
	tests := map[string]struct {
		args string
		want string
	}{
		"no messages":    {`{}`, "messages is required"},
		"empty messages": {`{"messages": []}`, "messages must not be empty"},
		"missing role":   {`{"messages": [{"content": "x"}]}`, "role is required"},
		"bad tokens":     {`{"messages": [{"role": "user", "content": "x"}], "max_tokens": 0}`, "max_tokens must satisfy gt=0"},
		"hot":            {`{"messages": [{"role": "user", "content": "x"}], "temperature": 3}`, "temperature must satisfy lte=2"},
		"not json":       {`[`, "invalid arguments"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fa := &fakeAssistant{}
			res := NewToolBox(fa).Call(context.Background(), "chat", json.RawMessage(tt.args))

			assert.True(t, res.IsError)
			assert.Contains(t, res.Content, tt.want)
			assert.Nil(t, fa.msgs)
		})
	}
}

func TestSummarize(t *testing.T) {
	fa := &fakeAssistant{}

	res := NewToolBox(fa).Call(context.Background(), "summarize", json.RawMessage(`{"text": "long text"}`))

	require.False(t, res.IsError, res.Content)
	assert.Equal(t, "summary", res.Content)
	assert.Equal(t, "long text", fa.text)
}

func TestSummarize_MissingText(t *testing.T) {
	res := NewToolBox(&fakeAssistant{}).Call(context.Background(), "summarize", json.RawMessage(`{}`))

	assert.True(t, res.IsError)
	assert.Equal(t, "invalid arguments: text is required", res.Content)
}

func TestProviderErrorsSurface(t *testing.T) {
	fa := &fakeAssistant{err: errors.New("gemini chat: status 500: boom")}

	res := NewToolBox(fa).Call(context.Background(), "summarize", json.RawMessage(`{"text": "x"}`))

	assert.True(t, res.IsError)
	assert.Equal(t, "gemini chat: status 500: boom", res.Content)
}

func TestClientSatisfiesAssistant(t *testing.T) {
	var _ Assistant = (*assistant.Client)(nil)
}
