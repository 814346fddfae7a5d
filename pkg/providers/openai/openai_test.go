package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/providers/model"
	"github.com/germanamz/aitools/pkg/providers/openai"
	"github.com/germanamz/aitools/pkg/providers/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *openai.Strategy) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := openai.New(srv.URL+"/v1/", "test-key", "gpt-4", srv.Client())

	return srv, s
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}

func readBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		t.Fatalf("failed to unmarshal body: %v", err)
	}

	return req
}

func completion(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 4,
			"total_tokens":      16,
		},
	}
}

func messagesOf(t *testing.T, req map[string]any) []map[string]any {
	t.Helper()

	raw, ok := req["messages"].([]any)
	require.True(t, ok)

	out := make([]map[string]any, len(raw))
	for i, m := range raw {
		out[i], _ = m.(map[string]any)
	}

	return out
}

func TestChat_SimpleText(t *testing.T) {
	_, s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		req := readBody(t, r)
		assert.Equal(t, "gpt-4", req["model"])
		assert.InDelta(t, 1024, req["max_tokens"], 1e-9)
		assert.InDelta(t, 0.7, req["temperature"], 1e-9)

		msgs := messagesOf(t, req)
		require.Len(t, msgs, 3)
		assert.Equal(t, "system", msgs[0]["role"])
		assert.Equal(t, "user", msgs[1]["role"])
		assert.Equal(t, "Hello", msgs[1]["content"])
		assert.Equal(t, "assistant", msgs[2]["role"])

		writeJSON(t, w, completion("Hi there!"))
	})

	got, err := s.Chat(context.Background(), []message.Message{
		message.System("be nice"),
		message.User("Hello"),
		message.Assistant("Earlier reply"),
	}, model.Defaults())
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", got)

	total := s.UsageTracker().Total()
	assert.Equal(t, 1, s.UsageTracker().Count())
	assert.Equal(t, 12, total.PromptTokens)
	assert.Equal(t, 4, total.CompletionTokens)
}

func TestSummarize_FixedParams(t *testing.T) {
	_, s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		req := readBody(t, r)
		assert.InDelta(t, 300, req["max_tokens"], 1e-9)
		assert.InDelta(t, 0.3, req["temperature"], 1e-9)

		msgs := messagesOf(t, req)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0]["role"])
		assert.Equal(t, "You are a helpful assistant that summarizes text concisely.", msgs[0]["content"])
		assert.Equal(t, "user", msgs[1]["role"])
		assert.Equal(t, "Summarize the following text:\n\nlong text", msgs[1]["content"])

		writeJSON(t, w, completion("short"))
	})

	got, err := s.Summarize(context.Background(), "long text")
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestChat_ErrorStatusNotRetried(t *testing.T) {
	var calls atomic.Int32

	_, s := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests"}}`))
	})

	_, err := s.Chat(context.Background(), []message.Message{message.User("Hi")}, model.Defaults())
	require.Error(t, err)

	var ce *provider.ProviderCallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, provider.OpenAI, ce.Provider)
	assert.Equal(t, "chat", ce.Op)
	assert.Equal(t, http.StatusTooManyRequests, ce.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestChat_EmptyChoices(t *testing.T) {
	_, s := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		resp := completion("")
		resp["choices"] = []map[string]any{}
		writeJSON(t, w, resp)
	})

	_, err := s.Chat(context.Background(), []message.Message{message.User("Hi")}, model.Defaults())
	assert.ErrorContains(t, err, "empty choices")
}

func TestChat_UnsupportedRole(t *testing.T) {
	var calls atomic.Int32

	_, s := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		writeJSON(t, w, completion("unreachable"))
	})

	_, err := s.Chat(context.Background(), []message.Message{message.New("narrator", "once upon")}, model.Defaults())

	var ce *provider.ProviderCallError
	require.True(t, errors.As(err, &ce))
	assert.ErrorContains(t, err, `unsupported role "narrator"`)
	assert.Zero(t, calls.Load())
}

func TestNew_Accessors(t *testing.T) {
	s := openai.New("", "k", "gpt-4o", nil)

	assert.Equal(t, provider.OpenAI, s.Kind())
	assert.Equal(t, "gpt-4o", s.Model())
}
