// Package gemini provides a Strategy for Google's generateText REST endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/germanamz/aitools/pkg/chats/message"
	"github.com/germanamz/aitools/pkg/modeladapter"
	"github.com/germanamz/aitools/pkg/providers/model"
	"github.com/germanamz/aitools/pkg/providers/provider"
)

// DefaultBaseURL is the public Generative Language API host.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// RequestTimeout bounds every generateText call.
const RequestTimeout = 30 * time.Second

const summaryInstruction = "Summarize the following text concisely:\n\n"

var _ provider.Strategy = (*Strategy)(nil)

// Strategy implements provider.Strategy for Gemini.
type Strategy struct {
	modeladapter.ModelAdapter
}

// New creates a Strategy. An empty baseURL selects DefaultBaseURL and a nil
// client falls back to http.DefaultClient; the 30 second timeout applies
// either way.
func New(baseURL, apiKey, modelName string, client *http.Client) *Strategy {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	s := &Strategy{ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey, Query: "key"}, client)}
	s.Name = modelName
	s.Timeout = RequestTimeout

	return s
}

// Kind returns provider.Gemini.
func (s *Strategy) Kind() provider.Kind { return provider.Gemini }

// Chat flattens msgs into a "<role>: <content>" transcript and sends it as
// a single prompt.
func (s *Strategy) Chat(ctx context.Context, msgs []message.Message, p model.Params) (string, error) {
	return s.generate(ctx, "chat", message.Flatten(msgs), p)
}

// Summarize asks for a concise summary of text with the fixed summary
// parameters.
func (s *Strategy) Summarize(ctx context.Context, text string) (string, error) {
	return s.generate(ctx, "summarize", summaryInstruction+text, model.Summary())
}

// --- request types ---

type apiRequest struct {
	Prompt          apiPrompt `json:"prompt"`
	Temperature     float64   `json:"temperature"`
	MaxOutputTokens int       `json:"maxOutputTokens"`
}

type apiPrompt struct {
	Text string `json:"text"`
}

func (s *Strategy) generate(ctx context.Context, op, prompt string, p model.Params) (string, error) {
	req := apiRequest{
		Prompt:          apiPrompt{Text: prompt},
		Temperature:     p.Temperature,
		MaxOutputTokens: p.MaxTokens,
	}

	path := fmt.Sprintf("/v1/models/%s:generateText", escapeModel(s.Name))

	body, err := s.PostJSON(ctx, path, req)
	if err != nil {
		callErr := &provider.ProviderCallError{Provider: provider.Gemini, Op: op, Err: err}

		var se *modeladapter.StatusError
		if errors.As(err, &se) {
			callErr.StatusCode = se.StatusCode
			callErr.Body = se.Body
		}

		return "", callErr
	}

	text, err := ExtractText(body)
	if err != nil {
		return "", &provider.ProviderCallError{Provider: provider.Gemini, Op: op, Err: err}
	}

	return text, nil
}

// escapeModel escapes each segment of name, so a resource-style name such as
// "models/text-bison-001" keeps its slashes in the path.
func escapeModel(name string) string {
	segs := strings.Split(name, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}

// ExtractText pulls the reply out of a generateText response body.
//
// The first candidate's "output", "content" or "text" field wins, in that
// order; a candidate with none of them is returned serialized. Without
// candidates a top-level "output" is used, and failing that the body is
// returned verbatim. Only a body that is not JSON at all is an error.
//
// These shapes predate the current Gemini API and may not match what the
// live service returns.
func ExtractText(body []byte) (string, error) {
	if !json.Valid(body) {
		return "", fmt.Errorf("decode response: invalid JSON: %.200q", body)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		// Valid JSON that is not an object.
		return string(body), nil
	}

	var candidates []json.RawMessage
	if raw, ok := top["candidates"]; ok && json.Unmarshal(raw, &candidates) == nil && len(candidates) > 0 {
		return candidateText(candidates[0]), nil
	}

	if raw, ok := top["output"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s, nil
		}
		return compact(raw), nil
	}

	return string(body), nil
}

func candidateText(raw json.RawMessage) string {
	var cand map[string]json.RawMessage
	if err := json.Unmarshal(raw, &cand); err != nil {
		return compact(raw)
	}

	for _, field := range []string{"output", "content", "text"} {
		if v, ok := cand[field]; ok && truthy(v) {
			var s string
			if json.Unmarshal(v, &s) == nil {
				return s
			}
			return compact(v)
		}
	}

	return compact(raw)
}

// truthy reports whether a JSON value carries something: not null, false,
// zero, or an empty string, array or object.
func truthy(v json.RawMessage) bool {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return false
	}

	switch t := x.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
