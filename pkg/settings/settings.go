// Package settings persists the user's provider choice, API keys and model
// selections as a flat string map.
//
// Keys follow a fixed layout: "provider" holds the active provider and
// "<provider>_api_key" / "<provider>_model" hold per-provider values. The map
// stays flat so files written by older releases (a plain JSON object) load
// unchanged.
package settings

import (
	"maps"
	"sort"
	"strings"

	"github.com/germanamz/aitools/pkg/assistant"
	"github.com/germanamz/aitools/pkg/providers/provider"
)

// KeyProvider is the key holding the active provider name.
const KeyProvider = "provider"

// Settings is the flat key/value form of the settings file. The zero value
// (nil) is valid for reads; use Clone or make before writing.
type Settings map[string]string

// APIKeyKey returns the key under which p's API key is stored.
func APIKeyKey(p provider.Kind) string { return string(p) + "_api_key" }

// ModelKey returns the key under which p's model is stored.
func ModelKey(p provider.Kind) string { return string(p) + "_model" }

// Provider returns the active provider, defaulting to openai when unset or
// unrecognized.
func (s Settings) Provider() provider.Kind {
	k, err := provider.ParseKind(s[KeyProvider])
	if err != nil {
		return provider.OpenAI
	}
	return k
}

// APIKey returns the stored key for p, or "".
func (s Settings) APIKey(p provider.Kind) string { return s[APIKeyKey(p)] }

// Model returns the stored model for p, or p's default model.
func (s Settings) Model(p provider.Kind) string {
	if m := s[ModelKey(p)]; m != "" {
		return m
	}
	return p.DefaultModel()
}

// SetProvider makes p the active provider.
func (s Settings) SetProvider(p provider.Kind) { s[KeyProvider] = string(p) }

// SetAPIKey stores key for p. Surrounding whitespace is trimmed and an empty
// key leaves the stored one untouched.
func (s Settings) SetAPIKey(p provider.Kind, key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	s[APIKeyKey(p)] = key
}

// SetModel stores the model for p; an empty name removes the override.
func (s Settings) SetModel(p provider.Kind, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		delete(s, ModelKey(p))
		return
	}
	s[ModelKey(p)] = name
}

// ClearAPIKey removes p's key and the active provider selection, so the next
// lookup falls back to openai.
func (s Settings) ClearAPIKey(p provider.Kind) {
	delete(s, APIKeyKey(p))
	delete(s, KeyProvider)
}

// Clone returns an independent copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	maps.Copy(out, s)
	return out
}

// Resolve returns client options for the active provider. APIKey is empty
// when none is stored; assistant.New then falls back to the environment.
func (s Settings) Resolve() assistant.Options {
	p := s.Provider()
	return assistant.Options{
		Provider: string(p),
		APIKey:   s.APIKey(p),
		Model:    s.Model(p),
	}
}

// Masked returns a copy with every API key replaced by provider.Mask.
func (s Settings) Masked() Settings {
	out := s.Clone()
	for k, v := range out {
		if strings.HasSuffix(k, "_api_key") {
			out[k] = provider.Mask(v)
		}
	}
	return out
}

// Keys returns the keys in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
