package provider

import (
	"fmt"
)

// Kind identifies a supported LLM vendor.
type Kind string

const (
	OpenAI Kind = "openai"
	Gemini Kind = "gemini"
)

// Kinds lists the supported providers in display order.
var Kinds = []Kind{OpenAI, Gemini}

// ParseKind converts s into a Kind. Only the exact names "openai" and
// "gemini" are accepted; anything else fails with a ConfigurationError.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &ConfigurationError{Field: "provider", Reason: fmt.Sprintf("unsupported provider %q", s)}
	}

	return k, nil
}

// Valid reports whether k is a supported provider.
func (k Kind) Valid() bool {
	switch k {
	case OpenAI, Gemini:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// DefaultModel returns the model used when none is configured.
func (k Kind) DefaultModel() string {
	switch k {
	case OpenAI:
		return "gpt-3.5-turbo"
	case Gemini:
		return "text-bison-001"
	}
	return ""
}

// ModelOptions returns the models offered for selection in the shell.
func (k Kind) ModelOptions() []string {
	switch k {
	case OpenAI:
		return []string{"gpt-3.5-turbo", "gpt-4", "gpt-4o"}
	case Gemini:
		return []string{"text-bison-001"}
	}
	return nil
}

// EnvKeys returns the environment variables consulted, in order, when no
// API key is given explicitly.
func (k Kind) EnvKeys() []string {
	switch k {
	case OpenAI:
		return []string{"OPENAI_API_KEY"}
	case Gemini:
		return []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	}
	return nil
}
