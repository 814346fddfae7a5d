package provider

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a missing or invalid setting: an unsupported
// provider, an API key that could not be resolved or an empty model. It is
// returned synchronously from client construction and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// DependencyUnavailableError reports that the capability backing a supported
// provider was not compiled into this binary.
type DependencyUnavailableError struct {
	Provider Kind
	Detail   string
}

func (e *DependencyUnavailableError) Error() string {
	msg := fmt.Sprintf("provider %s is unavailable in this build", e.Provider)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ProviderCallError wraps any failure of a chat or summarize call: transport
// errors, timeouts, non-2xx responses and undecodable bodies. StatusCode and
// Body are set when the vendor answered with an error status.
type ProviderCallError struct {
	Provider   Kind
	Op         string // "chat" or "summarize"
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderCallError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Provider, e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ProviderCallError) Unwrap() error { return e.Err }
