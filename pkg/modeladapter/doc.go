// Package modeladapter holds the HTTP plumbing shared by provider strategies
// that talk to a vendor API directly rather than through an SDK.
//
// It contains:
//   - embeddable [ModelAdapter] base struct with query-parameter auth, a
//     per-request timeout and [ModelAdapter.PostJSON]
//   - [StatusError] for non-2xx responses
//   - [github.com/germanamz/aitools/pkg/modeladapter/usage]: thread-safe token usage tracker and the Reporter interface
//
// This package contains no provider-specific code.
package modeladapter
