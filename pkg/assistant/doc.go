// Package assistant is the provider client: it resolves credentials and a
// model for one of the supported providers, selects that provider's Strategy
// once, and exposes Chat and Summarize as plain-text calls.
//
// A Client is immutable. When the provider or model changes, build a new one.
// Blocking calls have Async variants returning a [Future], leaving the choice
// of goroutine, event loop or executor to the caller.
package assistant
