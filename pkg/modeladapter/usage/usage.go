// Package usage records token consumption reported by providers.
package usage

import "sync"

// TokenCount holds prompt and completion token counts for a single call.
type TokenCount struct {
	PromptTokens     int
	CompletionTokens int
}

// Total returns the sum of prompt and completion tokens.
func (tc TokenCount) Total() int {
	return tc.PromptTokens + tc.CompletionTokens
}

// Reporter is implemented by strategies whose vendor reports token usage.
type Reporter interface {
	UsageTracker() *Tracker
}

// Tracker accumulates token usage across calls.
// It is safe for concurrent use; the zero value is ready to use.
type Tracker struct {
	mu    sync.Mutex
	total TokenCount
	count int
}

// Add records a token count entry.
func (t *Tracker) Add(tc TokenCount) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total.PromptTokens += tc.PromptTokens
	t.total.CompletionTokens += tc.CompletionTokens
	t.count++
}

// Total returns the aggregate across all entries.
func (t *Tracker) Total() TokenCount {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.total
}

// Count returns the number of recorded entries.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.count
}
