// Package toolbox holds the Tool type and a name-indexed registry of tools.
package toolbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Result is the outcome of a tool call. Failures are reported in-band with
// IsError set so callers can hand them back to whoever asked.
type Result struct {
	Content string
	IsError bool
}

// ToolBox is a registry of tools keyed by name. It is safe for concurrent use.
type ToolBox struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// New creates an empty ToolBox.
func New() *ToolBox {
	return &ToolBox{tools: make(map[string]Tool)}
}

// Register adds tools, replacing any with the same name.
func (tb *ToolBox) Register(tools ...Tool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	for _, t := range tools {
		tb.tools[t.Name] = t
	}
}

// Get returns the tool named name.
func (tb *ToolBox) Get(name string) (Tool, bool) {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	t, ok := tb.tools[name]
	return t, ok
}

// Tools returns every registered tool sorted by name.
func (tb *ToolBox) Tools() []Tool {
	tb.mu.RLock()
	defer tb.mu.RUnlock()

	out := make([]Tool, 0, len(tb.tools))
	for _, t := range tb.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// Call runs the tool named name with args. Unknown tools and handler errors
// come back as a Result with IsError set.
func (tb *ToolBox) Call(ctx context.Context, name string, args json.RawMessage) Result {
	t, ok := tb.Get(name)
	if !ok {
		return Result{Content: fmt.Sprintf("tool not found: %s", name), IsError: true}
	}

	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	out, err := t.Handler(ctx, args)
	if err != nil {
		return Result{Content: err.Error(), IsError: true}
	}

	return Result{Content: out}
}
