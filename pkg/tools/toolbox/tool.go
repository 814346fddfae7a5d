package toolbox

import (
	"context"
	"encoding/json"
)

// Handler executes a tool with the given JSON arguments and returns a text
// result.
type Handler func(ctx context.Context, args json.RawMessage) (string, error)

// Tool is a named operation with a JSON Schema describing its arguments.
type Tool struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     Handler
}
