// Package mcpserver serves a ToolBox over the Model Context Protocol.
package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/germanamz/aitools/pkg/tools/toolbox"
)

// Server exposes tools to MCP clients.
type Server struct {
	server *mcp.Server
	tools  *toolbox.ToolBox
	log    *slog.Logger
}

// New creates a Server announcing itself as name/version. A nil logger
// discards.
func New(name, version string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Server{
		server: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
		tools:  toolbox.New(),
		log:    log,
	}
}

// Register adds tools to the server, replacing any with the same name.
func (s *Server) Register(tools ...toolbox.Tool) {
	s.tools.Register(tools...)
	for _, t := range tools {
		s.server.AddTool(&mcp.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		}, s.handler(t.Name))
	}
}

// RegisterBox adds every tool in tb.
func (s *Server) RegisterBox(tb *toolbox.ToolBox) {
	s.Register(tb.Tools()...)
}

// Serve reads requests from in and writes responses to out until ctx is
// cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.run(ctx, &mcp.IOTransport{
		Reader: io.NopCloser(in),
		Writer: nopWriteCloser{out},
	})
}

func (s *Server) run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// handler dispatches to the named tool. Handler errors become IsError
// results so the client sees the message instead of a protocol failure.
func (s *Server) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res := s.tools.Call(ctx, name, req.Params.Arguments)
		if res.IsError {
			s.log.WarnContext(ctx, "tool call failed", "tool", name, "duration", time.Since(start), "error", res.Content)
		} else {
			s.log.DebugContext(ctx, "tool call", "tool", name, "duration", time.Since(start))
		}

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: res.Content}},
			IsError: res.IsError,
		}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
