// Package tools exposes the assistant's operations as callable tools.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/aitools/pkg/tools/toolbox]: Tool type and ToolBox registry
//   - [github.com/germanamz/aitools/pkg/tools/assistanttools]: "chat" and "summarize" tools bound to a client
//   - [github.com/germanamz/aitools/pkg/tools/mcpserver]: serves a ToolBox over MCP (Model Context Protocol)
//
// The mcpserver package is a thin wrapper around the official MCP Go SDK
// (github.com/modelcontextprotocol/go-sdk).
package tools
