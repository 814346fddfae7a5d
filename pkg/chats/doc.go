// Package chats provides the provider-agnostic conversation types shared by
// the client, the shell and the MCP bridge.
//
// It is organized into sub-packages:
//   - [github.com/germanamz/aitools/pkg/chats/role]: conversation roles (system, user, assistant, developer)
//   - [github.com/germanamz/aitools/pkg/chats/message]: a role paired with its text content
//
// No provider or API code is included; chats is a foundation layer
// that strategies can build on.
package chats
