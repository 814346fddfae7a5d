// Package message defines the unit of conversation sent to a provider.
package message

import (
	"strings"

	"github.com/germanamz/aitools/pkg/chats/role"
)

// Message is a single conversation turn. A slice of messages is ordered in
// conversation order and is never deduplicated.
type Message struct {
	Role    role.Role `json:"role"`
	Content string    `json:"content"`
}

// New creates a Message.
func New(r role.Role, content string) Message {
	return Message{Role: r, Content: content}
}

// System creates a system message.
func System(content string) Message { return New(role.System, content) }

// User creates a user message.
func User(content string) Message { return New(role.User, content) }

// Assistant creates an assistant message.
func Assistant(content string) Message { return New(role.Assistant, content) }

// Line renders the message as "<role>: <content>".
func (m Message) Line() string {
	return m.Role.String() + ": " + m.Content
}

// Flatten joins messages into a single prompt, one Line per message,
// separated by newlines.
func Flatten(msgs []Message) string {
	lines := make([]string, len(msgs))
	for i, m := range msgs {
		lines[i] = m.Line()
	}

	return strings.Join(lines, "\n")
}
