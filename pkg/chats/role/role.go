// Package role defines the sender roles used in LLM conversations.
package role

// Role represents the sender of a message in a conversation. Any string is
// accepted on the wire; the constants below are the roles vendors understand.
type Role string

const (
	System    Role = "system"
	User      Role = "user"
	Assistant Role = "assistant"
	Developer Role = "developer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case System, User, Assistant, Developer:
		return true
	}
	return false
}

// String returns the underlying string value of the role.
func (r Role) String() string {
	return string(r)
}
